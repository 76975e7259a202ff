package imageops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/v3/disk"
	"go.uber.org/zap"
)

// AtomicFileOperations 原子写入与跨设备复制
// 步骤: 在目标目录创建临时文件 → 写入 → 同步到磁盘 → 重命名为目标文件 → 同步目录
type AtomicFileOperations struct {
	logger         *zap.Logger
	checkDiskSpace bool
	preserveTimes  bool
}

// NewAtomicFileOperations 创建原子操作实例
func NewAtomicFileOperations(logger *zap.Logger, checkDiskSpace, preserveTimes bool) *AtomicFileOperations {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AtomicFileOperations{
		logger:         logger,
		checkDiskSpace: checkDiskSpace,
		preserveTimes:  preserveTimes,
	}
}

// WriteFile 原子写入 targetPath，write 失败时归类为 writeKind
// 任何一步失败都会删除临时文件，目标文件保持原状
func (afo *AtomicFileOperations) WriteFile(op, targetPath string, perm os.FileMode, writeKind ErrorKind, write func(io.Writer) error) error {
	dir := filepath.Dir(targetPath)

	// 步骤1: 创建临时文件
	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return newOpError(classifyIOError(err, writeKind), op, targetPath, err)
	}
	tempPath := tempFile.Name()

	committed := false
	defer func() {
		if committed {
			return
		}
		if err := tempFile.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			afo.logger.Warn("清理临时文件时关闭失败", zap.String("temp_path", tempPath), zap.Error(err))
		}
		if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
			afo.logger.Warn("清理临时文件时删除失败", zap.String("temp_path", tempPath), zap.Error(err))
		}
	}()

	// 步骤2: 写入内容
	if err := write(tempFile); err != nil {
		return newOpError(classifyIOError(err, writeKind), op, targetPath, err)
	}

	// 步骤3: 同步到磁盘
	if err := tempFile.Sync(); err != nil {
		return newOpError(classifyIOError(err, writeKind), op, targetPath, err)
	}
	if err := tempFile.Close(); err != nil {
		return newOpError(classifyIOError(err, writeKind), op, targetPath, err)
	}
	if err := os.Chmod(tempPath, perm); err != nil {
		afo.logger.Warn("设置文件权限失败", zap.String("temp_path", tempPath), zap.Error(err))
	}

	// 步骤4: 重命名为目标文件
	if err := os.Rename(tempPath, targetPath); err != nil {
		return newOpError(classifyIOError(err, writeKind), op, targetPath, err)
	}
	committed = true

	// 步骤5: 同步目录
	if err := syncDir(dir); err != nil {
		afo.logger.Warn("无法同步目录", zap.String("directory", dir), zap.Error(err))
	}

	return nil
}

// CopyFile 把 src 复制到 dst（dst 不应存在），校验大小后返回
// 失败时 dst 不会留下残缺文件，src 不受影响
func (afo *AtomicFileOperations) CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return newOpError(classifyIOError(err, KindMoveIOError), "copy", src, err)
	}
	if !info.Mode().IsRegular() {
		oe := newOpError(KindMoveIOError, "copy", src, nil)
		oe.Detail = "cannot copy non-regular file across devices"
		return oe
	}

	if afo.checkDiskSpace {
		if err := afo.ensureDiskSpace(filepath.Dir(dst), info.Size()); err != nil {
			return err
		}
	}

	in, err := os.Open(src)
	if err != nil {
		return newOpError(classifyIOError(err, KindMoveIOError), "copy", src, err)
	}
	defer in.Close()

	var written int64
	err = afo.WriteFile("copy", dst, info.Mode().Perm(), KindMoveIOError, func(w io.Writer) error {
		n, err := io.Copy(w, in)
		written = n
		return err
	})
	if err != nil {
		return err
	}

	// 校验复制结果
	if err := afo.verifyCopy(dst, info.Size(), written); err != nil {
		if rmErr := os.Remove(dst); rmErr != nil && !os.IsNotExist(rmErr) {
			afo.logger.Warn("删除校验失败的副本失败", zap.String("path", dst), zap.Error(rmErr))
		}
		return err
	}

	if afo.preserveTimes {
		if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
			afo.logger.Warn("保留修改时间失败", zap.String("path", dst), zap.Error(err))
		}
	}

	return nil
}

// verifyCopy 验证副本大小与源文件一致
func (afo *AtomicFileOperations) verifyCopy(dst string, expected, written int64) error {
	info, err := os.Stat(dst)
	if err != nil {
		return newOpError(KindMoveIOError, "verify", dst, err)
	}
	if written != expected || info.Size() != expected {
		oe := newOpError(KindMoveIOError, "verify", dst, nil)
		oe.Detail = fmt.Sprintf("copy size mismatch: expected %d bytes, wrote %d, found %d", expected, written, info.Size())
		return oe
	}
	return nil
}

// ensureDiskSpace 检查目标文件系统剩余空间
func (afo *AtomicFileOperations) ensureDiskSpace(dir string, required int64) error {
	usage, err := disk.Usage(dir)
	if err != nil {
		// 无法获取磁盘信息时不阻止操作
		afo.logger.Debug("无法获取磁盘使用情况", zap.String("directory", dir), zap.Error(err))
		return nil
	}
	if required > 0 && usage.Free < uint64(required) {
		oe := newOpError(KindMoveIOError, "copy", dir, nil)
		oe.Detail = fmt.Sprintf("insufficient disk space: need %d bytes, %d available", required, usage.Free)
		return oe
	}
	return nil
}

// syncDir 同步目录到磁盘
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
