package imageops

import (
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// FileMover 带冲突解析的文件移动器
type FileMover struct {
	validator *PathValidator
	resolver  *CollisionResolver
	atomicOps *AtomicFileOperations
	logger    *zap.Logger

	// rename 可替换，用于模拟跨设备移动
	rename func(oldpath, newpath string) error
}

// NewFileMover 创建文件移动器
func NewFileMover(validator *PathValidator, resolver *CollisionResolver, atomicOps *AtomicFileOperations, logger *zap.Logger) *FileMover {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileMover{
		validator: validator,
		resolver:  resolver,
		atomicOps: atomicOps,
		logger:    logger,
		rename:    os.Rename,
	}
}

// Move 将 sourcePath 移动到 destinationDir，返回最终路径
func (fm *FileMover) Move(sourcePath, destinationDir string) (string, error) {
	const op = "move"

	// 1. 检查源文件
	if result := fm.validator.Validate(sourcePath); !result.Valid() {
		return "", validationError(op, sourcePath, result)
	}
	// 校验只看存在性和扩展名，名为 x.png 的目录不能被当作图片移动
	if info, err := os.Stat(sourcePath); err != nil || !info.Mode().IsRegular() {
		oe := newOpError(KindUnsupportedFormat, op, sourcePath, err)
		oe.Detail = "source is not a regular file"
		return "", oe
	}

	// 2. 检查目标目录
	if err := fm.checkDestination(op, destinationDir); err != nil {
		return "", err
	}

	// 3. 解析文件名冲突
	finalPath, err := fm.resolver.Resolve(destinationDir, filepath.Base(sourcePath))
	if err != nil {
		return "", err
	}

	// 4. 执行移动
	if err := fm.moveFile(sourcePath, finalPath); err != nil {
		return "", err
	}

	return finalPath, nil
}

// checkDestination 依次检查存在性、目录类型、写权限
func (fm *FileMover) checkDestination(op, dir string) error {
	if dir == "" {
		return newOpError(KindDestinationNotFound, op, dir, nil)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return newOpError(KindDestinationNotFound, op, dir, nil)
	}
	if !info.IsDir() {
		return newOpError(KindDestinationNotADirectory, op, dir, nil)
	}
	if err := checkWritePermission(dir); err != nil {
		oe := newOpError(KindPermissionDenied, op, dir, err)
		oe.Detail = "no write permission on destination directory"
		return oe
	}
	return nil
}

// checkWritePermission 检查调用者对目录的写权限和进入权限
func checkWritePermission(dir string) error {
	return unix.Access(dir, unix.W_OK|unix.X_OK)
}

// moveFile 先尝试重命名，跨设备时复制、校验后再删除源文件
func (fm *FileMover) moveFile(src, dst string) error {
	err := fm.rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, unix.EXDEV) {
		return newOpError(classifyIOError(err, KindMoveIOError), "move", src, err)
	}

	fm.logger.Debug("跨设备移动，改用复制", zap.String("source", src), zap.String("destination", dst))

	if err := fm.atomicOps.CopyFile(src, dst); err != nil {
		return err
	}

	// 复制已校验，删除源文件；删除失败则撤销副本，保证不出现两份
	if err := os.Remove(src); err != nil {
		if rmErr := os.Remove(dst); rmErr != nil && !os.IsNotExist(rmErr) {
			fm.logger.Warn("撤销副本失败", zap.String("path", dst), zap.Error(rmErr))
		}
		oe := newOpError(classifyIOError(err, KindMoveIOError), "move", src, err)
		oe.Detail = "source could not be removed after copy"
		return oe
	}

	return nil
}
