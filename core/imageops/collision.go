package imageops

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
)

// DefaultMaxCollisionAttempts 默认最大后缀编号
const DefaultMaxCollisionAttempts = 10000

// CollisionResolver 目标文件名冲突解析器
type CollisionResolver struct {
	maxAttempts int
	logger      *zap.Logger
}

// NewCollisionResolver 创建冲突解析器，maxAttempts<=0 时使用默认值
func NewCollisionResolver(maxAttempts int, logger *zap.Logger) *CollisionResolver {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxCollisionAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollisionResolver{maxAttempts: maxAttempts, logger: logger}
}

// Resolve 返回 dir 下第一个不存在的候选路径：
// filename, name_1.ext, name_2.ext, ...
func (cr *CollisionResolver) Resolve(dir, filename string) (string, error) {
	candidate := filepath.Join(dir, filename)
	taken, err := pathTaken(candidate)
	if err != nil {
		return "", newOpError(classifyIOError(err, KindMoveIOError), "resolve", candidate, err)
	}
	if !taken {
		return candidate, nil
	}

	name, ext := splitName(filename)
	for counter := 1; counter <= cr.maxAttempts; counter++ {
		candidate = filepath.Join(dir, name+"_"+strconv.Itoa(counter)+ext)
		taken, err = pathTaken(candidate)
		if err != nil {
			return "", newOpError(classifyIOError(err, KindMoveIOError), "resolve", candidate, err)
		}
		if !taken {
			if counter > 1 {
				cr.logger.Debug("文件名冲突已解析", zap.String("filename", filename), zap.Int("counter", counter))
			}
			return candidate, nil
		}
	}

	oe := newOpError(KindCollisionLimitExceeded, "resolve", filepath.Join(dir, filename), nil)
	oe.Detail = "no free file name after " + strconv.Itoa(cr.maxAttempts) + " attempts"
	return "", oe
}

// pathTaken 路径上是否已有条目（悬空符号链接也算占用）
func pathTaken(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
