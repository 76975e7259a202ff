package imageops

import (
	"errors"
	"io/fs"
	"strings"
)

// ErrorKind 定义失败类型
type ErrorKind string

const (
	KindNone                     ErrorKind = ""
	KindNotFound                 ErrorKind = "NOT_FOUND"
	KindUnsupportedFormat        ErrorKind = "UNSUPPORTED_FORMAT"
	KindDestinationNotFound      ErrorKind = "DESTINATION_NOT_FOUND"
	KindDestinationNotADirectory ErrorKind = "DESTINATION_NOT_A_DIRECTORY"
	KindPermissionDenied         ErrorKind = "PERMISSION_DENIED"
	KindCodecError               ErrorKind = "CODEC_ERROR"
	KindMoveIOError              ErrorKind = "MOVE_IO_ERROR"
	KindCollisionLimitExceeded   ErrorKind = "COLLISION_LIMIT_EXCEEDED"
)

// IsSourceInvalid 源文件未通过校验（移动操作中统称 SourceInvalid）
func (k ErrorKind) IsSourceInvalid() bool {
	return k == KindNotFound || k == KindUnsupportedFormat
}

// defaultMessages 每种失败类型的默认描述
var defaultMessages = map[ErrorKind]string{
	KindNotFound:                 "file does not exist",
	KindUnsupportedFormat:        "unsupported file format",
	KindDestinationNotFound:      "destination directory does not exist",
	KindDestinationNotADirectory: "destination path is not a directory",
	KindPermissionDenied:         "permission denied",
	KindCodecError:               "image could not be processed",
	KindMoveIOError:              "file could not be moved",
	KindCollisionLimitExceeded:   "no free file name left in destination",
}

// OpError 操作错误，携带失败类型
type OpError struct {
	Kind   ErrorKind
	Op     string
	Path   string
	Detail string
	Err    error
}

// Error 实现error接口
func (e *OpError) Error() string {
	var builder strings.Builder
	builder.WriteString(e.Op)
	builder.WriteString(": ")
	if e.Detail != "" {
		builder.WriteString(e.Detail)
	} else {
		builder.WriteString(defaultMessages[e.Kind])
	}
	if e.Path != "" {
		builder.WriteString(": ")
		builder.WriteString(e.Path)
	}
	if e.Err != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Err.Error())
	}
	return builder.String()
}

// Unwrap 支持错误链
func (e *OpError) Unwrap() error {
	return e.Err
}

func newOpError(kind ErrorKind, op, path string, err error) *OpError {
	return &OpError{Kind: kind, Op: op, Path: path, Err: err}
}

// KindOf 提取错误链中的失败类型
func KindOf(err error) ErrorKind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return KindNone
}

// IsKind 判断错误是否属于指定类型
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// classifyIOError 将文件系统错误归类，权限问题单独标记
func classifyIOError(err error, fallback ErrorKind) ErrorKind {
	if errors.Is(err, fs.ErrPermission) {
		return KindPermissionDenied
	}
	return fallback
}
