package imageops

import (
	"os"
	"path/filepath"
	"strings"
)

// PathValidator 图片路径校验器
type PathValidator struct {
	formats *FormatSet
}

// NewPathValidator 创建路径校验器
func NewPathValidator(formats *FormatSet) *PathValidator {
	return &PathValidator{formats: formats}
}

// Validate 先检查存在性，再检查扩展名
// 只要求路径存在，不区分文件类型；需要普通文件的操作自行检查
func (pv *PathValidator) Validate(path string) ValidationResult {
	// 任何stat失败都视为不存在（包括空路径和非法字符）
	if path == "" {
		return ValidationResult{Reason: KindNotFound}
	}
	if _, err := os.Stat(path); err != nil {
		return ValidationResult{Reason: KindNotFound}
	}

	_, ext := splitName(filepath.Base(path))
	ext = strings.ToLower(ext)
	if !pv.formats.Contains(ext) {
		return ValidationResult{Reason: KindUnsupportedFormat, Extension: ext}
	}

	return ValidationResult{Extension: ext}
}

// validationError 把无效结果转换为操作错误
func validationError(op, path string, result ValidationResult) *OpError {
	oe := newOpError(result.Reason, op, path, nil)
	if result.Reason == KindUnsupportedFormat {
		if result.Extension == "" {
			oe.Detail = "unsupported file format (no extension)"
		} else {
			oe.Detail = "unsupported file format " + result.Extension
		}
	}
	return oe
}
