package imageops

import (
	"path/filepath"
	"sort"
	"strings"
)

// DefaultFormats 默认支持的图片扩展名
var DefaultFormats = []string{".png", ".jpg", ".jpeg", ".bmp"}

// HasCodec 判断扩展名是否有可用的编解码器（输入可带或不带点）
func HasCodec(ext string) bool {
	ext = normalizeExt(ext)
	for _, known := range DefaultFormats {
		if ext == known {
			return true
		}
	}
	return false
}

// normalizeExt 转为小写并补上前导点，空输入返回空串
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// FormatSet 支持的扩展名集合，构造后只读
type FormatSet struct {
	exts map[string]struct{}
}

// NewFormatSet 创建扩展名集合，输入可带或不带点，大小写不敏感
func NewFormatSet(exts ...string) *FormatSet {
	fs := &FormatSet{exts: make(map[string]struct{}, len(exts))}
	for _, ext := range exts {
		ext = normalizeExt(ext)
		if ext == "" {
			continue
		}
		fs.exts[ext] = struct{}{}
	}
	return fs
}

// Contains 判断扩展名是否受支持
func (fs *FormatSet) Contains(ext string) bool {
	_, ok := fs.exts[strings.ToLower(ext)]
	return ok
}

// List 返回排序后的扩展名列表（副本）
func (fs *FormatSet) List() []string {
	list := make([]string, 0, len(fs.exts))
	for ext := range fs.exts {
		list = append(list, ext)
	}
	sort.Strings(list)
	return list
}

// splitName 拆分文件名为主名和扩展名
// 以点开头且没有其他点的名称（如 ".png"）视为没有扩展名
func splitName(filename string) (name, ext string) {
	ext = filepath.Ext(filename)
	name = strings.TrimSuffix(filename, ext)
	if strings.Trim(name, ".") == "" {
		return filename, ""
	}
	return name, ext
}
