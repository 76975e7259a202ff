package imageops

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// PathUtils 路径处理工具
type PathUtils struct{}

// GlobalPathUtils 全局路径处理工具实例
var GlobalPathUtils = &PathUtils{}

// NormalizePath 规范化用户输入的路径
func (pu *PathUtils) NormalizePath(input string) (string, error) {
	path := input

	// 1. 拖放到终端的 file:// URI
	if strings.HasPrefix(path, "file://") {
		if u, err := url.Parse(path); err == nil && u.Path != "" {
			path = u.Path
		}
	}

	// 2. 处理 ~ 符号
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(homeDir, path[1:])
	}

	// 3. 转换为绝对路径
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	// 4. 非 UTF-8 路径：原路径存在时保持原字节，否则尝试 GBK 修复
	if !utf8.ValidString(absPath) {
		if _, err := os.Lstat(absPath); err == nil {
			return absPath, nil
		}
		if fixed := pu.detectAndFixEncoding(absPath); fixed != absPath {
			if _, err := os.Lstat(fixed); err == nil {
				return fixed, nil
			}
		}
	}

	return absPath, nil
}

// detectAndFixEncoding 尝试按 GBK/GB18030 重新解码非UTF-8路径
func (pu *PathUtils) detectAndFixEncoding(path string) string {
	encodings := []transform.Transformer{
		simplifiedchinese.GBK.NewDecoder(),
		simplifiedchinese.GB18030.NewDecoder(),
	}

	for _, decoder := range encodings {
		reader := transform.NewReader(strings.NewReader(path), decoder)
		decoded, err := io.ReadAll(reader)
		if err != nil {
			continue
		}
		decodedStr := string(decoded)
		if utf8.ValidString(decodedStr) && len(strings.TrimSpace(decodedStr)) > 0 {
			return decodedStr
		}
	}

	return path
}

// ValidatePath 检查路径是否为空或包含控制字符
func (pu *PathUtils) ValidatePath(path string) bool {
	if path == "" {
		return false
	}
	for _, char := range []string{"\x00", "\n", "\r"} {
		if strings.Contains(path, char) {
			return false
		}
	}
	return true
}
