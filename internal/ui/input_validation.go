package ui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"imgproc/core/imageops"
)

// maxInputLength 输入长度上限（字节）
const maxInputLength = 4096

// SanitizeInput 清理输入字符串
// 去除首尾空白、控制字符以及拖放路径时终端加上的引号
func SanitizeInput(input string) string {
	input = strings.TrimSpace(stripControl(input))

	// 拖放路径常被包在成对的引号中
	for len(input) >= 2 {
		first, last := input[0], input[len(input)-1]
		if (first == '"' || first == '\'') && first == last {
			input = strings.TrimSpace(input[1 : len(input)-1])
			continue
		}
		break
	}

	// 终端转义的空格 "my\ photo.png"
	if !strings.Contains(input, `\\`) {
		input = strings.ReplaceAll(input, `\ `, " ")
	}

	if len(input) > maxInputLength {
		cut := maxInputLength
		for cut > 0 && !utf8.RuneStart(input[cut]) {
			cut--
		}
		input = input[:cut]
	}

	return input
}

// stripControl 去除控制字符，非 UTF-8 字节原样保留（文件名可能不是 UTF-8）
func stripControl(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(input[i])
		} else if !unicode.IsControl(r) {
			b.WriteString(input[i : i+size])
		}
		i += size
	}
	return b.String()
}

// NormalizeInputPath 清理并规范化用户输入的路径
// 规范化失败时返回清理后的原始输入，由后续校验给出具体错误
func NormalizeInputPath(input string) string {
	cleaned := SanitizeInput(input)
	if !imageops.GlobalPathUtils.ValidatePath(cleaned) {
		return cleaned
	}
	normalized, err := imageops.GlobalPathUtils.NormalizePath(cleaned)
	if err != nil {
		return cleaned
	}
	return normalized
}

// ParseMenuChoice 解析菜单选择，返回 1 起始的编号，无效时返回 0
func ParseMenuChoice(input string, count int) int {
	cleaned := SanitizeInput(input)
	if len(cleaned) != 1 || cleaned[0] < '1' || cleaned[0] > '9' {
		return 0
	}
	choice := int(cleaned[0] - '0')
	if choice > count {
		return 0
	}
	return choice
}
