package i18n

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Language 语言枚举
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageChinese Language = "zh"
	LanguageRussian Language = "ru"
)

// TextKey 文本键枚举
type TextKey string

const (
	// 菜单文本
	TextChooseOperation TextKey = "choose_operation"
	TextOptionGrayscale TextKey = "option_grayscale"
	TextOptionMove      TextKey = "option_move"
	TextEnterChoice     TextKey = "enter_choice"
	TextEnterImagePath  TextKey = "enter_image_path"
	TextEnterDestDir    TextKey = "enter_dest_dir"
	TextInvalidChoice   TextKey = "invalid_choice"

	// 结果文本
	TextConverted     TextKey = "converted"
	TextMoved         TextKey = "moved"
	TextErrorPrefix   TextKey = "error_prefix"
	TextFormatsHeader TextKey = "formats_header"

	// 历史文本
	TextHistoryHeader   TextKey = "history_header"
	TextHistoryEmpty    TextKey = "history_empty"
	TextHistoryDisabled TextKey = "history_disabled"
	TextHistoryStats    TextKey = "history_stats"
	TextSucceeded       TextKey = "succeeded"
	TextFailed          TextKey = "failed"

	// 错误类别文本
	TextKindNotFound                 TextKey = "kind_not_found"
	TextKindUnsupportedFormat        TextKey = "kind_unsupported_format"
	TextKindDestinationNotFound      TextKey = "kind_destination_not_found"
	TextKindDestinationNotADirectory TextKey = "kind_destination_not_a_directory"
	TextKindPermissionDenied         TextKey = "kind_permission_denied"
	TextKindCodecError               TextKey = "kind_codec_error"
	TextKindMoveIOError              TextKey = "kind_move_io_error"
	TextKindCollisionLimitExceeded   TextKey = "kind_collision_limit_exceeded"
)

// I18nManager 国际化管理器
type I18nManager struct {
	mu              sync.RWMutex
	currentLanguage Language
	translations    map[Language]map[TextKey]string
}

var (
	globalI18nManager *I18nManager
	globalOnce        sync.Once
)

// NewI18nManager 创建国际化管理器，默认英文
func NewI18nManager() *I18nManager {
	return &I18nManager{
		currentLanguage: LanguageEnglish,
		translations: map[Language]map[TextKey]string{
			LanguageEnglish: englishTexts,
			LanguageChinese: chineseTexts,
			LanguageRussian: russianTexts,
		},
	}
}

// ParseLanguage 解析语言代码，接受 "en", "zh_CN", "ru-RU" 等形式
func ParseLanguage(code string) (Language, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "_-."); i > 0 {
		code = code[:i]
	}
	switch Language(code) {
	case LanguageEnglish, LanguageChinese, LanguageRussian:
		return Language(code), nil
	}
	return "", fmt.Errorf("unsupported language: %q", code)
}

// GetText 获取指定键的文本，缺失时回退到英文，再回退到键名
func (im *I18nManager) GetText(key TextKey) string {
	im.mu.RLock()
	lang := im.currentLanguage
	im.mu.RUnlock()

	if text, ok := im.translations[lang][key]; ok {
		return text
	}
	if text, ok := im.translations[LanguageEnglish][key]; ok {
		return text
	}
	return string(key)
}

// SetLanguage 设置语言
func (im *I18nManager) SetLanguage(lang Language) error {
	if _, exists := im.translations[lang]; !exists {
		return fmt.Errorf("unsupported language: %s", lang)
	}
	im.mu.Lock()
	im.currentLanguage = lang
	im.mu.Unlock()
	return nil
}

// GetCurrentLanguage 获取当前语言
func (im *I18nManager) GetCurrentLanguage() Language {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.currentLanguage
}

// GetSupportedLanguages 获取支持的语言列表
func (im *I18nManager) GetSupportedLanguages() []Language {
	languages := make([]Language, 0, len(im.translations))
	for lang := range im.translations {
		languages = append(languages, lang)
	}
	sort.Slice(languages, func(i, j int) bool { return languages[i] < languages[j] })
	return languages
}

// GetGlobalI18nManager 获取全局国际化管理器
func GetGlobalI18nManager() *I18nManager {
	globalOnce.Do(func() {
		globalI18nManager = NewI18nManager()
	})
	return globalI18nManager
}

// T 获取文本的便捷函数
func T(key TextKey) string {
	return GetGlobalI18nManager().GetText(key)
}

// Tf 获取并格式化文本
func Tf(key TextKey, args ...interface{}) string {
	return fmt.Sprintf(T(key), args...)
}
