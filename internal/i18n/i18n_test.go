package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllLanguagesHaveEveryKey(t *testing.T) {
	for key := range englishTexts {
		assert.Contains(t, chineseTexts, key, "zh missing %s", key)
		assert.Contains(t, russianTexts, key, "ru missing %s", key)
	}
	assert.Len(t, chineseTexts, len(englishTexts))
	assert.Len(t, russianTexts, len(englishTexts))
}

func TestSetLanguage(t *testing.T) {
	im := NewI18nManager()
	assert.Equal(t, LanguageEnglish, im.GetCurrentLanguage())
	assert.Equal(t, "Invalid operation choice", im.GetText(TextInvalidChoice))

	require.NoError(t, im.SetLanguage(LanguageRussian))
	assert.Equal(t, "Неверный выбор операции", im.GetText(TextInvalidChoice))

	assert.Error(t, im.SetLanguage("de"))
	assert.Equal(t, LanguageRussian, im.GetCurrentLanguage())
}

func TestUnknownKeyFallsBackToKeyName(t *testing.T) {
	im := NewI18nManager()
	assert.Equal(t, "no_such_key", im.GetText("no_such_key"))
}

func TestParseLanguage(t *testing.T) {
	tests := map[string]Language{
		"en":          LanguageEnglish,
		"ZH":          LanguageChinese,
		"zh_CN.UTF-8": LanguageChinese,
		"ru-RU":       LanguageRussian,
	}
	for input, want := range tests {
		got, err := ParseLanguage(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}

	_, err := ParseLanguage("klingon")
	assert.Error(t, err)
}

func TestSupportedLanguagesSorted(t *testing.T) {
	assert.Equal(t, []Language{LanguageEnglish, LanguageRussian, LanguageChinese}, NewI18nManager().GetSupportedLanguages())
}

func TestFormattedText(t *testing.T) {
	require.NoError(t, GetGlobalI18nManager().SetLanguage(LanguageEnglish))
	assert.Equal(t, "Image moved successfully: /x.png", Tf(TextMoved, "/x.png"))
}
