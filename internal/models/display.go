package models

import (
	"fmt"
	"strconv"
)

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageChinese Language = "zh"
)

// ParseLanguage maps anything other than "zh" to English.
func ParseLanguage(s string) Language {
	if Language(s) == LanguageChinese {
		return LanguageChinese
	}
	return LanguageEnglish
}

// DisplaySettings is the per-request view context. It is passed explicitly to
// the selection engine and the question renderers.
type DisplaySettings struct {
	Language     Language `json:"language" form:"lang"`
	ShowMetadata bool     `json:"showMetadata" form:"showMetadata"`
	ShowPercent  bool     `json:"showPercent" form:"showPercent"`
	ShowAnswer   bool     `json:"showAnswer" form:"showAnswer"`
}

// DefaultDisplaySettings has every toggle on.
func DefaultDisplaySettings() DisplaySettings {
	return DisplaySettings{
		Language:     LanguageEnglish,
		ShowMetadata: true,
		ShowPercent:  true,
		ShowAnswer:   true,
	}
}

// PercentVisible is true only when both metadata and percent are shown.
func (d DisplaySettings) PercentVisible() bool {
	return d.ShowMetadata && d.ShowPercent
}

// AnswerVisible is true only when both metadata and answer are shown.
func (d DisplaySettings) AnswerVisible() bool {
	return d.ShowMetadata && d.ShowAnswer
}

// ImageSuffix is "c" for the Chinese UI and "e" otherwise.
func (d DisplaySettings) ImageSuffix() string {
	if d.Language == LanguageChinese {
		return "c"
	}
	return "e"
}

// ImageURL builds the pre-rendered image path for a question.
func (d DisplaySettings) ImageURL(base string, qID int64) string {
	return fmt.Sprintf("%s/%d%s.png", base, qID, d.ImageSuffix())
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
