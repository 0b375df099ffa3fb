package types

import "strings"

// Language selects the catalog used for user facing text
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageGerman  Language = "de"

	DefaultLanguage = LanguageEnglish
)

func AllLanguages() []Language {
	return []Language{LanguageEnglish, LanguageGerman}
}

func (l Language) IsValid() bool {
	return l == LanguageEnglish || l == LanguageGerman
}

func (l Language) String() string {
	return string(l)
}

// ParseLanguage accepts a language code or an Accept-Language style value
// such as "de-DE,de;q=0.9" and falls back to DefaultLanguage.
func ParseLanguage(s string) Language {
	for _, part := range strings.Split(s, ",") {
		code := strings.TrimSpace(part)
		if i := strings.IndexAny(code, ";-_"); i >= 0 {
			code = code[:i]
		}
		lang := Language(strings.ToLower(code))
		if lang.IsValid() {
			return lang
		}
	}
	return DefaultLanguage
}
