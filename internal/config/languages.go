package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language 可选的目标语言
type Language struct {
	// Name 传给翻译后端的语言名
	Name string
	Tag  language.Tag
}

// DisplayName 英文显示名，例如 "Traditional Chinese"
func (l Language) DisplayName() string {
	return display.English.Tags().Name(l.Tag)
}

// SelfName 语言的自称，例如 "ไทย"
func (l Language) SelfName() string {
	return display.Self.Name(l.Tag)
}

var supportedLanguages = []Language{
	{Name: "english", Tag: language.English},
	{Name: "thai", Tag: language.Thai},
	{Name: "traditional chinese", Tag: language.TraditionalChinese},
	{Name: "simplified chinese", Tag: language.SimplifiedChinese},
	{Name: "japanese", Tag: language.Japanese},
}

// Languages 返回支持的目标语言
func Languages() []Language {
	out := make([]Language, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// ParseLanguage 接受语言名（english, traditional-chinese）或 BCP 47 标签（th, zh-TW）
func ParseLanguage(s string) (Language, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "" {
		return Language{}, fmt.Errorf("target language is empty")
	}
	norm = strings.NewReplacer("-", " ", "_", " ").Replace(norm)
	for _, l := range supportedLanguages {
		if norm == l.Name || strings.EqualFold(norm, l.DisplayName()) {
			return l, nil
		}
	}

	tag, err := language.Parse(strings.TrimSpace(s))
	if err == nil {
		base, _ := tag.Base()
		script, _ := tag.Script()
		for _, l := range supportedLanguages {
			lBase, _ := l.Tag.Base()
			if base != lBase {
				continue
			}
			if lBase.String() == "zh" {
				lScript, _ := l.Tag.Script()
				if script != lScript {
					continue
				}
			}
			return l, nil
		}
	}

	return Language{}, fmt.Errorf("unsupported target language %q (supported: %s)", s, strings.Join(languageNames(), ", "))
}

func languageNames() []string {
	names := make([]string, 0, len(supportedLanguages))
	for _, l := range supportedLanguages {
		names = append(names, l.Name)
	}
	return names
}
