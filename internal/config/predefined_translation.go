package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// PredefinedTranslation 固定译文，优先于翻译后端使用
type PredefinedTranslation struct {
	SourceLang   string            `toml:"source_lang"`
	TargetLang   string            `toml:"target_lang"`
	Translations map[string]string `toml:"translations"`
}

func NewPredefinedTranslation(sourceLang, targetLang string, translations map[string]string) *PredefinedTranslation {
	return &PredefinedTranslation{
		SourceLang:   sourceLang,
		TargetLang:   targetLang,
		Translations: translations,
	}
}

func LoadPredefinedTranslations(path string) (*PredefinedTranslation, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("predefined translations file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read predefined translations file: %w", err)
	}

	translations := &PredefinedTranslation{}
	if err := toml.Unmarshal(content, translations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal predefined translations: %w", err)
	}
	if translations.SourceLang == "" || translations.TargetLang == "" {
		return nil, fmt.Errorf("predefined translations file is missing source_lang or target_lang")
	}
	return translations, nil
}

// Lookup 查找精确匹配的译文（忽略首尾空白），目标语言不一致时不生效
func (p *PredefinedTranslation) Lookup(text, targetLang string) (string, bool) {
	if p == nil || len(p.Translations) == 0 {
		return "", false
	}
	if !sameLanguage(p.TargetLang, targetLang) {
		return "", false
	}
	v, ok := p.Translations[strings.TrimSpace(text)]
	return v, ok
}

func sameLanguage(a, b string) bool {
	la, errA := ParseLanguage(a)
	lb, errB := ParseLanguage(b)
	if errA != nil || errB != nil {
		return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
	}
	return la.Name == lb.Name
}
