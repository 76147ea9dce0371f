package factory

import (
	"fmt"
	"time"

	"github.com/nerdneilsfield/go-docx-translator/pkg/providers"
	"github.com/nerdneilsfield/go-docx-translator/pkg/providers/freechatgpt"
	"github.com/nerdneilsfield/go-docx-translator/pkg/providers/gemini"
	"github.com/nerdneilsfield/go-docx-translator/pkg/providers/grok"
)

// SettingsSource 提供每种提供商的连接参数（通常是配置对象）
type SettingsSource interface {
	ProviderSettings(kind providers.Kind) providers.Settings
}

// Options 创建提供商的公共选项
type Options struct {
	// Timeout 单次请求超时，0 表示不限制
	Timeout time.Duration
}

// New 根据类型创建提供商
func New(kind providers.Kind, settings providers.Settings, opts Options) (providers.Provider, error) {
	defaults := providers.DefaultSettings(kind)
	base := providers.BaseConfig{
		APIKey:      firstNonEmpty(settings.APIKey, defaults.APIKey),
		APIEndpoint: firstNonEmpty(settings.APIURL, defaults.APIURL),
		Model:       firstNonEmpty(settings.Model, defaults.Model),
		Timeout:     opts.Timeout,
	}

	switch kind {
	case providers.Grok:
		config := grok.DefaultConfig()
		config.BaseConfig = base
		return grok.New(config), nil
	case providers.FreeChatGPT:
		config := freechatgpt.DefaultConfig()
		config.BaseConfig = base
		return freechatgpt.New(config), nil
	case providers.Gemini:
		config := gemini.DefaultConfig()
		config.BaseConfig = base
		return gemini.New(config), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", kind)
	}
}

// NewRegistry 为所有提供商类型创建实例并注册
func NewRegistry(source SettingsSource, opts Options) (*providers.Registry, error) {
	registry := providers.NewRegistry()
	for _, kind := range providers.Kinds() {
		p, err := New(kind, source.ProviderSettings(kind), opts)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(p); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
