package translator

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/nerdneilsfield/go-docx-translator/internal/cache"
	"github.com/nerdneilsfield/go-docx-translator/internal/config"
	"github.com/nerdneilsfield/go-docx-translator/pkg/providers"
)

// Counters 翻译调用统计
type Counters struct {
	Requests    int // 实际发往后端的请求
	Failures    int // 后端失败，返回原文
	CacheHits   int
	Predefined  int // 命中预定义译文
	Passthrough int // URL 原样返回
}

// Adapter 把提供商包装成不会失败的翻译函数
type Adapter struct {
	provider   providers.Provider
	cache      cache.TranslationCache
	predefined *config.PredefinedTranslation
	logger     *zap.Logger
	counters   Counters
}

// AdapterOption 配置 Adapter
type AdapterOption func(*Adapter)

// WithCache 只缓存成功的翻译结果
func WithCache(c cache.TranslationCache) AdapterOption {
	return func(a *Adapter) {
		a.cache = c
	}
}

// WithPredefined 在调用后端之前查找预定义译文
func WithPredefined(p *config.PredefinedTranslation) AdapterOption {
	return func(a *Adapter) {
		a.predefined = p
	}
}

// NewAdapter 创建翻译适配器
func NewAdapter(provider providers.Provider, logger *zap.Logger, opts ...AdapterOption) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Adapter{
		provider: provider,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Translate 翻译一段文本。URL 原样返回；后端出错或返回空内容时记录警告并返回原文
func (a *Adapter) Translate(ctx context.Context, text, targetLang string) string {
	if isURL(text) {
		a.counters.Passthrough++
		return text
	}

	if v, ok := a.predefined.Lookup(text, targetLang); ok {
		a.counters.Predefined++
		return v
	}

	key := cache.Key(text, targetLang, a.provider.GetName())
	if a.cache != nil {
		if v, ok := a.cache.Get(key); ok {
			a.counters.CacheHits++
			return v
		}
	}

	a.counters.Requests++
	resp, err := a.provider.Translate(ctx, &providers.ProviderRequest{
		Text:           text,
		TargetLanguage: targetLang,
	})
	if err != nil {
		a.counters.Failures++
		a.logger.Warn("translation failed, keeping original text",
			zap.String("provider", a.provider.GetName()),
			zap.String("code", providers.ErrorCode(err)),
			zap.Int("length", len([]rune(text))),
			zap.Error(err))
		return text
	}

	translated := strings.TrimSpace(resp.Text)
	if translated == "" {
		a.counters.Failures++
		a.logger.Warn("empty translation, keeping original text",
			zap.String("provider", a.provider.GetName()))
		return text
	}

	if a.cache != nil {
		if err := a.cache.Set(key, translated); err != nil {
			a.logger.Debug("failed to cache translation", zap.Error(err))
		}
	}
	return translated
}

// Counters 返回到目前为止的统计
func (a *Adapter) Counters() Counters {
	return a.counters
}

// Provider 返回使用中的提供商
func (a *Adapter) Provider() providers.Provider {
	return a.provider
}

func isURL(text string) bool {
	return strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://")
}
