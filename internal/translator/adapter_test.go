package translator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nerdneilsfield/go-docx-translator/internal/cache"
	"github.com/nerdneilsfield/go-docx-translator/internal/config"
	"github.com/nerdneilsfield/go-docx-translator/pkg/providers"
)

func TestAdapterURLPassthrough(t *testing.T) {
	p := &mockProvider{}
	a := NewAdapter(p, zap.NewNop())

	for _, url := range []string{"http://example.com/a", "https://example.com/b c"} {
		assert.Equal(t, url, a.Translate(context.Background(), url, "thai"))
	}
	p.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 2, a.Counters().Passthrough)
}

func TestAdapterBackendFailure(t *testing.T) {
	p := &mockProvider{}
	p.On("Translate", mock.Anything, "Hello", "thai").
		Return(nil, providers.WrapError("grok", providers.CodeAuth, "chat completion failed", errors.New("401")))

	core, logs := observer.New(zapcore.WarnLevel)
	a := NewAdapter(p, zap.New(core))

	assert.Equal(t, "Hello", a.Translate(context.Background(), "Hello", "thai"))
	assert.Equal(t, 1, a.Counters().Failures)

	entries := logs.FilterMessage("translation failed, keeping original text").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "auth", entries[0].ContextMap()["code"])
	}
}

func TestAdapterEmptyResponse(t *testing.T) {
	p := &mockProvider{}
	p.On("Translate", mock.Anything, "Hello", "thai").
		Return(&providers.ProviderResponse{Text: "  \n"}, nil)

	mem := cache.NewMemoryCache(0)
	a := NewAdapter(p, zap.NewNop(), WithCache(mem))

	assert.Equal(t, "Hello", a.Translate(context.Background(), "Hello", "thai"))
	assert.Equal(t, 0, mem.Len())
	assert.Equal(t, 1, a.Counters().Failures)
}

func TestAdapterTrimsAndCaches(t *testing.T) {
	p := &mockProvider{}
	p.On("Translate", mock.Anything, "Hello", "french").
		Return(&providers.ProviderResponse{Text: "  Bonjour\n"}, nil).Once()

	mem := cache.NewMemoryCache(0)
	a := NewAdapter(p, zap.NewNop(), WithCache(mem))

	assert.Equal(t, "Bonjour", a.Translate(context.Background(), "Hello", "french"))
	assert.Equal(t, "Bonjour", a.Translate(context.Background(), "Hello", "french"))

	p.AssertNumberOfCalls(t, "Translate", 1)
	assert.Equal(t, Counters{Requests: 1, CacheHits: 1}, a.Counters())

	cached, ok := mem.Get(cache.Key("Hello", "french", "grok"))
	assert.True(t, ok)
	assert.Equal(t, "Bonjour", cached)
}

func TestAdapterPredefined(t *testing.T) {
	p := &mockProvider{}
	p.On("Translate", mock.Anything, "Other", "thai").
		Return(&providers.ProviderResponse{Text: "อื่น"}, nil)

	table := config.NewPredefinedTranslation("english", "thai", map[string]string{"Report": "รายงาน"})
	a := NewAdapter(p, nil, WithPredefined(table))

	assert.Equal(t, "รายงาน", a.Translate(context.Background(), "Report", "thai"))
	assert.Equal(t, "อื่น", a.Translate(context.Background(), "Other", "thai"))
	p.AssertNotCalled(t, "Translate", mock.Anything, "Report", mock.Anything)
	assert.Equal(t, 1, a.Counters().Predefined)
	assert.Equal(t, providers.Grok, a.Provider().Kind())
}
