// Package grok 通过 OpenAI 兼容接口调用 xAI Grok
package grok

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/nerdneilsfield/go-docx-translator/pkg/providers"
)

// Config Grok 配置
type Config struct {
	providers.BaseConfig
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		BaseConfig:  providers.DefaultConfig(providers.Grok),
		Temperature: providers.Temperature,
		MaxTokens:   providers.MaxTokens,
	}
}

// Provider Grok 提供商（使用官方 OpenAI SDK）
type Provider struct {
	config Config
	client openai.Client
}

var _ providers.Provider = (*Provider)(nil)

// New 创建新的 Grok 提供商
func New(config Config) *Provider {
	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		// 不自动重试
		option.WithMaxRetries(0),
	}

	if config.APIEndpoint != "" {
		opts = append(opts, option.WithBaseURL(config.APIEndpoint))
	}
	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(config.Timeout))
	}
	if config.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(config.HTTPClient))
	}

	return &Provider{
		config: config,
		client: openai.NewClient(opts...),
	}
}

// Translate 执行翻译
func (p *Provider) Translate(ctx context.Context, req *providers.ProviderRequest) (*providers.ProviderResponse, error) {
	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(providers.SystemPrompt),
			openai.UserMessage(providers.BuildPrompt(req.Text, req.TargetLanguage)),
		},
		Model:       openai.ChatModel(p.config.Model),
		Temperature: openai.Float(p.config.Temperature),
		MaxTokens:   openai.Int(int64(p.config.MaxTokens)),
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, p.wrap(err)
	}
	if len(completion.Choices) == 0 {
		return nil, providers.NewError(p.GetName(), providers.CodeEmpty, "no choices returned")
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return nil, providers.NewError(p.GetName(), providers.CodeEmpty, "empty completion")
	}

	return &providers.ProviderResponse{
		Text:      text,
		Model:     completion.Model,
		TokensIn:  int(completion.Usage.PromptTokens),
		TokensOut: int(completion.Usage.CompletionTokens),
	}, nil
}

// HealthCheck 健康检查
func (p *Provider) HealthCheck(ctx context.Context) error {
	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(providers.HealthCheckSystemPrompt),
			openai.UserMessage(providers.HealthCheckPrompt),
		},
		Model:     openai.ChatModel(p.config.Model),
		MaxTokens: openai.Int(providers.HealthMaxTokens),
	}

	if _, err := p.client.Chat.Completions.New(ctx, params); err != nil {
		return p.wrap(err)
	}
	return nil
}

// GetName 获取提供商名称
func (p *Provider) GetName() string {
	return "grok"
}

// Kind 返回提供商类型
func (p *Provider) Kind() providers.Kind {
	return providers.Grok
}

func (p *Provider) wrap(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return providers.WrapError(p.GetName(), providers.CodeForStatus(apiErr.StatusCode), "chat completion failed", err)
	}
	return providers.WrapError(p.GetName(), providers.CodeNetwork, "chat completion failed", err)
}
