// Package freechatgpt 调用 gpt.ge 提供的免费 ChatGPT 中转接口
package freechatgpt

import (
	"context"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/nerdneilsfield/go-docx-translator/pkg/providers"
)

// Config FREE_CHATGPT 配置
type Config struct {
	providers.BaseConfig
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		BaseConfig:  providers.DefaultConfig(providers.FreeChatGPT),
		Temperature: providers.Temperature,
		MaxTokens:   providers.MaxTokens,
	}
}

// Provider FREE_CHATGPT 提供商（使用 go-openai）
type Provider struct {
	config Config
	client *openai.Client
}

var _ providers.Provider = (*Provider)(nil)

// New 创建新的提供商
func New(config Config) *Provider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.APIEndpoint != "" {
		// go-openai 的路径以斜杠开头，去掉结尾斜杠避免出现双斜杠
		clientConfig.BaseURL = strings.TrimSuffix(config.APIEndpoint, "/")
	}
	if config.HTTPClient != nil {
		clientConfig.HTTPClient = config.HTTPClient
	}

	return &Provider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// Translate 执行翻译
func (p *Provider) Translate(ctx context.Context, req *providers.ProviderRequest) (*providers.ProviderResponse, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: providers.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: providers.BuildPrompt(req.Text, req.TargetLanguage)},
		},
		Temperature: p.config.Temperature,
		MaxTokens:   p.config.MaxTokens,
	})
	if err != nil {
		return nil, p.wrap(err)
	}
	if len(resp.Choices) == 0 {
		return nil, providers.NewError(p.GetName(), providers.CodeEmpty, "no choices returned")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, providers.NewError(p.GetName(), providers.CodeEmpty, "empty completion")
	}

	return &providers.ProviderResponse{
		Text:      text,
		Model:     resp.Model,
		TokensIn:  resp.Usage.PromptTokens,
		TokensOut: resp.Usage.CompletionTokens,
	}, nil
}

// HealthCheck 健康检查
func (p *Provider) HealthCheck(ctx context.Context) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	_, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: providers.HealthCheckPrompt},
		},
		Temperature: p.config.Temperature,
		MaxTokens:   providers.HealthMaxTokens,
	})
	if err != nil {
		return p.wrap(err)
	}
	return nil
}

// GetName 获取提供商名称
func (p *Provider) GetName() string {
	return "free_chatgpt"
}

// Kind 返回提供商类型
func (p *Provider) Kind() providers.Kind {
	return providers.FreeChatGPT
}

func (p *Provider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.config.Timeout > 0 {
		return context.WithTimeout(ctx, p.config.Timeout)
	}
	return ctx, func() {}
}

func (p *Provider) wrap(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return providers.WrapError(p.GetName(), providers.CodeForStatus(apiErr.HTTPStatusCode), "chat completion failed", err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return providers.WrapError(p.GetName(), providers.CodeForStatus(reqErr.HTTPStatusCode), "chat completion failed", err)
	}
	return providers.WrapError(p.GetName(), providers.CodeNetwork, "chat completion failed", err)
}
