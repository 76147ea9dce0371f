// Package gemini 通过 generateContent REST 接口调用 Google Gemini
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/nerdneilsfield/go-docx-translator/pkg/providers"
)

// Config Gemini 配置
type Config struct {
	providers.BaseConfig
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		BaseConfig:  providers.DefaultConfig(providers.Gemini),
		Temperature: providers.Temperature,
		MaxTokens:   providers.MaxTokens,
	}
}

// Provider Gemini 提供商
type Provider struct {
	config     Config
	httpClient *http.Client
}

var _ providers.Provider = (*Provider)(nil)

// New 创建新的 Gemini 提供商
func New(config Config) *Provider {
	if config.APIEndpoint == "" {
		config.APIEndpoint = providers.GeminiDefaultURL
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &Provider{
		config:     config,
		httpClient: httpClient,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

// GenerateRequest generateContent 请求体
type GenerateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

// GenerateResponse generateContent 响应体
type GenerateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
	ModelVersion string `json:"modelVersion"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Translate 执行翻译
func (p *Provider) Translate(ctx context.Context, req *providers.ProviderRequest) (*providers.ProviderResponse, error) {
	temperature := p.config.Temperature
	resp, err := p.generate(ctx, GenerateRequest{
		SystemInstruction: &content{Parts: []part{{Text: providers.SystemPrompt}}},
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: providers.BuildPrompt(req.Text, req.TargetLanguage)}},
		}},
		GenerationConfig: generationConfig{
			Temperature:     &temperature,
			MaxOutputTokens: p.config.MaxTokens,
		},
	})
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(resp.text())
	if text == "" {
		return nil, providers.NewError(p.GetName(), providers.CodeEmpty, "empty candidate")
	}

	return &providers.ProviderResponse{
		Text:      text,
		Model:     resp.ModelVersion,
		TokensIn:  resp.UsageMetadata.PromptTokenCount,
		TokensOut: resp.UsageMetadata.CandidatesTokenCount,
	}, nil
}

// HealthCheck 健康检查
func (p *Provider) HealthCheck(ctx context.Context) error {
	_, err := p.generate(ctx, GenerateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: providers.HealthCheckPrompt}},
		}},
		GenerationConfig: generationConfig{MaxOutputTokens: providers.HealthMaxTokens},
	})
	return err
}

// GetName 获取提供商名称
func (p *Provider) GetName() string {
	return "gemini"
}

// Kind 返回提供商类型
func (p *Provider) Kind() providers.Kind {
	return providers.Gemini
}

func (r *GenerateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// generate 执行 generateContent 请求
func (p *Provider) generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, providers.WrapError(p.GetName(), providers.CodeBadResponse, "failed to marshal request", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimSuffix(p.config.APIEndpoint, "/"), url.PathEscape(p.config.Model))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, providers.WrapError(p.GetName(), providers.CodeNetwork, "failed to create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.config.APIKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, providers.WrapError(p.GetName(), providers.CodeNetwork, "failed to execute request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(resp.Body)
		msg := resp.Status
		var apiErr apiError
		if json.Unmarshal(errBody, &apiErr) == nil && apiErr.Error.Message != "" {
			msg = fmt.Sprintf("%s: %s", resp.Status, apiErr.Error.Message)
		}
		return nil, providers.NewError(p.GetName(), providers.CodeForStatus(resp.StatusCode), msg)
	}

	var generateResp GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generateResp); err != nil {
		return nil, providers.WrapError(p.GetName(), providers.CodeBadResponse, "failed to decode response", err)
	}
	return &generateResp, nil
}
