package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// BaseConfig 基础配置
type BaseConfig struct {
	// API配置
	APIKey      string `json:"api_key,omitempty"`
	APIEndpoint string `json:"api_endpoint,omitempty"`
	Model       string `json:"model"`

	// 超时，0 表示不限制
	Timeout time.Duration `json:"timeout"`

	// 自定义 HTTP 客户端（测试时注入）
	HTTPClient *http.Client `json:"-"`
}

// DefaultConfig 返回指定提供商的默认配置
func DefaultConfig(kind Kind) BaseConfig {
	s := DefaultSettings(kind)
	return BaseConfig{
		APIKey:      s.APIKey,
		APIEndpoint: s.APIURL,
		Model:       s.Model,
	}
}

// Provider 翻译后端接口
type Provider interface {
	// Translate 执行翻译
	Translate(ctx context.Context, req *ProviderRequest) (*ProviderResponse, error)

	// HealthCheck 发送测试消息检查连通性
	HealthCheck(ctx context.Context) error

	// GetName 获取提供商名称
	GetName() string

	// Kind 返回提供商类型
	Kind() Kind
}

// 错误码
const (
	CodeNetwork     = "network"
	CodeAuth        = "auth"
	CodeBadResponse = "bad_response"
	CodeEmpty       = "empty"
)

// Error 提供商错误
type Error struct {
	Provider string `json:"provider"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Err      error  `json:"-"`
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Provider, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError 创建提供商错误
func NewError(provider, code, message string) *Error {
	return &Error{
		Provider: provider,
		Code:     code,
		Message:  message,
	}
}

// WrapError 包装底层错误
func WrapError(provider, code, message string, err error) *Error {
	return &Error{
		Provider: provider,
		Code:     code,
		Message:  message,
		Err:      err,
	}
}

// ErrorCode 返回错误链中的提供商错误码
func ErrorCode(err error) string {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Code
	}
	return ""
}

// CodeForStatus 根据 HTTP 状态码归类错误
func CodeForStatus(status int) string {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return CodeAuth
	case status >= 500 || status == http.StatusTooManyRequests:
		return CodeNetwork
	default:
		return CodeBadResponse
	}
}

// ProviderRequest 提供商请求
type ProviderRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
}

// ProviderResponse 提供商响应
type ProviderResponse struct {
	Text      string `json:"text"`
	Model     string `json:"model,omitempty"`
	TokensIn  int    `json:"tokens_in,omitempty"`
	TokensOut int    `json:"tokens_out,omitempty"`
}
