package providers

import "fmt"

// 所有提供商共用的请求参数
const (
	SystemPrompt = "You are a translator. Provide direct translations without additional explanations."

	// HealthCheckPrompt 连通性测试消息
	HealthCheckPrompt = "Hello, this is a test message."
	// HealthCheckSystemPrompt Grok 测试时使用的系统提示
	HealthCheckSystemPrompt = "You are a helpful assistant."

	Temperature     = 0.7
	MaxTokens       = 1000
	HealthMaxTokens = 10
)

// BuildPrompt 构建用户提示词
func BuildPrompt(text, targetLanguage string) string {
	return fmt.Sprintf(`Translate the following text to %s.
Important rules:
1. Keep it simple and direct
2. Do not add any explanatory text like 'The translation of ... is ...'
3. Just provide the translation

Text to translate: %s`, targetLanguage, text)
}
