package providers

import (
	"fmt"
	"os"
	"strings"
)

// Kind 提供商类型，封闭集合
type Kind string

const (
	Grok        Kind = "GROK"
	FreeChatGPT Kind = "FREE_CHATGPT"
	Gemini      Kind = "GEMINI"
)

// Kinds 返回全部提供商类型，按固定顺序
func Kinds() []Kind {
	return []Kind{Grok, FreeChatGPT, Gemini}
}

// ParseKind 解析提供商名称，忽略大小写，允许用 "-" 代替 "_"
func ParseKind(s string) (Kind, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for _, k := range Kinds() {
		if string(k) == norm {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown provider %q (expected one of GROK, FREE_CHATGPT, GEMINI)", s)
}

// String 返回提供商名称
func (k Kind) String() string {
	return string(k)
}

// ConfigPrefix 返回配置键前缀，例如 "grok"
func (k Kind) ConfigPrefix() string {
	return strings.ToLower(string(k))
}

// EnvKey 返回 API 密钥对应的环境变量名
func (k Kind) EnvKey() string {
	return string(k) + "_API_KEY"
}

// Settings 单个提供商的连接参数
type Settings struct {
	APIKey string `mapstructure:"api_key"`
	APIURL string `mapstructure:"api_url"`
	Model  string `mapstructure:"model"`
}

// GeminiDefaultURL 未配置地址时 Gemini 使用的端点
const GeminiDefaultURL = "https://generativelanguage.googleapis.com"

var defaultSettings = map[Kind]Settings{
	Grok: {
		APIURL: "https://api.x.ai/v1",
		Model:  "grok-2-vision-1212",
	},
	FreeChatGPT: {
		APIURL: "https://api.gpt.ge/v1",
		Model:  "gpt-3.5-turbo",
	},
	Gemini: {
		Model: "gemini-pro",
	},
}

// DefaultSettings 返回默认参数，API 密钥读取自环境变量
func DefaultSettings(kind Kind) Settings {
	s := defaultSettings[kind]
	s.APIKey = os.Getenv(kind.EnvKey())
	return s
}
