package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nerdneilsfield/go-docx-translator/internal/cache"
	"github.com/nerdneilsfield/go-docx-translator/pkg/providers"
)

// AutoProvider 表示按探测延迟自动选择提供商
const AutoProvider = "auto"

// Config 保存翻译器的所有配置
type Config struct {
	InputDir               string `mapstructure:"input_dir"`
	OutputDir              string `mapstructure:"output_dir"`
	TargetLang             string `mapstructure:"target_lang"`
	Provider               string `mapstructure:"provider"` // 提供商类型或 auto
	Debug                  bool   `mapstructure:"debug"`
	RequestTimeout         int    `mapstructure:"request_timeout"`         // 请求超时时间（秒），0 表示不限制
	PredefinedTranslations string `mapstructure:"predefined_translations"` // 预定义翻译 TOML 文件路径

	// 缓存配置
	Cache    string `mapstructure:"cache"` // none, memory 或 redis
	RedisURL string `mapstructure:"redis_url"`
	CacheTTL int    `mapstructure:"cache_ttl"` // 秒，0 表示不过期

	providers map[providers.Kind]providers.Settings
}

// LoadOptions 指定额外的配置来源
type LoadOptions struct {
	// ConfigFile YAML 配置文件，为空时查找 ~/.docx-translator.yaml 和 ./.docx-translator.yaml
	ConfigFile string
	// EnvFile dotenv 文件，为空时使用当前目录下的 .env（不存在则忽略）
	EnvFile string
}

// LoadConfig 按 默认值 < 配置文件 < .env < 环境变量 的顺序加载配置
func LoadConfig(opts LoadOptions) (*Config, error) {
	v := viper.New()

	// 设置默认值
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".docx-translator")
		v.SetConfigType("yaml")

		// 找不到配置文件时使用默认值
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	if err := mergeEnvFile(v, opts.EnvFile); err != nil {
		return nil, err
	}

	// 环境变量优先：DOCX_TRANSLATOR_TARGET_LANG 等，密钥同时接受 GROK_API_KEY 这类原名
	v.SetEnvPrefix("DOCX_TRANSLATOR")
	v.AutomaticEnv()
	for _, kind := range providers.Kinds() {
		key := kind.ConfigPrefix() + "_api_key"
		if err := v.BindEnv(key, "DOCX_TRANSLATOR_"+kind.EnvKey(), kind.EnvKey()); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.providers = make(map[providers.Kind]providers.Settings, len(providers.Kinds()))
	for _, kind := range providers.Kinds() {
		prefix := kind.ConfigPrefix()
		config.providers[kind] = providers.Settings{
			APIKey: v.GetString(prefix + "_api_key"),
			APIURL: v.GetString(prefix + "_api_url"),
			Model:  v.GetString(prefix + "_model"),
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func mergeEnvFile(v *viper.Viper, path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	v.SetConfigType("env")
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to parse env file %s: %w", path, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input_dir", "input")
	v.SetDefault("output_dir", "output")
	v.SetDefault("target_lang", "english")
	v.SetDefault("provider", string(providers.FreeChatGPT))
	v.SetDefault("debug", false)
	v.SetDefault("request_timeout", 0)
	v.SetDefault("predefined_translations", "")
	v.SetDefault("cache", "none")
	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("cache_ttl", 0)

	// 每个提供商的连接参数，密钥默认来自同名环境变量
	for _, kind := range providers.Kinds() {
		prefix := kind.ConfigPrefix()
		defaults := providers.DefaultSettings(kind)
		v.SetDefault(prefix+"_api_key", "")
		v.SetDefault(prefix+"_api_url", defaults.APIURL)
		v.SetDefault(prefix+"_model", defaults.Model)
	}
}

// Validate 检查提供商、目标语言和缓存类型
func (c *Config) Validate() error {
	if !strings.EqualFold(c.Provider, AutoProvider) {
		kind, err := providers.ParseKind(c.Provider)
		if err != nil {
			return err
		}
		c.Provider = string(kind)
	}

	lang, err := ParseLanguage(c.TargetLang)
	if err != nil {
		return err
	}
	c.TargetLang = lang.Name

	switch strings.ToLower(c.Cache) {
	case "", "none", "memory", "redis":
	default:
		return fmt.Errorf("unknown cache type %q (expected none, memory or redis)", c.Cache)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	return nil
}

// ProviderSettings 返回某个提供商的连接参数
func (c *Config) ProviderSettings(kind providers.Kind) providers.Settings {
	return c.providers[kind]
}

// SetProviderSettings 覆盖某个提供商的连接参数
func (c *Config) SetProviderSettings(kind providers.Kind, settings providers.Settings) {
	if c.providers == nil {
		c.providers = make(map[providers.Kind]providers.Settings)
	}
	c.providers[kind] = settings
}

// Timeout 单次请求的超时时间
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// CacheOptions 转换为缓存配置
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Kind:     c.Cache,
		RedisURL: c.RedisURL,
		TTL:      time.Duration(c.CacheTTL) * time.Second,
	}
}
