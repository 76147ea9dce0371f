// Package cache stores successful translations so repeated texts (headers
// shared by many documents, table labels) are sent to the backend once.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TranslationCache is a string store keyed by Key.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Key builds the cache key of a translation request. The text is trimmed
// before hashing so that surrounding whitespace does not split entries.
func Key(text, targetLang, provider string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:]) + ":" + strings.ToLower(targetLang) + ":" + strings.ToLower(provider)
}

// Options selects and configures a cache backend.
type Options struct {
	// Kind is one of "none", "memory" or "redis".
	Kind     string
	RedisURL string
	TTL      time.Duration
	Prefix   string
}

// New builds the cache described by opts. It returns nil for "none".
func New(opts Options, logger *zap.Logger) (TranslationCache, error) {
	switch strings.ToLower(opts.Kind) {
	case "", "none":
		return nil, nil
	case "memory":
		return NewMemoryCache(opts.TTL), nil
	case "redis":
		c, err := NewRedisCache(RedisConfig{
			URL:       opts.RedisURL,
			TTL:       opts.TTL,
			KeyPrefix: opts.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		if logger != nil {
			logger.Debug("using redis translation cache", zap.String("prefix", c.keyPrefix))
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache type %q (expected none, memory or redis)", opts.Kind)
	}
}
