// Package config reads the relay's settings from the environment once, at cold start.
package config

import (
	"fmt"
	"strings"
	"time"

	"chat-relay/internal/domain"
	"chat-relay/internal/integrations/paramstore"
	"chat-relay/internal/usecase"
)

// Config is the injected, read-only configuration for one process.
type Config struct {
	APIKey       string
	APIKeyParam  string
	KeyCacheTTL  time.Duration
	Model        string
	BaseURL      string
	ResponseMode domain.ResponseMode
	LogLevel     string
}

// Load builds a Config from getenv. A missing API key is not an error here; it is
// reported per request so the caller gets a readable response.
func Load(getenv func(string) string) (Config, error) {
	env := func(key string) string {
		return strings.TrimSpace(getenv(key))
	}

	mode, err := domain.ParseResponseMode(strings.ToLower(env("RESPONSE_MODE")))
	if err != nil {
		return Config{}, fmt.Errorf("config: RESPONSE_MODE: %w", err)
	}

	ttl := paramstore.DefaultKeyTTL
	if v := env("API_KEY_CACHE_TTL"); v != "" {
		ttl, err = time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: API_KEY_CACHE_TTL: %w", err)
		}
		if ttl <= 0 {
			return Config{}, fmt.Errorf("config: API_KEY_CACHE_TTL must be positive, got %s", ttl)
		}
	}

	return Config{
		APIKey:       env("OPENAI_API_KEY"),
		APIKeyParam:  env("OPENAI_API_KEY_PARAM"),
		KeyCacheTTL:  ttl,
		Model:        envOr(env("OPENAI_MODEL"), usecase.DefaultModel),
		BaseURL:      env("OPENAI_BASE_URL"),
		ResponseMode: mode,
		LogLevel:     envOr(strings.ToLower(env("LOG_LEVEL")), "info"),
	}, nil
}

// UsesParamStore reports whether the API key should come from SSM. A static key wins.
func (c Config) UsesParamStore() bool {
	return c.APIKey == "" && c.APIKeyParam != ""
}

func envOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
