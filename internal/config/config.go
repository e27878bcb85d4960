// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/probe.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/provider/livetennis"
	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/provider/tennisapi5"
)

// --------------------------------------------------------------------------
// Provider registry: one upstream per deployment, chosen at startup
// --------------------------------------------------------------------------

const (
	ProviderTennisAPI5 = tennisapi5.Name
	ProviderLiveTennis = livetennis.Name
)

const (
	NewsSourceUpstream  = "upstream"
	NewsSourceGoogleRSS = "google_rss"
)

// ProviderConfig describes a supported upstream.
type ProviderConfig struct {
	ID          string
	Name        string
	DefaultHost string
}

var ProviderRegistry = map[string]ProviderConfig{
	ProviderTennisAPI5: {ID: ProviderTennisAPI5, Name: "RapidAPI Tennis API 5", DefaultHost: tennisapi5.DefaultHost},
	ProviderLiveTennis: {ID: ProviderLiveTennis, Name: "RapidAPI Tennis Live Data", DefaultHost: livetennis.DefaultHost},
}

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Upstream provider
	Provider        string
	UpstreamBaseURL string
	UpstreamAPIKey  string
	UpstreamAPIHost string
	UpstreamTimeout time.Duration

	// News
	NewsSource string
	NewsRSSURL string

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production

	// CORS
	CORSAllowOrigins []string

	// Inbound rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Logging
	LogLevel  string
	LogFormat string // text, json
}

// ConfigError reports missing or invalid configuration detected at startup.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

// Load reads configuration from environment variables with sensible defaults.
// The upstream API key has no default and must be set.
func Load() (*Config, error) {
	providerID := strings.ToLower(envOr("TENNIS_PROVIDER", ProviderTennisAPI5))
	pc, ok := ProviderRegistry[providerID]
	if !ok {
		return nil, &ConfigError{Key: "TENNIS_PROVIDER", Reason: fmt.Sprintf("unknown provider %q", providerID)}
	}

	apiKey := envOr("TENNIS_API_KEY", envOr("RAPIDAPI_KEY", ""))
	if apiKey == "" {
		return nil, &ConfigError{Key: "TENNIS_API_KEY", Reason: "TENNIS_API_KEY or RAPIDAPI_KEY must be set"}
	}

	apiHost := envOr("TENNIS_API_HOST", envOr("RAPIDAPI_HOST", pc.DefaultHost))
	baseURL := strings.TrimRight(envOr("TENNIS_API_BASE_URL", "https://"+apiHost), "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, &ConfigError{Key: "TENNIS_API_BASE_URL", Reason: fmt.Sprintf("invalid URL %q", baseURL)}
	}

	newsSource := strings.ToLower(envOr("NEWS_SOURCE", NewsSourceUpstream))
	if newsSource != NewsSourceUpstream && newsSource != NewsSourceGoogleRSS {
		return nil, &ConfigError{Key: "NEWS_SOURCE", Reason: fmt.Sprintf("must be %q or %q", NewsSourceUpstream, NewsSourceGoogleRSS)}
	}

	cfg := &Config{
		Provider:        pc.ID,
		UpstreamBaseURL: baseURL,
		UpstreamAPIKey:  apiKey,
		UpstreamAPIHost: apiHost,
		UpstreamTimeout: envDuration("UPSTREAM_TIMEOUT_SECONDS", 10*time.Second),

		NewsSource: newsSource,
		NewsRSSURL: envOr("NEWS_RSS_URL", ""),

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 5000)),
		Environment: envOr("ENVIRONMENT", "development"),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{"*"}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		LogLevel: envOr("LOG_LEVEL", "info"),
	}

	defaultFormat := "text"
	if cfg.IsProduction() {
		defaultFormat = "json"
	}
	cfg.LogFormat = envOr("LOG_FORMAT", defaultFormat)
	return cfg, nil
}

// ProviderInfo returns the registry entry of the selected provider.
func (c *Config) ProviderInfo() ProviderConfig {
	return ProviderRegistry[c.Provider]
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

// envDuration reads a whole number of seconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	if n := envInt(key, 0); n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
