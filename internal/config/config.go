package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"dualnews/internal/model"
)

type Config struct {
	// Provider credentials. Each one is optional: the pipeline runs with
	// whatever subset of providers has a key, and an unconfigured provider
	// simply contributes no articles.
	NewsAPIKey     string
	GNewsAPIKey    string
	NewsDataAPIKey string

	// Translation backends
	DeepLAuthKey string
	OpenAIAPIKey string

	// Optional RSS source
	FeedsConfigPath string

	// Query defaults
	DefaultLanguage string
	DefaultPageSize int

	// Network
	RequestTimeout   time.Duration // per fetch call
	TranslateTimeout time.Duration // per translation call

	// Pipeline
	TranslateConcurrency int
	CacheTTL             time.Duration

	// Daily request caps for translation backends (0 = unlimited)
	MaxDeepLRequests     int
	MaxGoogleRequests    int
	MaxOpenAIRequests    int
	MaxTranslateRequests int

	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		FeedsConfigPath:      "configs/feeds.yaml",
		DefaultLanguage:      model.LangJA,
		DefaultPageSize:      10,
		RequestTimeout:       15 * time.Second,
		TranslateTimeout:     10 * time.Second,
		TranslateConcurrency: 5,
		CacheTTL:             24 * time.Hour,
	}

	// Load from environment
	cfg.NewsAPIKey = os.Getenv("NEWSAPI_KEY")
	cfg.GNewsAPIKey = os.Getenv("GNEWS_API_KEY")
	cfg.NewsDataAPIKey = os.Getenv("NEWSDATA_IO_API_KEY")
	cfg.DeepLAuthKey = os.Getenv("DEEPL_AUTH_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)

	if lang := os.Getenv("DEFAULT_LANGUAGE"); lang != "" {
		cfg.DefaultLanguage = lang
	}
	if v := os.Getenv("DEFAULT_PAGE_SIZE"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.DefaultPageSize = val
		}
	}

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("TRANSLATE_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.TranslateTimeout = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("TRANSLATE_CONCURRENCY"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.TranslateConcurrency = val
		}
	}
	if v := os.Getenv("CACHE_TTL_HOURS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.CacheTTL = time.Duration(val) * time.Hour
		}
	}

	cfg.MaxDeepLRequests = getEnvIntOrDefault("MAX_DEEPL_REQUESTS", 0)
	cfg.MaxGoogleRequests = getEnvIntOrDefault("MAX_GOOGLE_TRANSLATE_REQUESTS", 0)
	cfg.MaxOpenAIRequests = getEnvIntOrDefault("MAX_OPENAI_REQUESTS", 0)
	cfg.MaxTranslateRequests = getEnvIntOrDefault("MAX_TRANSLATE_REQUESTS", 0)

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate rejects malformed values only. Missing provider keys are not an
// error: the pipeline must run with any subset of providers available.
func (c *Config) Validate() error {
	if !model.IsSupportedLanguage(c.DefaultLanguage) {
		return fmt.Errorf("DEFAULT_LANGUAGE must be %q or %q, got %q", model.LangEN, model.LangJA, c.DefaultLanguage)
	}
	if c.DefaultPageSize <= 0 {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be positive")
	}
	if c.TranslateConcurrency <= 0 {
		return fmt.Errorf("TRANSLATE_CONCURRENCY must be positive")
	}
	return nil
}
