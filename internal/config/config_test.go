package config

import (
	"testing"
	"time"

	"dualnews/internal/model"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"NEWSAPI_KEY", "GNEWS_API_KEY", "NEWSDATA_IO_API_KEY",
		"DEEPL_AUTH_KEY", "OPENAI_API_KEY", "FEEDS_CONFIG_PATH",
		"DEFAULT_LANGUAGE", "DEFAULT_PAGE_SIZE",
		"REQUEST_TIMEOUT_SECONDS", "TRANSLATE_TIMEOUT_SECONDS",
		"TRANSLATE_CONCURRENCY", "CACHE_TTL_HOURS",
		"MAX_DEEPL_REQUESTS", "MAX_GOOGLE_TRANSLATE_REQUESTS",
		"MAX_OPENAI_REQUESTS", "MAX_TRANSLATE_REQUESTS", "DEBUG",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DefaultLanguage != model.LangJA {
		t.Errorf("expected default language ja, got %q", cfg.DefaultLanguage)
	}
	if cfg.DefaultPageSize != 10 {
		t.Errorf("expected default page size 10, got %d", cfg.DefaultPageSize)
	}
	if cfg.TranslateConcurrency != 5 {
		t.Errorf("expected translate concurrency 5, got %d", cfg.TranslateConcurrency)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("expected 15s request timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.CacheTTL != 24*time.Hour {
		t.Errorf("expected 24h cache TTL, got %v", cfg.CacheTTL)
	}
}

func TestLoadRunsWithoutAnyAPIKeys(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("missing provider keys must not be a startup error: %v", err)
	}
	if cfg.NewsAPIKey != "" || cfg.GNewsAPIKey != "" || cfg.NewsDataAPIKey != "" {
		t.Errorf("expected empty keys, got %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEWSAPI_KEY", "nk")
	t.Setenv("DEFAULT_LANGUAGE", "en")
	t.Setenv("TRANSLATE_CONCURRENCY", "8")
	t.Setenv("CACHE_TTL_HOURS", "2")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.NewsAPIKey != "nk" {
		t.Errorf("expected NEWSAPI_KEY override, got %q", cfg.NewsAPIKey)
	}
	if cfg.DefaultLanguage != "en" {
		t.Errorf("expected language override, got %q", cfg.DefaultLanguage)
	}
	if cfg.TranslateConcurrency != 8 {
		t.Errorf("expected concurrency 8, got %d", cfg.TranslateConcurrency)
	}
	if cfg.CacheTTL != 2*time.Hour {
		t.Errorf("expected 2h TTL, got %v", cfg.CacheTTL)
	}
	if !cfg.Debug {
		t.Error("expected debug mode")
	}
}

func TestValidateRejectsUnknownLanguage(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_LANGUAGE", "fr")

	if _, err := Load(); err == nil {
		t.Error("expected an error for an unsupported default language")
	}
}
