package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"dualnews/internal/cache"
	"dualnews/internal/config"
	"dualnews/internal/logger"
	"dualnews/internal/metrics"
	"dualnews/internal/news"
	"dualnews/internal/ratelimit"
	"dualnews/internal/source"
	"dualnews/internal/translate"
)

func main() {
	query := flag.String("query", "", "free-text search query")
	pageSize := flag.Int("size", 0, "page size hint per provider")
	lang := flag.String("lang", "", "target display language (en or ja)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Debug)

	if *query == "" {
		fmt.Fprintln(os.Stderr, "usage: dualnews -query \"Apple Watch\" [-size 10] [-lang ja]")
		os.Exit(2)
	}
	if *pageSize <= 0 {
		*pageSize = cfg.DefaultPageSize
	}
	if *lang == "" {
		*lang = cfg.DefaultLanguage
	}

	// Check if we should start HTTP server for monitoring
	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	aggregator := buildPipeline(cfg)
	articles := aggregator.GetTranslatedArticles(context.Background(), *query, *pageSize, *lang)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(articles); err != nil {
		logger.Error("failed to encode results", "error", err)
		os.Exit(1)
	}
}

// buildPipeline is the composition root: config decides which providers and
// translation backends participate in this run.
func buildPipeline(cfg *config.Config) *news.Aggregator {
	sources := []source.Source{
		source.NewNewsAPI(cfg.NewsAPIKey, cfg.RequestTimeout),
		source.NewGNews(cfg.GNewsAPIKey, cfg.RequestTimeout),
		source.NewNewsData(cfg.NewsDataAPIKey, cfg.RequestTimeout),
	}

	if cfg.FeedsConfigPath != "" {
		feeds, err := source.LoadFeeds(cfg.FeedsConfigPath)
		if err != nil {
			logger.Debug("rss feeds not loaded", "path", cfg.FeedsConfigPath, "error", err)
		} else if len(feeds) > 0 {
			sources = append(sources, source.NewRSSFeeds(feeds, cfg.RequestTimeout))
		}
	}

	limiter := ratelimit.New(map[string]int{
		translate.BackendDeepL:  cfg.MaxDeepLRequests,
		translate.BackendGoogle: cfg.MaxGoogleRequests,
		translate.BackendOpenAI: cfg.MaxOpenAIRequests,
	}, cfg.MaxTranslateRequests)

	client := translate.NewClient(cfg.DeepLAuthKey, cfg.OpenAIAPIKey, cfg.TranslateTimeout, limiter)
	translator := news.NewTranslator(client, cache.New(cfg.CacheTTL), cfg.TranslateConcurrency)

	return news.NewAggregator(sources, translator)
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	logger.Info("starting monitoring server", "port", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Error("monitoring server error", "error", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics.Global.GetStats())
}
