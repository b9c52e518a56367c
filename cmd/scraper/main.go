package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oilscraper/internal/api"
	"oilscraper/internal/config"
	"oilscraper/internal/httpx"
	"oilscraper/internal/logger"
	"oilscraper/internal/runner"
	"oilscraper/internal/scrape"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
	flag.Parse()

	log := logger.New()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if cfg.BaseAPIURL == "" {
		log.Fatal().Msg("BASE_API_URL not set")
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		log.Warn().Msg("client credentials not set; authentication will fail")
	}

	httpClient := httpx.New(time.Duration(cfg.RequestTimeoutSec) * time.Second)
	apiClient := api.NewClient(
		cfg.BaseAPIURL,
		api.Credentials{ClientID: cfg.ClientID, ClientSecret: cfg.ClientSecret},
		httpClient.HTTP,
		log.With().Str("component", "api").Logger(),
	)
	scraper := scrape.New(httpClient, log.With().Str("component", "scrape").Logger())
	run := runner.New(apiClient, scraper, time.Duration(cfg.IntervalSec)*time.Second, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run.Loop(ctx)
	log.Info().Msg("shutting down")
}
