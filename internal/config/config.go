package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

type Config struct {
	BaseAPIURL        string `json:"base_api_url"`
	ClientID          string `json:"client_id"`
	ClientSecret      string `json:"client_secret"`
	IntervalSec       int    `json:"interval_sec"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
}

func Default() Config {
	return Config{
		IntervalSec:       3600,
		RequestTimeoutSec: 15,
	}
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. Environment variables override select fields for secrecy.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BASE_API_URL"); v != "" {
		cfg.BaseAPIURL = v
	}
	if v := os.Getenv("CLIENT_ID"); v != "" {
		cfg.ClientID = v
	}
	if v := os.Getenv("CLIENT_SECRET"); v != "" {
		cfg.ClientSecret = v
	}
	if v := os.Getenv("SCRAPE_INTERVAL_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.IntervalSec = x
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.RequestTimeoutSec = x
		}
	}
}
