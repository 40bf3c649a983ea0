package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the planner core.
type Config struct {
	DatabaseURL  string
	OwnerID      string
	SyncURL      string
	SyncToken    string
	SyncTimeout  time.Duration
	SyncInterval time.Duration
	SyncDailyAt  string
}

// Load reads configuration from environment variables with sane
// defaults. Sync settings are only validated when sync is actually
// configured; the store works fully offline without them.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
		OwnerID:      strings.TrimSpace(os.Getenv("OWNER_ID")),
		SyncURL:      strings.TrimSpace(os.Getenv("SYNC_URL")),
		SyncToken:    strings.TrimSpace(os.Getenv("SYNC_TOKEN")),
		SyncTimeout:  parseSeconds(strings.TrimSpace(os.Getenv("SYNC_TIMEOUT_SECONDS"))),
		SyncInterval: parseHours(strings.TrimSpace(os.Getenv("SYNC_INTERVAL_HOURS"))),
		SyncDailyAt:  strings.TrimSpace(os.Getenv("SYNC_DAILY_AT")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "planner.db"
	}

	if cfg.SyncTimeout == 0 {
		cfg.SyncTimeout = 30 * time.Second
	}

	if cfg.SyncURL != "" && cfg.SyncToken == "" {
		return cfg, fmt.Errorf("SYNC_TOKEN is required when SYNC_URL is set")
	}

	return cfg, nil
}

func parseSeconds(raw string) time.Duration {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

func parseHours(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
