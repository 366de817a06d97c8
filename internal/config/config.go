package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// DataDir holds one weather file per month.
	DataDir string

	// RemoteFiles, when set, replaces DataDir with files downloaded over HTTP.
	RemoteFiles []string

	// HTTPTimeout bounds each outbound download.
	HTTPTimeout time.Duration

	// ReloadInterval controls how often serve mode rebuilds the store (0 = never).
	ReloadInterval time.Duration

	Port string

	LogLevel slog.Level
	AppEnv   string

	// ChartColor enables coloured chart bars on terminals.
	ChartColor bool
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	// Missing .env is fine; the environment alone is enough. Load runs before
	// the application logger exists, so this goes to the default logger.
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no .env file loaded", "error", err)
		} else {
			slog.Warn("ignoring unreadable .env file", "error", err)
		}
	}

	cfg := &AppConfig{
		DataDir:    getenvDefault("WEATHERMAN_DATA_DIR", "weatherfiles"),
		Port:       getenvDefault("PORT", "8080"),
		AppEnv:     getenvDefault("APP_ENV", "prod"),
		ChartColor: true,
	}

	if files := os.Getenv("WEATHERMAN_REMOTE_FILES"); files != "" {
		for _, f := range strings.Split(files, ",") {
			if f = strings.TrimSpace(f); f != "" {
				cfg.RemoteFiles = append(cfg.RemoteFiles, f)
			}
		}
	}

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	interval, err := time.ParseDuration(getenvDefault("RELOAD_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RELOAD_INTERVAL: %w", err)
	}
	cfg.ReloadInterval = interval

	if err := cfg.LogLevel.UnmarshalText([]byte(getenvDefault("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if v := os.Getenv("CHART_COLOR"); v != "" {
		color, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CHART_COLOR: %w", err)
		}
		cfg.ChartColor = color
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
