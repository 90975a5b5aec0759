package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// config is everything the server reads from the environment.
type config struct {
	BindAddr    string
	Port        string
	StoreDriver string
	DBURL       string
	SQLitePath  string
	AIBaseURL   string
	AIAPIKey    string
	AIModel     string
	LogLevel    string
	LogFormat   string
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadConfig reads .env (if present) and the process environment.
// A missing .env is normal in containers and only logged.
func loadConfig() (config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not load .env")
	}

	cfg := config{
		BindAddr:    envOr("BIND_ADDR", "localhost"),
		Port:        envOr("PORT", "3000"),
		StoreDriver: envOr("STORE_DRIVER", "memory"),
		DBURL:       os.Getenv("DB_URL"),
		SQLitePath:  envOr("SQLITE_PATH", "nutriai.db"),
		AIBaseURL:   envOr("AI_BASE_URL", "https://api.openai.com"),
		AIAPIKey:    envOr("AI_API_KEY", os.Getenv("OPENAI_API_KEY")),
		AIModel:     envOr("AI_MODEL", "gpt-4o-mini"),
		LogLevel:    envOr("LOG_LEVEL", "info"),
		LogFormat:   envOr("LOG_FORMAT", "console"),
	}

	switch cfg.StoreDriver {
	case "postgres":
		if cfg.DBURL == "" {
			return cfg, fmt.Errorf("DB_URL is required when STORE_DRIVER=postgres")
		}
	case "sqlite", "memory":
	default:
		return cfg, fmt.Errorf("STORE_DRIVER must be one of: postgres, sqlite, memory (got %q)", cfg.StoreDriver)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return cfg, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return cfg, fmt.Errorf("LOG_FORMAT must be json or console (got %q)", cfg.LogFormat)
	}
	return cfg, nil
}

// setupLogging configures the global zerolog logger.
func setupLogging(cfg config) {
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
}

// openStore builds the kvStore selected by STORE_DRIVER.
func openStore(ctx context.Context, cfg config) (kvStore, error) {
	switch cfg.StoreDriver {
	case "postgres":
		return newPGStore(ctx, cfg.DBURL)
	case "sqlite":
		return newSQLiteStore(cfg.SQLitePath)
	default:
		return newMemStore(), nil
	}
}
