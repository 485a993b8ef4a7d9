package main

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
)

// config is read from the environment (optionally seeded from .env).
type config struct {
	Env              string // "production" switches to JSON logs
	Addr             string
	DBURL            string
	GeminiAPIKey     string
	GeminiBaseURL    string
	GeminiModel      string
	RolloverSchedule string // cron spec, evaluated in the plan zone
	RolloverWorkers  int
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// loadConfig reads and validates the configuration. DB_URL is required; the
// assistant is disabled (503) when GEMINI_API_KEY is empty.
func loadConfig() (config, error) {
	cfg := config{
		Env:              getEnv("APP_ENV", "development"),
		Addr:             getEnv("ADDR", "localhost:3000"),
		DBURL:            os.Getenv("DB_URL"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:    getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta/models"),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		RolloverSchedule: getEnv("ROLLOVER_SCHEDULE", "55 23 * * *"),
	}
	if cfg.DBURL == "" {
		return config{}, fmt.Errorf("DB_URL is required")
	}

	workers, err := strconv.Atoi(getEnv("ROLLOVER_WORKERS", "4"))
	if err != nil || workers < 1 {
		return config{}, fmt.Errorf("ROLLOVER_WORKERS must be a positive integer, got %q", os.Getenv("ROLLOVER_WORKERS"))
	}
	cfg.RolloverWorkers = workers
	return cfg, nil
}

// newLogger builds the process logger: JSON in production, console otherwise.
func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
