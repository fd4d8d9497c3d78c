package config

import (
	"os"
	"strconv"
	"time"
)

type LedgerConfig struct {
	MaxRetries          int
	RetryBackoff        time.Duration
	DefaultHistoryLimit int
	MaxHistoryLimit     int
}

func LoadLedgerConfig() *LedgerConfig {
	return &LedgerConfig{
		MaxRetries:          getEnvAsInt("LEDGER_MAX_RETRIES", 3),
		RetryBackoff:        getEnvAsDuration("LEDGER_RETRY_BACKOFF", 25*time.Millisecond),
		DefaultHistoryLimit: getEnvAsInt("LEDGER_DEFAULT_HISTORY_LIMIT", 100),
		MaxHistoryLimit:     getEnvAsInt("LEDGER_MAX_HISTORY_LIMIT", 1000),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
