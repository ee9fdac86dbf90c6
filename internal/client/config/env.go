package config

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvAPIBaseURL = "API_BASE_URL"
	EnvDBPath     = "MONEYFLOW_DB_PATH"
	EnvListenAddr = "MONEYFLOW_LISTEN_ADDR"
	EnvLogLevel   = "MONEYFLOW_LOG_LEVEL"
)

// parseEnv overlays cfg with environment variables. A .env file in the
// working directory is loaded first if present; real environment variables
// are not overwritten by it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	cfg.APIBaseURL = getEnv(EnvAPIBaseURL, cfg.APIBaseURL)
	cfg.DatabasePath = getEnv(EnvDBPath, cfg.DatabasePath)
	cfg.ListenAddr = getEnv(EnvListenAddr, cfg.ListenAddr)
	cfg.LogLevel = getEnv(EnvLogLevel, cfg.LogLevel)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
