package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "https://api.example.com")
	t.Setenv(EnvListenAddr, ":9000")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvDBPath, "")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "moneyflow.db", cfg.DatabasePath, "empty variable keeps the default")
}
