package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds runtime settings for the moneyflow client.
type Config struct {
	// APIBaseURL is the root of the Money Flow REST API, without the /v1 part.
	APIBaseURL string
	// DatabasePath is the SQLite file holding persisted tokens.
	DatabasePath string
	// ListenAddr is where `serve` exposes the local dashboard.
	ListenAddr          string
	OnlineCheckInterval time.Duration
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://api.localhost:80"
	c.DatabasePath = "moneyflow.db"
	c.ListenAddr = "127.0.0.1:8088"
	c.OnlineCheckInterval = 3 * time.Second
	c.LogLevel = "info"
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid API base URL %q", c.APIBaseURL)
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	return nil
}

// LoadConfig applies defaults, then the environment (and .env), then the
// JSON file, then command-line flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
