// Package config provides dynamic configuration management for staffdesk.
// It uses Viper to load settings from files, environment variables, and CLI flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for staffdesk.
type Config struct {
	// ── Console (web UI) ─────────────────────────────────────────────────────
	ListenHost string `mapstructure:"listen_host"`
	ListenPort int    `mapstructure:"listen_port"`
	// GinMode: "release", "debug" or "test".
	GinMode string `mapstructure:"gin_mode"`

	// ── Backend ──────────────────────────────────────────────────────────────
	// BackendURL is the base every employee endpoint is resolved against,
	// e.g. "http://localhost:8081" → GET http://localhost:8081/employee/list
	BackendURL     string        `mapstructure:"backend_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	// ListMinDelay keeps the list page in its loading state for at least
	// this long so fast responses don't flicker.
	ListMinDelay time.Duration `mapstructure:"list_min_delay"`

	// ── Presentation ─────────────────────────────────────────────────────────
	Locale string `mapstructure:"locale"` // "en" or "zh"

	// ── Logging ──────────────────────────────────────────────────────────────
	LogLevel  string `mapstructure:"log_level"`  // silent | error | warn | info | debug
	LogFormat string `mapstructure:"log_format"` // text | json

	// ── Local state ──────────────────────────────────────────────────────────
	// DBPath is the sqlite file holding console preferences (theme).
	DBPath string `mapstructure:"db_path"`
	// SessionSecret seeds the key that signs flash-message cookies.
	// Change this in production.
	SessionSecret string `mapstructure:"session_secret"`
}

// Addr returns the host:port the console listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ListenHost, c.ListenPort)
}

// Load reads config from file (./config.yaml or ~/.staffdesk/config.yaml)
// and falls back to smart defaults. Environment variables with prefix
// STAFFDESK_ override file values.
func Load() (*Config, error) {
	v := viper.New()

	// --- Smart Defaults ---
	v.SetDefault("listen_host", "127.0.0.1")
	v.SetDefault("listen_port", 8083)
	v.SetDefault("gin_mode", "release")

	v.SetDefault("backend_url", "http://localhost:8081")
	v.SetDefault("request_timeout", 10*time.Second)
	v.SetDefault("list_min_delay", 500*time.Millisecond)

	v.SetDefault("locale", "en")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	v.SetDefault("db_path", "staffdesk.db")
	v.SetDefault("session_secret", "sd-Wq3#nV8!kP1@tZ6$yR4%mB9^cX2&h") // random placeholder

	// --- Config file ---
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.staffdesk")
	if err := v.ReadInConfig(); err != nil {
		// config file is optional; ignore "not found" errors
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// --- Environment Variables ---
	v.SetEnvPrefix("STAFFDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	return &cfg, nil
}
