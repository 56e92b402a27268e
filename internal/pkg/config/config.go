// Package config loads all runtime settings from the environment using
// go-envconfig. Every component receives its settings from here; nothing
// reads the environment directly.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	// APIBaseURL is the back-office API origin, without the /api prefix.
	APIBaseURL string        `env:"BACKOFFICE_API_URL,       default=https://localhost:44312"`
	APIPrefix  string        `env:"BACKOFFICE_API_PREFIX,    default=/api"`
	Timeout    time.Duration `env:"BACKOFFICE_HTTP_TIMEOUT,  default=30s"`

	// WatchInterval is the expiry-watchdog tick.
	WatchInterval time.Duration `env:"BACKOFFICE_WATCH_INTERVAL, default=60s"`

	LogLevel  string `env:"BACKOFFICE_LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"BACKOFFICE_LOG_PRETTY, default=true"`

	Store StoreConfig
}

// StoreConfig selects and configures the session store backend.
type StoreConfig struct {
	// Backend is one of: file, redis, memory.
	Backend string `env:"BACKOFFICE_STORE_BACKEND, default=file"`

	// Path is the session file location for the file backend. Empty means
	// ~/.backoffice/session.json, resolved at startup.
	Path string `env:"BACKOFFICE_STORE_PATH"`
	// Passphrase enables at-rest encryption of the session file when set.
	Passphrase string `env:"BACKOFFICE_STORE_PASSPHRASE"`

	Redis RedisConfig
}

type RedisConfig struct {
	Addr string `env:"BACKOFFICE_REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"BACKOFFICE_REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
