// Package config loads the application configuration from environment
// variables.
package config

import (
	"fmt"

	pkgconfig "github.com/DakshSitapara/wishlist/pkg/config"
)

// Storage backend names accepted by STORAGE_BACKEND.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
	BackendNone   = "none"
)

// Config holds all configuration for the wishlist server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"WISHLIST_HTTP_PORT" envDefault:"8080"`

	// Storage backend: file (default), redis, memory, or none.
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"file"`

	// Path of the JSON document used by the file backend.
	StoragePath string `env:"STORAGE_PATH" envDefault:"wishlist.json"`

	// Redis, used when STORAGE_BACKEND=redis.
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load wishlist config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}

	switch c.StorageBackend {
	case BackendFile, BackendRedis, BackendMemory, BackendNone:
	default:
		return fmt.Errorf("invalid storage backend: %q", c.StorageBackend)
	}

	if c.StorageBackend == BackendFile && c.StoragePath == "" {
		return fmt.Errorf("storage path is required for the file backend")
	}

	return nil
}
