package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into the provided struct.
// The struct should use `env` tags to define mappings.
//
// Example:
//
//	type Config struct {
//	    HTTPPort       int    `env:"WISHLIST_HTTP_PORT" envDefault:"8080"`
//	    StorageBackend string `env:"STORAGE_BACKEND" envDefault:"file"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
