package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config defines the client-side environment variables.
type Config struct {
	Transport    string        `envconfig:"FEED_TRANSPORT" default:"http"`
	HTTPAddress  string        `envconfig:"FEED_HTTP_ADDR" default:"http://localhost:8080"`
	GRPCAddress  string        `envconfig:"FEED_GRPC_ADDR" default:"localhost:9090"`
	IdentityFile string        `envconfig:"FEED_IDENTITY_FILE"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"INFO"`
	Colours      bool          `envconfig:"FEED_COLOURS" default:"true"`
	GapTimeout   time.Duration `envconfig:"FEED_GAP_TIMEOUT" default:"2s"`
	MaxRetry     time.Duration `envconfig:"FEED_MAX_RETRY" default:"0"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if cfg.IdentityFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, err
		}
		cfg.IdentityFile = filepath.Join(home, ".chatfeed", "identity.yaml")
	}
	return cfg, nil
}
