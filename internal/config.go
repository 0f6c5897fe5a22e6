package internal

import (
	"fmt"
	"time"
)

const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

type Config struct {
	Backend           string        `env:"BACKEND,default=badger"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH"`
	SQLiteFilepath    string        `env:"SQLITE_FILEPATH"`
	HistorySize       int           `env:"HISTORY_SIZE,default=10"`
	MaxContentLength  int           `env:"MAX_CONTENT_LENGTH,default=4096"`
	BatchSize         int           `env:"BATCH_SIZE,default=256"`
	PollInterval      time.Duration `env:"POLL_INTERVAL,default=1s"`
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL,default=15s"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	MetricInterval    time.Duration `env:"METRIC_INTERVAL,default=5s"`
	CensoredWordsFile string        `env:"CENSORED_WORDS_FILE"`
	LogLevel          string        `env:"LOG_LEVEL,required=true"`
	Host              string        `env:"HOST,default=localhost"`
	HTTPPort          int           `env:"HTTP_PORT,default=8080"`
	GRPCPort          int           `env:"GRPC_PORT,default=9090"`
	DebugPort         int           `env:"DEBUG_PORT,default=0"`
}

// Validate checks the combinations struct tags cannot express.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendBadger:
		// An empty BADGER_FILEPATH runs in memory.
	case BackendSQLite:
		if c.SQLiteFilepath == "" {
			return fmt.Errorf("SQLITE_FILEPATH is required with BACKEND=%s", BackendSQLite)
		}
	default:
		return fmt.Errorf("BACKEND must be %q or %q, got %q", BackendBadger, BackendSQLite, c.Backend)
	}
	if c.HistorySize <= 0 {
		return fmt.Errorf("HISTORY_SIZE must be positive, got %d", c.HistorySize)
	}
	if c.HTTPPort == c.GRPCPort {
		return fmt.Errorf("HTTP_PORT and GRPC_PORT must differ, both are %d", c.HTTPPort)
	}
	if c.DebugPort != 0 && (c.DebugPort == c.HTTPPort || c.DebugPort == c.GRPCPort) {
		return fmt.Errorf("DEBUG_PORT %d is already used", c.DebugPort)
	}
	return nil
}

func (c Config) HTTPAddress() string { return fmt.Sprintf("%s:%d", c.Host, c.HTTPPort) }

func (c Config) GRPCAddress() string { return fmt.Sprintf("%s:%d", c.Host, c.GRPCPort) }

func (c Config) DebugAddress() string { return fmt.Sprintf("%s:%d", c.Host, c.DebugPort) }
