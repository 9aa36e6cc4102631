package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	DB    DBConfig
	Sweep SweepConfig
}

type DBConfig struct {
	// Path is the sqlite database file. ":memory:" keeps everything in RAM,
	// which is what the tests use.
	Path string `env:"DB_PATH, default=polling.db"`
}

type SweepConfig struct {
	// Interval is how often expired sessions are purged.
	Interval time.Duration `env:"SWEEP_INTERVAL, default=5m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
