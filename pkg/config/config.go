package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Supported session drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Config holds the settings of the ydbc command line.
type Config struct {
	// Driver is the database/sql driver backing sessions.
	Driver string `toml:"driver"`
	// DSN may be a literal or env("NAME") to read it from the environment.
	DSN string `toml:"dsn"`
	// MigrationsDir holds NNNN_name.up.sql / NNNN_name.down.sql files.
	MigrationsDir string `toml:"migrations-dir"`
	// MetricsAddr serves prometheus metrics when non-empty, e.g. ":9090".
	MetricsAddr string `toml:"metrics-addr"`
	Log         Log    `toml:"log"`
}

// Log is the log section of config.
type Log struct {
	// Log level.
	Level string `toml:"level"`
	// Log format, json or console.
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Driver:        DriverSQLite,
		MigrationsDir: "migrations",
		Log:           Log{Level: "info", Format: "console"},
	}
}

var envRef = regexp.MustCompile(`^\s*env\("([^"]+)"\)\s*$`)

// Load reads the optional TOML file at path, then .env, then YDBC_* environment
// overrides, in increasing order of precedence.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	// A missing .env is fine.
	_ = godotenv.Load()

	overrides := []struct {
		key string
		dst *string
	}{
		{"YDBC_DRIVER", &cfg.Driver},
		{"YDBC_DSN", &cfg.DSN},
		{"YDBC_MIGRATIONS_DIR", &cfg.MigrationsDir},
		{"YDBC_METRICS_ADDR", &cfg.MetricsAddr},
		{"YDBC_LOG_LEVEL", &cfg.Log.Level},
		{"YDBC_LOG_FORMAT", &cfg.Log.Format},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok {
			*o.dst = v
		}
	}
	if cfg.DSN == "" {
		cfg.DSN = os.Getenv("DATABASE_URL")
	}
	if m := envRef.FindStringSubmatch(cfg.DSN); m != nil {
		cfg.DSN = os.Getenv(m[1])
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported driver %q", c.Driver)
	}
	return nil
}
