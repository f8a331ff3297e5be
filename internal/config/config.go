package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// DefaultRecords is the row count used for tables the config does not name.
const DefaultRecords = 10

type Config struct {
	NumRecords  map[string]int `json:"num_records" mapstructure:"num_records"`
	RandomSeed  *int64         `json:"random_seed" mapstructure:"random_seed"`
	Database    Database       `json:"database" mapstructure:"database"`
	OnExhausted string         `json:"on_exhausted" mapstructure:"on_exhausted"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

// Default returns the configuration used when no config file is given: ten
// rows per table into an in-memory SQLite database, time-seeded randomness.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a JSON or YAML config document.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.NumRecords == nil {
		c.NumRecords = make(map[string]int)
	}
	if c.Database.Provider == "" {
		c.Database.Provider = "sqlite"
	}
	if c.Database.URLEnv == "" {
		c.Database.URLEnv = "DATABASE_URL"
	}
	if c.OnExhausted == "" {
		c.OnExhausted = "abort"
	}
}

// CountFor returns the configured row count for a table, defaulting to
// DefaultRecords.
func (c *Config) CountFor(table string) int {
	if n, ok := c.NumRecords[table]; ok {
		return n
	}
	return DefaultRecords
}

func (c *Config) Validate() error {
	for table, n := range c.NumRecords {
		if n < 0 {
			return fmt.Errorf("num_records for table %s must not be negative, got %d", table, n)
		}
	}

	switch c.OnExhausted {
	case "abort", "truncate":
	default:
		return fmt.Errorf("unsupported on_exhausted policy: %s (supported: abort, truncate)", c.OnExhausted)
	}

	supported := []string{"sqlite", "sqlite3", "postgresql", "postgres", "mysql"}
	for _, p := range supported {
		if c.Database.Provider == p {
			return nil
		}
	}
	return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supported)
}

// DSN resolves the database URL from the configured environment variable.
// Empty is fine for SQLite, which falls back to ":memory:".
func (c *Config) DSN() string {
	return os.Getenv(c.Database.URLEnv)
}
