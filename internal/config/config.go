// Package config loads service configuration from YAML with environment
// overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/macro-sim/internal/entropy"
	"github.com/talgya/macro-sim/internal/persistence"
)

// DefaultPath is used when neither a flag nor CONFIG_PATH names a file.
const DefaultPath = "configs/econsim.yaml"

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr        string   `yaml:"addr"`
		AdminKey    string   `yaml:"admin_key"`
		CORSOrigins []string `yaml:"cors_origins"`
		RateLimit   int      `yaml:"rate_limit"` // Turn requests per client per minute
	} `yaml:"server"`
	Game struct {
		Seed            int64  `yaml:"seed"`
		NoiseSource     string `yaml:"noise_source"`
		RandomOrgAPIKey string `yaml:"random_org_api_key"`
		AutoplayCron    string `yaml:"autoplay_cron"`
	} `yaml:"game"`
	Journal struct {
		Dialect     string `yaml:"dialect"`
		SQLitePath  string `yaml:"sqlite_path"`
		PostgresDSN string `yaml:"postgres_dsn"`
	} `yaml:"journal"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ECONSIM_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ECONSIM_ADMIN_KEY"); v != "" {
		cfg.Server.AdminKey = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.Server.CORSOrigins = append(cfg.Server.CORSOrigins, o)
			}
		}
	}
	if v := os.Getenv("ECONSIM_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse ECONSIM_SEED: %w", err)
		}
		cfg.Game.Seed = seed
	}
	if v := os.Getenv("ECONSIM_NOISE_SOURCE"); v != "" {
		cfg.Game.NoiseSource = v
	}
	if v := os.Getenv("RANDOM_ORG_API_KEY"); v != "" {
		cfg.Game.RandomOrgAPIKey = v
	}
	if v := os.Getenv("ECONSIM_AUTOPLAY_CRON"); v != "" {
		cfg.Game.AutoplayCron = v
	}
	if v := os.Getenv("DB_DIALECT"); v != "" {
		cfg.Journal.Dialect = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("DB_SQLITE_PATH"); v != "" {
		cfg.Journal.SQLitePath = v
	}
	if v := os.Getenv("DB_POSTGRES_DSN"); v != "" {
		cfg.Journal.PostgresDSN = v
	} else if v := os.Getenv("DATABASE_URL"); v != "" && cfg.Journal.PostgresDSN == "" {
		cfg.Journal.PostgresDSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8000"
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = 60
	}
	if cfg.Game.NoiseSource == "" {
		cfg.Game.NoiseSource = entropy.KindSeeded
		if cfg.Game.RandomOrgAPIKey != "" {
			cfg.Game.NoiseSource = entropy.KindRandomOrg
		}
	}
	if cfg.Journal.Dialect == "" {
		cfg.Journal.Dialect = persistence.DialectNone
	}
	if cfg.Journal.SQLitePath == "" {
		cfg.Journal.SQLitePath = "data/econsim.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}
	switch c.Game.NoiseSource {
	case entropy.KindSeeded, entropy.KindCrypto, entropy.KindSimplex:
	case entropy.KindRandomOrg:
		if c.Game.RandomOrgAPIKey == "" {
			return fmt.Errorf("game.noise_source %q requires game.random_org_api_key", c.Game.NoiseSource)
		}
	default:
		return fmt.Errorf("game.noise_source %q is not supported", c.Game.NoiseSource)
	}
	switch c.Journal.Dialect {
	case persistence.DialectNone, persistence.DialectSQLite:
	case persistence.DialectPostgres:
		if c.Journal.PostgresDSN == "" {
			return fmt.Errorf("journal.dialect postgres requires journal.postgres_dsn or DATABASE_URL")
		}
	default:
		return fmt.Errorf("journal.dialect %q is not supported", c.Journal.Dialect)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// JournalOptions returns the persistence options, or false when the journal
// is disabled.
func (c *Config) JournalOptions() (persistence.Options, bool) {
	if c.Journal.Dialect == persistence.DialectNone {
		return persistence.Options{}, false
	}
	return persistence.Options{
		Dialect:     c.Journal.Dialect,
		SQLitePath:  c.Journal.SQLitePath,
		PostgresDSN: c.Journal.PostgresDSN,
	}, true
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}
