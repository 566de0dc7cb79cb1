package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/macro-sim/internal/persistence"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "econsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, 60, cfg.Server.RateLimit)
	assert.Equal(t, "seeded", cfg.Game.NoiseSource)
	assert.Equal(t, persistence.DialectNone, cfg.Journal.Dialect)
	assert.Equal(t, "info", cfg.Log.Level)

	_, enabled := cfg.JournalOptions()
	assert.False(t, enabled)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9000"
  admin_key: secret
  cors_origins: ["https://econ.example.com"]
  rate_limit: 5
game:
  seed: 42
  noise_source: simplex
  autoplay_cron: "*/10 * * * * *"
journal:
  dialect: sqlite
  sqlite_path: /tmp/journal.db
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "secret", cfg.Server.AdminKey)
	assert.Equal(t, []string{"https://econ.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 5, cfg.Server.RateLimit)
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, "simplex", cfg.Game.NoiseSource)
	assert.Equal(t, "*/10 * * * * *", cfg.Game.AutoplayCron)

	opts, enabled := cfg.JournalOptions()
	require.True(t, enabled)
	assert.Equal(t, persistence.Options{Dialect: "sqlite", SQLitePath: "/tmp/journal.db"}, opts)

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":9000\"\n")
	t.Setenv("ECONSIM_ADDR", ":7000")
	t.Setenv("ECONSIM_ADMIN_KEY", "from-env")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("ECONSIM_SEED", "99")
	t.Setenv("ECONSIM_AUTOPLAY_CRON", "0 * * * * *")
	t.Setenv("DB_DIALECT", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/econsim")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "from-env", cfg.Server.AdminKey)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, int64(99), cfg.Game.Seed)
	assert.Equal(t, "0 * * * * *", cfg.Game.AutoplayCron)
	assert.Equal(t, persistence.DialectPostgres, cfg.Journal.Dialect)
	assert.Equal(t, "postgres://localhost/econsim", cfg.Journal.PostgresDSN)
}

func TestConfigPathEnv(t *testing.T) {
	path := writeConfig(t, "log:\n  level: warn\n")
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestRandomOrgKeySelectsSource(t *testing.T) {
	t.Setenv("RANDOM_ORG_API_KEY", "key")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "randomorg", cfg.Game.NoiseSource)
	assert.NoError(t, cfg.Validate())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [not, a, map]"))
	assert.ErrorContains(t, err, "parse config")

	t.Setenv("ECONSIM_SEED", "abc")
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "ECONSIM_SEED")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Game.NoiseSource = "dice"
	assert.ErrorContains(t, cfg.Validate(), "not supported")

	cfg = base()
	cfg.Game.NoiseSource = "randomorg"
	assert.ErrorContains(t, cfg.Validate(), "random_org_api_key")

	cfg = base()
	cfg.Journal.Dialect = "postgres"
	assert.ErrorContains(t, cfg.Validate(), "postgres_dsn")

	cfg = base()
	cfg.Journal.Dialect = "mysql"
	assert.ErrorContains(t, cfg.Validate(), "not supported")

	cfg = base()
	cfg.Log.Level = "loud"
	assert.ErrorContains(t, cfg.Validate(), "log.level")

	cfg = base()
	cfg.Server.RateLimit = -1
	assert.ErrorContains(t, cfg.Validate(), "rate_limit")
}
