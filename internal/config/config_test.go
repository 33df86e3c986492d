package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "hotelos.sqlite", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.CashGraceWindow)
	assert.Equal(t, 100.0, cfg.RateLimitRPS)
	assert.Equal(t, 200, cfg.RateLimitBurst)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 12*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 20, cfg.Auth.MinReasonLen)
	assert.False(t, cfg.Auth.OIDCEnabled())
	assert.NotEmpty(t, cfg.Warnings, "insecure default secret must warn")
}

func TestLoadFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PATH", "/tmp/pms.sqlite")
	t.Setenv("CASH_GRACE_WINDOW", "1h30m")
	t.Setenv("MIN_REASON_LEN", "40")
	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example , https://b.example")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/pms.sqlite", cfg.DBPath)
	assert.Equal(t, 90*time.Minute, cfg.CashGraceWindow)
	assert.Equal(t, 40, cfg.Auth.MinReasonLen)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.Warnings)
}

func TestProductionRefusesInsecureDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")

	_, err := LoadFromEnv()
	require.Error(t, err, "missing JWT_SECRET is fatal in production")

	t.Setenv("JWT_SECRET", "a-real-secret")
	_, err = LoadFromEnv()
	require.Error(t, err, "wildcard CORS is fatal in production")

	t.Setenv("CORS_ALLOWED_ORIGINS", "https://pms.example")
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestOIDCRequiresAudience(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("AUTH_ISSUER_URL", "https://issuer.example")

	_, err := LoadFromEnv()
	require.Error(t, err)

	t.Setenv("AUTH_AUDIENCE", "hotelos")
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.Auth.OIDCEnabled())
}

func TestSlogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	} {
		cfg := &Config{LogLevel: in}
		assert.Equal(t, want, cfg.SlogLevel(), "level %q", in)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "error") // real env wins over the file

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"# comment\n\nDB_PATH=\"/tmp/from-dotenv.sqlite\"\nLOG_LEVEL=debug\nmalformed line\n"), 0o600))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "/tmp/from-dotenv.sqlite", os.Getenv("DB_PATH"))
	assert.Equal(t, "error", os.Getenv("LOG_LEVEL"))

	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")),
		"a missing .env file is not an error")
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DB_PATH", "LISTEN_ADDR", "LOG_LEVEL", "ENV", "CASH_GRACE_WINDOW",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ALLOWED_ORIGINS",
		"JWT_SECRET", "SESSION_TTL", "BCRYPT_COST", "MIN_REASON_LEN",
		"AUTH_ISSUER_URL", "AUTH_AUDIENCE",
	} {
		t.Setenv(k, "")
	}
}
