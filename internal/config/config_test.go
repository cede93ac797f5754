package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdellahzou/HiResume/internal/ats"
	"github.com/abdellahzou/HiResume/internal/autofit"
	"github.com/abdellahzou/HiResume/internal/i18n"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, autofit.DefaultOptions(), cfg.Fit.Options)
	assert.Equal(t, MeasurerEstimate, cfg.Fit.Measurer)
	assert.Equal(t, ats.DefaultWeights(), cfg.ATS)
	assert.Equal(t, i18n.English, cfg.DefaultLocale())
	assert.False(t, cfg.Features.ShowAds)
	assert.True(t, cfg.Server.RateLimit.Enabled)
}

func TestDefault_MatchesLoad(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CHROME_PATH", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load("")
	require.NoError(t, err)
	def := Default()
	assert.Equal(t, def.Fit, cfg.Fit)
	assert.Equal(t, def.ATS, cfg.ATS)
	assert.Equal(t, def.Server.Port, cfg.Server.Port)
	assert.Equal(t, def.Server.RateLimit.DefaultLimit, cfg.Server.RateLimit.DefaultLimit)
	assert.Equal(t, def.Redis.TTL, cfg.Redis.TTL)
	assert.NoError(t, def.Validate())
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, "hiresume.yaml", `
server:
  port: 9090
  allowed_origins: ["https://hiresume.app"]
log:
  level: debug
  format: pretty
fit:
  scale_floor: 0.7
  measurer: none
ats:
  keywords_max: 25
  profile_points: 10
locale: fr
features:
  show_ads: true
redis:
  addr: localhost:6379
  ttl: 1h
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://hiresume.app"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "pretty", cfg.Log.Format)
	assert.Equal(t, 0.7, cfg.Fit.ScaleFloor)
	assert.Equal(t, 2.0, cfg.Fit.SpacingCeiling)
	assert.Equal(t, MeasurerNone, cfg.Fit.Measurer)
	assert.Equal(t, 25.0, cfg.ATS.KeywordsMax)
	assert.Equal(t, 10.0, cfg.ATS.ProfilePoints)
	assert.Equal(t, i18n.French, cfg.DefaultLocale())
	assert.True(t, cfg.Features.ShowAds)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "hiresume.json", `{"server": {"port": 9090}, "locale": "fr"}`)
	t.Setenv("HIRESUME_SERVER_PORT", "7070")
	t.Setenv("HIRESUME_LOCALE", "es")
	t.Setenv("HIRESUME_FIT_MEASURER", "browser")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("DATABASE_URL", "postgres://localhost/hiresume")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, i18n.Spanish, cfg.DefaultLocale())
	assert.Equal(t, MeasurerBrowser, cfg.Fit.Measurer)
	assert.True(t, cfg.Auth.Enabled())
	assert.Equal(t, 24*time.Hour, cfg.Auth.Expiration())
	assert.Equal(t, "postgres://localhost/hiresume", cfg.DatabaseURL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, "hiresume.yaml", "locale: de\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, i18n.ErrUnknownLocale)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"upload", func(c *Config) { c.Server.MaxUploadBytes = 0 }, "max_upload_bytes"},
		{"rate limit", func(c *Config) { c.Server.RateLimit.DefaultLimit = 0 }, "rate_limit"},
		{"rate limit disabled", func(c *Config) {
			c.Server.RateLimit.Enabled = false
			c.Server.RateLimit.DefaultLimit = 0
		}, ""},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"locale", func(c *Config) { c.Locale = "de" }, "locale"},
		{"scale floor", func(c *Config) { c.Fit.ScaleFloor = 1.5 }, "fit"},
		{"spacing ceiling", func(c *Config) { c.Fit.SpacingCeiling = 0.5 }, "fit"},
		{"iterations", func(c *Config) { c.Fit.MaxIterations = 0 }, "fit"},
		{"measurer", func(c *Config) { c.Fit.Measurer = "ruler" }, "fit.measurer"},
		{"weights sum", func(c *Config) { c.ATS.KeywordsMax = 40 }, "ats"},
		{"short secret", func(c *Config) { c.Auth.Secret = "short" }, "auth"},
		{"expiration", func(c *Config) {
			c.Auth.Secret = "0123456789abcdef"
			c.Auth.ExpirationHours = 0
		}, "auth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestJWTConfig(t *testing.T) {
	var c JWTConfig
	assert.False(t, c.Enabled())

	c = JWTConfig{Secret: "0123456789abcdef", ExpirationHours: 2}
	assert.True(t, c.Enabled())
	assert.Equal(t, 2*time.Hour, c.Expiration())
	assert.NoError(t, c.normalize())
}
