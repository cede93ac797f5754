// Package config loads the application configuration. Environment variables
// override the config file, which overrides the defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/abdellahzou/HiResume/internal/ats"
	"github.com/abdellahzou/HiResume/internal/autofit"
	"github.com/abdellahzou/HiResume/internal/cache"
	"github.com/abdellahzou/HiResume/internal/i18n"
	"github.com/abdellahzou/HiResume/internal/logger"
)

// EnvPrefix prefixes every environment override, e.g. HIRESUME_SERVER_PORT.
const EnvPrefix = "HIRESUME"

// Measurer names accepted by fit.measurer.
const (
	MeasurerEstimate = "estimate"
	MeasurerBrowser  = "browser"
	MeasurerNone     = "none"
)

// Config is the complete application configuration.
type Config struct {
	Server      ServerConfig  `mapstructure:"server"`
	Log         logger.Config `mapstructure:"log"`
	DatabaseURL string        `mapstructure:"database_url"`
	Redis       cache.Config  `mapstructure:"redis"`
	Auth        JWTConfig     `mapstructure:"auth"`
	Fit         FitConfig     `mapstructure:"fit"`
	Browser     BrowserConfig `mapstructure:"browser"`
	ATS         ats.Weights   `mapstructure:"ats"`
	Locale      string        `mapstructure:"locale"`
	Features    Features      `mapstructure:"features"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int             `mapstructure:"port"`
	ReadTimeout    time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration   `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration   `mapstructure:"idle_timeout"`
	AllowedOrigins []string        `mapstructure:"allowed_origins"`
	MaxUploadBytes int64           `mapstructure:"max_upload_bytes"`
	SessionIdleTTL time.Duration   `mapstructure:"session_idle_ttl"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig configures the token-bucket limiter.
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"default_limit"`
	DefaultWindow   time.Duration `mapstructure:"default_window"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Whitelist       []string      `mapstructure:"whitelist"`
	Blacklist       []string      `mapstructure:"blacklist"`
}

// FitConfig bounds the auto-fit loop and picks how pages are measured.
type FitConfig struct {
	autofit.Options `mapstructure:",squash"`
	Measurer        string `mapstructure:"measurer"`
}

// BrowserConfig locates the headless Chrome used for measuring and printing.
type BrowserConfig struct {
	ChromePath string        `mapstructure:"chrome_path"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// Features are static flags injected at startup.
type Features struct {
	ShowAds bool `mapstructure:"show_ads" json:"showAds"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.max_upload_bytes", int64(10<<20))
	v.SetDefault("server.session_idle_ttl", 30*time.Minute)
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.default_limit", 600)
	v.SetDefault("server.rate_limit.default_window", time.Minute)
	v.SetDefault("server.rate_limit.cleanup_interval", 5*time.Minute)
	v.SetDefault("server.rate_limit.whitelist", []string{})
	v.SetDefault("server.rate_limit.blacklist", []string{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.time_format", "")
	v.SetDefault("log.report_caller", false)

	v.SetDefault("database_url", "")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", cache.DefaultTTL)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.expiration_hours", 24)
	v.SetDefault("auth.issuer", "")

	fit := autofit.DefaultOptions()
	v.SetDefault("fit.target_height", fit.TargetHeight)
	v.SetDefault("fit.scale_floor", fit.ScaleFloor)
	v.SetDefault("fit.spacing_ceiling", fit.SpacingCeiling)
	v.SetDefault("fit.tolerance", fit.Tolerance)
	v.SetDefault("fit.max_iterations", fit.MaxIterations)
	v.SetDefault("fit.measurer", MeasurerEstimate)

	v.SetDefault("browser.chrome_path", "")
	v.SetDefault("browser.timeout", 30*time.Second)

	w := ats.DefaultWeights()
	v.SetDefault("ats.sections_max", w.SectionsMax)
	v.SetDefault("ats.keywords_max", w.KeywordsMax)
	v.SetDefault("ats.keyword_target", w.KeywordTarget)
	v.SetDefault("ats.formatting_points", w.FormattingPoints)
	v.SetDefault("ats.min_chars", w.MinChars)
	v.SetDefault("ats.skills_present", w.SkillsPresent)
	v.SetDefault("ats.skills_absent", w.SkillsAbsent)
	v.SetDefault("ats.email_points", w.EmailPoints)
	v.SetDefault("ats.phone_points", w.PhonePoints)
	v.SetDefault("ats.profile_points", w.ProfilePoints)
	v.SetDefault("ats.min_words", w.MinWords)
	v.SetDefault("ats.strong_sections", w.StrongSections)
	v.SetDefault("ats.strong_keywords", w.StrongKeywords)

	v.SetDefault("locale", string(i18n.English))
	v.SetDefault("features.show_ads", false)
}

// Load reads the configuration. path may be empty, in which case a
// hiresume.{yaml,json,toml} in the working directory is used when present.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// Unprefixed names kept for deployments configured for the previous server.
	_ = v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("auth.jwt_secret", EnvPrefix+"_AUTH_JWT_SECRET", "JWT_SECRET")
	_ = v.BindEnv("auth.expiration_hours", EnvPrefix+"_AUTH_EXPIRATION_HOURS", "JWT_EXPIRATION_HOURS")
	_ = v.BindEnv("browser.chrome_path", EnvPrefix+"_BROWSER_CHROME_PATH", "CHROME_PATH")
	_ = v.BindEnv("redis.addr", EnvPrefix+"_REDIS_ADDR", "REDIS_ADDR")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("hiresume")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration Load produces with no file and no environment.
func Default() Config {
	fit := autofit.DefaultOptions()
	return Config{
		Server: ServerConfig{
			Port:           8080,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   120 * time.Second,
			IdleTimeout:    60 * time.Second,
			AllowedOrigins: []string{"*"},
			MaxUploadBytes: 10 << 20,
			SessionIdleTTL: 30 * time.Minute,
			RateLimit: RateLimitConfig{
				Enabled:         true,
				DefaultLimit:    600,
				DefaultWindow:   time.Minute,
				CleanupInterval: 5 * time.Minute,
				Whitelist:       []string{},
				Blacklist:       []string{},
			},
		},
		Log:      logger.Config{Level: "info", Format: "json"},
		Redis:    cache.Config{TTL: cache.DefaultTTL},
		Auth:     JWTConfig{ExpirationHours: 24},
		Fit:      FitConfig{Options: fit, Measurer: MeasurerEstimate},
		Browser:  BrowserConfig{Timeout: 30 * time.Second},
		ATS:      ats.DefaultWeights(),
		Locale:   string(i18n.English),
		Features: Features{},
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' out of range: %d", c.Server.Port)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("config error: 'server.max_upload_bytes' must be positive")
	}
	if c.Server.RateLimit.Enabled && (c.Server.RateLimit.DefaultLimit < 1 || c.Server.RateLimit.DefaultWindow <= 0) {
		return fmt.Errorf("config error: 'server.rate_limit' needs a positive default_limit and default_window")
	}
	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("config error: 'log.level': %w", err)
		}
	}
	switch c.Log.Format {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("config error: 'log.format' must be json or pretty, got %q", c.Log.Format)
	}
	if _, err := i18n.Parse(c.Locale); err != nil {
		return fmt.Errorf("config error: 'locale': %w", err)
	}
	if err := c.Fit.Options.Validate(); err != nil {
		return fmt.Errorf("config error: 'fit': %w", err)
	}
	switch c.Fit.Measurer {
	case MeasurerEstimate, MeasurerBrowser, MeasurerNone:
	default:
		return fmt.Errorf("config error: 'fit.measurer' must be estimate, browser or none, got %q", c.Fit.Measurer)
	}
	if err := c.ATS.Validate(); err != nil {
		return fmt.Errorf("config error: 'ats': %w", err)
	}
	if c.Auth.Enabled() {
		if err := c.Auth.normalize(); err != nil {
			return fmt.Errorf("config error: 'auth': %w", err)
		}
	}
	return nil
}

// DefaultLocale returns the parsed display locale.
func (c *Config) DefaultLocale() i18n.Locale {
	l, err := i18n.Parse(c.Locale)
	if err != nil {
		return i18n.English
	}
	return l
}
