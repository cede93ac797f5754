// Package logger configures the process-wide zerolog logger.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process logger. Libraries receive it explicitly.
var Logger = log.Logger

// Config selects level and output format.
type Config struct {
	Level        string `mapstructure:"level" json:"level"`
	Format       string `mapstructure:"format" json:"format"` // json or pretty
	TimeFormat   string `mapstructure:"time_format" json:"time_format"`
	ReportCaller bool   `mapstructure:"report_caller" json:"report_caller"`
}

// Init replaces Logger and the zerolog global logger. Output goes to stderr
// so that commands can stream artifacts on stdout.
func Init(cfg Config) zerolog.Logger {
	return InitWriter(os.Stderr, cfg)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.TimeFormat == "" {
		zerolog.TimeFieldFormat = time.RFC3339
	} else {
		zerolog.TimeFieldFormat = cfg.TimeFormat
	}

	output := w
	if cfg.Format == "pretty" {
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: cfg.TimeFormat}
	}

	ctx := zerolog.New(output).Level(level).With().Timestamp()
	if cfg.ReportCaller {
		ctx = ctx.Caller()
	}
	Logger = ctx.Logger()
	log.Logger = Logger
	return Logger
}

// Ctx returns the logger stored in ctx, or Logger.
func Ctx(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &Logger
}

// WithContext stores Logger in ctx.
func WithContext(ctx context.Context) context.Context {
	return Logger.WithContext(ctx)
}
