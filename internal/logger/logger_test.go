package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWriter_JSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	l := InitWriter(&buf, Config{Level: "warn", Format: "json"})

	l.Info().Msg("hidden")
	l.Warn().Str("format", "pdf").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "pdf", entry["format"])
	assert.Equal(t, "shown", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestInitWriter_BadLevelDefaultsToInfo(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	l := InitWriter(&buf, Config{Level: "loud"})
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())

	l.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
}

func TestInitWriter_Pretty(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	l := InitWriter(&buf, Config{Level: "info", Format: "pretty"})
	l.Info().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestCtx_FallsBackToLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	InitWriter(&buf, Config{Level: "info"})

	Ctx(context.Background()).Info().Msg("fallback")
	assert.Contains(t, buf.String(), "fallback")

	buf.Reset()
	Ctx(WithContext(context.Background())).Info().Msg("stored")
	assert.Contains(t, buf.String(), "stored")
}
