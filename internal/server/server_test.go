package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdellahzou/HiResume/internal/config"
	"github.com/abdellahzou/HiResume/internal/export"
	"github.com/abdellahzou/HiResume/internal/i18n"
	"github.com/abdellahzou/HiResume/internal/server/ratelimit"
)

const sampleDocument = `{
  "personalInfo": {"fullName": "Jane Doe", "title": "Engineer", "email": "jane@x.com"},
  "experience": [{"id": "e1", "company": "Acme", "position": "Engineer", "startDate": "2020-01", "current": true, "description": "Led migration"}],
  "skills": [{"id": "s1", "name": "Go", "level": 4}],
  "templateId": "modern"
}`

type fakePrinter struct{}

func (fakePrinter) PrintPDF(context.Context, []byte) ([]byte, error) {
	return []byte("%PDF-1.4 test"), nil
}

func newTestServer(t *testing.T, cfg Config, deps Deps) *Server {
	t.Helper()
	if cfg.RateLimit == nil {
		cfg.RateLimit = &ratelimit.Config{Enabled: false}
	}
	deps.Logger = zerolog.Nop()
	s := New(cfg, deps)
	t.Cleanup(s.Close)
	return s
}

func do(t *testing.T, h http.Handler, method, target string, body []byte, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	msg, _ := body["error"].(string)
	return msg
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Config{}, Deps{})
	rec := do(t, s.Handler(), http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestFeatures(t *testing.T) {
	s := newTestServer(t, Config{Features: config.Features{ShowAds: true}}, Deps{})
	rec := do(t, s.Handler(), http.MethodGet, "/features", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got featuresResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.ShowAds)
	assert.False(t, got.PDF)
	assert.False(t, got.Drafts)
	assert.Len(t, got.Templates, 6)
	assert.Equal(t, i18n.All(), got.Locales)
	assert.NotContains(t, got.Formats, export.FormatPDF)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, Config{AllowedOrigins: []string{"https://hiresume.app"}}, Deps{})

	rec := do(t, s.Handler(), http.MethodOptions, "/render", nil, http.Header{"Origin": {"https://hiresume.app"}})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://hiresume.app", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")

	rec = do(t, s.Handler(), http.MethodGet, "/health", nil, http.Header{"Origin": {"https://evil.example"}})
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	open := newTestServer(t, Config{}, Deps{})
	rec = do(t, open.Handler(), http.MethodGet, "/health", nil, http.Header{"Origin": {"https://any.example"}})
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRender(t *testing.T) {
	s := newTestServer(t, Config{}, Deps{})
	rec := do(t, s.Handler(), http.MethodPost, "/render?locale=fr", []byte(sampleDocument), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Fit-Scale"))
	assert.NotEmpty(t, rec.Header().Get("X-Fit-Status"))
	assert.Contains(t, rec.Body.String(), `lang="fr"`)
	assert.Contains(t, rec.Body.String(), "Acme")
}

func TestRender_NoFit(t *testing.T) {
	s := newTestServer(t, Config{}, Deps{})
	rec := do(t, s.Handler(), http.MethodPost, "/render?fit=false", []byte(sampleDocument), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "unmeasured", rec.Header().Get("X-Fit-Status"))
	assert.Equal(t, "1.0000", rec.Header().Get("X-Fit-Scale"))

	rec = do(t, s.Handler(), http.MethodPost, "/render?fit=maybe", []byte(sampleDocument), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRender_BadRequests(t *testing.T) {
	s := newTestServer(t, Config{}, Deps{})
	unknownTemplate := strings.Replace(sampleDocument, `"modern"`, `"neon"`, 1)

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{"empty body", "/render", ""},
		{"malformed JSON", "/render", `{"personalInfo":`},
		{"malformed export", "/export/tex", `{"personalInfo":`},
		{"not JSON", "/export/docx", `not json`},
		{"unknown template", "/render", unknownTemplate},
		{"unknown locale", "/render?locale=de", sampleDocument},
		{"bad skill level", "/render", strings.Replace(sampleDocument, `"level": 4`, `"level": 7`, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s.Handler(), http.MethodPost, tt.target, []byte(tt.body), nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decodeError(t, rec))
		})
	}
}

func TestExport(t *testing.T) {
	s := newTestServer(t, Config{}, Deps{})

	rec := do(t, s.Handler(), http.MethodPost, "/export/tex", []byte(sampleDocument), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/x-tex", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="resume.tex"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), `\documentclass`)

	rec = do(t, s.Handler(), http.MethodPost, "/export/docx?locale=es", []byte(sampleDocument), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))

	rec = do(t, s.Handler(), http.MethodPost, "/export/odt", []byte(sampleDocument), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExport_PDF(t *testing.T) {
	s := newTestServer(t, Config{}, Deps{})
	rec := do(t, s.Handler(), http.MethodPost, "/export/pdf", []byte(sampleDocument), nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)

	printing := newTestServer(t, Config{}, Deps{Exporter: export.New(export.WithPrinter(fakePrinter{}))})
	rec = do(t, printing.Handler(), http.MethodPost, "/export/pdf", []byte(sampleDocument), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="resume.pdf"`, rec.Header().Get("Content-Disposition"))
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, Config{RateLimit: &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Minute,
	}}, Deps{})

	for i := 0; i < 2; i++ {
		rec := do(t, s.Handler(), http.MethodGet, "/features", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}
	rec := do(t, s.Handler(), http.MethodGet, "/features", nil, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decodeError(t, rec))

	rec = do(t, s.Handler(), http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code, "health is never limited")
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t, Config{}, Deps{})
	do(t, s.Handler(), http.MethodGet, "/health", nil, nil)

	rec := do(t, s.Handler(), http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hiresume_http_requests_total")
	assert.Contains(t, rec.Body.String(), `route="GET /health"`)
}

func TestStart_StopsOnCancel(t *testing.T) {
	s := newTestServer(t, Config{Port: 0}, Deps{})
	s.httpServer.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
