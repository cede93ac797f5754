// Package server exposes rendering, export, ATS analysis and draft storage over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/abdellahzou/HiResume/internal/ats"
	"github.com/abdellahzou/HiResume/internal/autofit"
	"github.com/abdellahzou/HiResume/internal/config"
	"github.com/abdellahzou/HiResume/internal/db"
	"github.com/abdellahzou/HiResume/internal/export"
	"github.com/abdellahzou/HiResume/internal/i18n"
	"github.com/abdellahzou/HiResume/internal/ingestion"
	"github.com/abdellahzou/HiResume/internal/observability"
	"github.com/abdellahzou/HiResume/internal/server/middleware"
	"github.com/abdellahzou/HiResume/internal/server/ratelimit"
	"github.com/abdellahzou/HiResume/internal/types"
)

// Config holds server configuration
type Config struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
	MaxUploadBytes int64
	SessionIdleTTL time.Duration
	Locale         i18n.Locale
	Features       config.Features
	RateLimit      *ratelimit.Config
}

// DraftStore persists drafts per owner. *db.DB implements it.
type DraftStore interface {
	CreateDraft(ctx context.Context, owner uuid.UUID, title string, doc types.ResumeDocument) (*db.Draft, error)
	GetDraft(ctx context.Context, owner, id uuid.UUID) (*db.Draft, error)
	ListDrafts(ctx context.Context, owner uuid.UUID) ([]db.DraftSummary, error)
	UpdateDraft(ctx context.Context, owner, id uuid.UUID, title string, doc types.ResumeDocument, ifRevision int64) (*db.Draft, error)
	DeleteDraft(ctx context.Context, owner, id uuid.UUID) error
}

// Deps are the collaborators of the server. Exporter is required; without
// Drafts and Tokens the /drafts routes answer 501.
type Deps struct {
	Exporter   *export.Exporter
	Analyzer   *ats.Analyzer
	Extractors ingestion.Registry
	Cache      ats.Cache
	Drafts     DraftStore
	Tokens     *JWTService
	Logger     zerolog.Logger
}

// Server represents the HTTP server
type Server struct {
	cfg         Config
	deps        Deps
	log         zerolog.Logger
	handler     http.Handler
	httpServer  *http.Server
	rateLimiter *ratelimit.Limiter

	sessionsMu sync.Mutex
	sessions   map[uuid.UUID]*draftSession
	lastSweep  time.Time
	now        func() time.Time
}

// draftSession is the auto-fit session of one draft and when it was last used.
type draftSession struct {
	fit      *autofit.Session
	lastUsed time.Time
}

// New creates a new server instance
func New(cfg Config, deps Deps) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = ingestion.MaxFileSize
	}
	if cfg.Locale == "" {
		cfg.Locale = i18n.Default
	}
	if cfg.SessionIdleTTL <= 0 {
		cfg.SessionIdleTTL = DefaultSessionIdleTTL
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if deps.Exporter == nil {
		deps.Exporter = export.New(export.WithLogger(deps.Logger))
	}
	if deps.Analyzer == nil {
		// the default weights always validate
		deps.Analyzer, _ = ats.NewAnalyzer(ats.DefaultWeights())
	}
	if deps.Extractors == nil {
		deps.Extractors = ingestion.DefaultRegistry()
	}

	s := &Server{
		cfg:         cfg,
		deps:        deps,
		log:         deps.Logger,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		sessions:    make(map[uuid.UUID]*draftSession),
		now:         time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /features", s.handleFeatures)

	mux.HandleFunc("POST /render", s.handleRender)
	mux.HandleFunc("POST /export/{format}", s.handleExport)
	mux.HandleFunc("POST /ats", s.handleATS)

	auth := s.requireDrafts
	mux.Handle("POST /drafts", auth(s.handleCreateDraft))
	mux.Handle("GET /drafts", auth(s.handleListDrafts))
	mux.Handle("GET /drafts/{id}", auth(s.handleGetDraft))
	mux.Handle("PUT /drafts/{id}", auth(s.handleUpdateDraft))
	mux.Handle("DELETE /drafts/{id}", auth(s.handleDeleteDraft))
	mux.Handle("PATCH /drafts/{id}", auth(s.handlePatchDraft))
	mux.Handle("POST /drafts/{id}/render", auth(s.handleRenderDraft))
	mux.Handle("POST /drafts/{id}/{collection}", auth(s.handleAddEntry))
	mux.Handle("PATCH /drafts/{id}/{collection}/{entry}", auth(s.handleUpdateEntry))
	mux.Handle("DELETE /drafts/{id}/{collection}/{entry}", auth(s.handleRemoveEntry))

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// Handler returns the root handler with every middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.Close()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err := s.httpServer.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info().Msg("server stopped")
	return nil
}

// Close releases background resources.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	wildcard := false
	allowed := make(map[string]bool, len(s.cfg.AllowedOrigins))
	for _, o := range s.cfg.AllowedOrigins {
		if o == "*" {
			wildcard = true
		}
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case wildcard:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && allowed[origin]:
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Fit-Scale, X-Fit-Spacing, X-Fit-Status")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs one line per request and records request metrics.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		observability.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		observability.HTTPDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", elapsed).
			Str("remote", r.RemoteAddr).
			Msg("request")
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID uses the IP of RemoteAddr. Forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}
	s.log.Warn().Int("limit", info.Limit).Msg("rate limit exceeded")
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail maps err to a status and writes it. Server errors are logged and their text hidden.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		s.errorResponse(w, status, http.StatusText(status))
		return
	}
	s.errorResponse(w, status, err.Error())
}

// locale reads the locale query parameter, defaulting to the configured one.
func (s *Server) locale(r *http.Request) (i18n.Locale, error) {
	q := r.URL.Query().Get("locale")
	if q == "" {
		return s.cfg.Locale, nil
	}
	return i18n.Parse(q)
}

// requireDrafts guards draft routes with JWT auth, or answers 501 when drafts are not configured.
func (s *Server) requireDrafts(h http.HandlerFunc) http.Handler {
	if s.deps.Drafts == nil || s.deps.Tokens == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.fail(w, r, &ErrUnavailable{Feature: "draft storage"})
		})
	}
	return middleware.AuthMiddleware(s.deps.Tokens.AsTokenValidator())(h)
}

// DefaultSessionIdleTTL is how long an unused draft fitting session is kept.
const DefaultSessionIdleTTL = 30 * time.Minute

// session returns the auto-fit session of a draft. Sessions idle for longer
// than SessionIdleTTL are evicted, at most one sweep per TTL.
func (s *Server) session(id uuid.UUID) *autofit.Session {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	now := s.now()
	ttl := s.cfg.SessionIdleTTL
	if now.Sub(s.lastSweep) >= ttl {
		for key, ds := range s.sessions {
			if now.Sub(ds.lastUsed) > ttl {
				delete(s.sessions, key)
			}
		}
		s.lastSweep = now
	}
	ds, ok := s.sessions[id]
	if !ok {
		ds = &draftSession{fit: autofit.NewSession(s.deps.Exporter.Fitter())}
		s.sessions[id] = ds
	}
	ds.lastUsed = now
	return ds.fit
}

func (s *Server) dropSession(id uuid.UUID) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	delete(s.sessions, id)
}
