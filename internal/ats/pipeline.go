package ats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/abdellahzou/HiResume/internal/ingestion"
	"github.com/abdellahzou/HiResume/internal/types"
)

// State is a step of one analysis.
type State string

// Pipeline states. Done and Failed are terminal until the next Run or Reset.
const (
	StateIdle       State = "idle"
	StateExtracting State = "extracting"
	StateAnalyzing  State = "analyzing"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// ErrBusy is returned when Run is called while an analysis is in flight.
var ErrBusy = errors.New("ats: analysis already running")

// Cache stores results by key. Lookups and stores are best effort.
type Cache interface {
	Get(ctx context.Context, key string) (types.AtsResult, bool, error)
	Set(ctx context.Context, key string, result types.AtsResult) error
}

// Observer is told about every state change. It runs with the pipeline locked
// and must not call back into it.
type Observer func(from, to State)

// Pipeline runs one upload through extraction and analysis.
type Pipeline struct {
	analyzer   *Analyzer
	extractors ingestion.Registry
	cache      Cache
	observe    Observer
	log        zerolog.Logger

	mu     sync.Mutex
	state  State
	result types.AtsResult
	err    error
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithExtractors replaces the default pdf and docx extractors.
func WithExtractors(r ingestion.Registry) Option {
	return func(p *Pipeline) { p.extractors = r }
}

// WithCache enables result caching.
func WithCache(c Cache) Option {
	return func(p *Pipeline) { p.cache = c }
}

// WithObserver registers a state-change callback.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observe = o }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// NewPipeline returns an idle pipeline.
func NewPipeline(a *Analyzer, opts ...Option) *Pipeline {
	if a == nil {
		a = &Analyzer{weights: DefaultWeights()}
	}
	p := &Pipeline{
		analyzer:   a,
		extractors: ingestion.DefaultRegistry(),
		log:        zerolog.Nop(),
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Result returns the outcome of the last run: the result when Done, the error when Failed.
func (p *Pipeline) Result() (types.AtsResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result, p.err
}

// Reset returns a finished pipeline to Idle and forgets its outcome.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateExtracting || p.state == StateAnalyzing {
		return
	}
	p.transition(StateIdle)
	p.result, p.err = types.AtsResult{}, nil
}

// Run analyzes one uploaded file. Unsupported types are rejected before any
// extraction; extraction failures and empty text fail the run.
func (p *Pipeline) Run(ctx context.Context, fileName string, data []byte) (types.AtsResult, error) {
	start := time.Now()
	fileType := ingestion.FileType(fileName)
	log := p.log.With().Str("file_type", fileType).Int("bytes", len(data)).Logger()

	// The busy check and the move out of Idle share one critical section.
	p.mu.Lock()
	if p.state == StateExtracting || p.state == StateAnalyzing {
		p.mu.Unlock()
		return types.AtsResult{}, ErrBusy
	}
	p.transition(StateIdle)
	p.result, p.err = types.AtsResult{}, nil
	if !p.extractors.Supports(fileName) {
		err := &UnsupportedFileError{FileType: fileType}
		p.err = err
		p.transition(StateFailed)
		p.mu.Unlock()
		log.Warn().Err(err).Msg("ats analysis failed")
		return types.AtsResult{}, err
	}
	p.transition(StateExtracting)
	p.mu.Unlock()

	text, err := p.extractors.Extract(ctx, fileName, data)
	if err != nil {
		if ctx.Err() != nil {
			return p.fail(log, ctx.Err())
		}
		return p.fail(log, &ExtractionError{FileType: fileType, Cause: err})
	}
	if strings.TrimSpace(text) == "" {
		return p.fail(log, &EmptyTextError{FileType: fileType})
	}

	p.set(StateAnalyzing)
	key := p.cacheKey(text, fileType)
	result, hit := p.lookup(ctx, log, key)
	if !hit {
		result = p.analyzer.Analyze(text, fileName)
		p.store(ctx, log, key, result)
	}

	p.mu.Lock()
	p.result = result
	p.transition(StateDone)
	p.mu.Unlock()

	log.Info().
		Int("score", result.Score).
		Bool("cached", hit).
		Dur("duration", time.Since(start)).
		Msg("ats analysis complete")
	return result, nil
}

// CacheKey identifies an analysis of text with the given weights and file type.
func CacheKey(text, fileType string, w Weights) string {
	return fmt.Sprintf("ats:%s:%s:%s", w.Fingerprint(), fileType, ingestion.Hash(text))
}

func (p *Pipeline) cacheKey(text, fileType string) string {
	return CacheKey(text, fileType, p.analyzer.weights)
}

func (p *Pipeline) lookup(ctx context.Context, log zerolog.Logger, key string) (types.AtsResult, bool) {
	if p.cache == nil {
		return types.AtsResult{}, false
	}
	r, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Msg("ats cache lookup failed")
		return types.AtsResult{}, false
	}
	return r, ok
}

func (p *Pipeline) store(ctx context.Context, log zerolog.Logger, key string, r types.AtsResult) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Set(ctx, key, r); err != nil {
		log.Warn().Err(err).Msg("ats cache store failed")
	}
}

func (p *Pipeline) fail(log zerolog.Logger, err error) (types.AtsResult, error) {
	p.mu.Lock()
	p.err = err
	p.transition(StateFailed)
	p.mu.Unlock()

	log.Warn().Err(err).Msg("ats analysis failed")
	return types.AtsResult{}, err
}

func (p *Pipeline) set(s State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transition(s)
}

// transition must be called with mu held.
func (p *Pipeline) transition(to State) {
	from := p.state
	if from == to {
		return
	}
	p.state = to
	if p.observe != nil {
		p.observe(from, to)
	}
}

// UserMessage returns the message to show for err, or a generic one.
func UserMessage(err error) string {
	var ue UserError
	if errors.As(err, &ue) {
		return ue.UserMessage()
	}
	return (&ExtractionError{}).UserMessage()
}
