package autofit

import (
	"context"
	"errors"
	"sync"
)

// ErrStale is returned when a fit finishes after a newer revision was submitted.
// Its result must not be applied.
var ErrStale = errors.New("autofit: stale revision")

// Session serialises fits for one document. Starting a fit for a newer revision
// cancels the one in flight; fits for older revisions never produce a result.
type Session struct {
	fitter *Fitter

	mu      sync.Mutex
	latest  uint64
	started bool
	cancel  context.CancelFunc
	last    *Result
}

// NewSession returns a session using f.
func NewSession(f *Fitter) *Session {
	return &Session{fitter: f}
}

// Fit runs the loop for the document at revision, measured by m.
func (s *Session) Fit(ctx context.Context, revision uint64, m Measurer) (Result, error) {
	s.mu.Lock()
	if s.started && revision < s.latest {
		s.mu.Unlock()
		return Result{}, ErrStale
	}
	if s.cancel != nil {
		s.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.latest = revision
	s.started = true
	s.cancel = cancel
	s.mu.Unlock()

	res, err := s.fitter.Fit(runCtx, m)

	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.latest == revision && runCtx.Err() == nil
	cancel()
	if !current {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, ErrStale
	}
	s.cancel = nil
	if err != nil {
		return Result{}, err
	}
	s.last = &res
	return res, nil
}

// Last returns the most recent applied result.
func (s *Session) Last() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Result{}, false
	}
	return *s.last, true
}

// Revision returns the most recently submitted revision.
func (s *Session) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}
