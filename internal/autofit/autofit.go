// Package autofit fits a rendered resume onto a single page. It measures the
// content height, adjusts a scale or spacing factor and measures again, within a
// bounded number of iterations.
package autofit

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/abdellahzou/HiResume/internal/layout"
)

// FitParams are the layout-time variables consumed by the renderer.
// Scale shrinks fonts and gaps; Spacing stretches gaps only.
type FitParams struct {
	Scale   float64 `json:"scale"`
	Spacing float64 `json:"spacing"`
}

// Neutral returns the unadjusted parameters.
func Neutral() FitParams {
	return FitParams{Scale: 1, Spacing: 1}
}

// HTMLOptions converts the parameters for the HTML emitter.
func (p FitParams) HTMLOptions() layout.HTMLOptions {
	return layout.HTMLOptions{Scale: p.Scale, Spacing: p.Spacing}
}

// Status describes how a fit ended.
type Status string

// Fit outcomes.
const (
	// StatusNeutral means the content already fit within tolerance.
	StatusNeutral Status = "neutral"
	// StatusConverged means the height landed within tolerance below the target.
	StatusConverged Status = "converged"
	// StatusFloored means the content still overflows at the minimum scale.
	StatusFloored Status = "floored"
	// StatusCeiling means the content is still short at the maximum spacing.
	StatusCeiling Status = "ceiling"
	// StatusExhausted means the iteration cap was hit, or the height jumps across the target.
	StatusExhausted Status = "exhausted"
	// StatusUnmeasured means the surface could not be measured and nothing was adjusted.
	StatusUnmeasured Status = "unmeasured"
)

// Result is the outcome of one fit.
type Result struct {
	Params     FitParams `json:"params"`
	Height     float64   `json:"height"`
	Target     float64   `json:"target"`
	Iterations int       `json:"iterations"`
	Status     Status    `json:"status"`
}

// Fits reports whether the final height is at most the target, within tolerance.
func (r Result) Fits(tolerance float64) bool {
	return r.Height <= r.Target*(1+tolerance)
}

// Measurer returns the content height rendered with the given parameters.
type Measurer interface {
	Measure(ctx context.Context, p FitParams) (float64, error)
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(ctx context.Context, p FitParams) (float64, error)

// Measure implements Measurer.
func (f MeasureFunc) Measure(ctx context.Context, p FitParams) (float64, error) {
	return f(ctx, p)
}

// Options bound the fitting loop.
type Options struct {
	TargetHeight   float64 `mapstructure:"target_height"`
	ScaleFloor     float64 `mapstructure:"scale_floor"`
	SpacingCeiling float64 `mapstructure:"spacing_ceiling"`
	Tolerance      float64 `mapstructure:"tolerance"`
	MaxIterations  int     `mapstructure:"max_iterations"`
}

// DefaultOptions returns the A4 defaults.
func DefaultOptions() Options {
	return Options{
		TargetHeight:   layout.PageHeight,
		ScaleFloor:     0.6,
		SpacingCeiling: 2.0,
		Tolerance:      0.01,
		MaxIterations:  20,
	}
}

// Validate rejects options the loop cannot work with.
func (o Options) Validate() error {
	switch {
	case o.TargetHeight <= 0:
		return fmt.Errorf("target height must be positive, got %v", o.TargetHeight)
	case o.ScaleFloor <= 0 || o.ScaleFloor > 1:
		return fmt.Errorf("scale floor must be in (0,1], got %v", o.ScaleFloor)
	case o.SpacingCeiling < 1:
		return fmt.Errorf("spacing ceiling must be at least 1, got %v", o.SpacingCeiling)
	case o.Tolerance < 0 || o.Tolerance >= 1:
		return fmt.Errorf("tolerance must be in [0,1), got %v", o.Tolerance)
	case o.MaxIterations < 1:
		return fmt.Errorf("max iterations must be at least 1, got %d", o.MaxIterations)
	}
	return nil
}

// Fitter runs the measure, adjust, re-measure loop.
type Fitter struct {
	opts Options
	log  zerolog.Logger
}

// NewFitter returns a fitter. Invalid options are replaced by the defaults.
func NewFitter(opts Options, log zerolog.Logger) *Fitter {
	if err := opts.Validate(); err != nil {
		log.Warn().Err(err).Msg("invalid fit options, using defaults")
		opts = DefaultOptions()
	}
	return &Fitter{opts: opts, log: log}
}

// Options returns the options in use.
func (f *Fitter) Options() Options { return f.opts }

// Fit runs the loop with the default options and no logging.
func Fit(ctx context.Context, m Measurer) (Result, error) {
	return NewFitter(DefaultOptions(), zerolog.Nop()).Fit(ctx, m)
}

// Fit measures at neutral parameters, then solves for the scale (overflow) or the
// spacing (underflow) that brings the height just under the target. A measurement
// failure leaves the parameters neutral. Only context errors are returned.
func (f *Fitter) Fit(ctx context.Context, m Measurer) (Result, error) {
	target := f.opts.TargetHeight
	unmeasured := Result{Params: Neutral(), Target: target, Status: StatusUnmeasured}

	h0, err := m.Measure(ctx, Neutral())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		f.log.Warn().Err(err).Msg("fit: measurement failed, keeping neutral layout")
		return unmeasured, nil
	}
	if h0 <= 0 || math.IsNaN(h0) || math.IsInf(h0, 0) {
		f.log.Warn().Float64("height", h0).Msg("fit: surface not measurable, keeping neutral layout")
		return unmeasured, nil
	}

	if math.Abs(h0-target) <= f.opts.Tolerance*target {
		return Result{Params: Neutral(), Height: h0, Target: target, Iterations: 1, Status: StatusNeutral}, nil
	}

	var p problem
	if h0 > target {
		p = problem{
			lo:      f.opts.ScaleFloor,
			hi:      1,
			params:  func(v float64) FitParams { return FitParams{Scale: v, Spacing: 1} },
			hiBound: bound{v: 1, h: h0, ok: true},
		}
	} else {
		p = problem{
			lo:      1,
			hi:      f.opts.SpacingCeiling,
			params:  func(v float64) FitParams { return FitParams{Scale: 1, Spacing: v} },
			loBound: bound{v: 1, h: h0, ok: true},
		}
	}

	res, err := f.solve(ctx, m, p, h0)
	if err != nil {
		return Result{}, err
	}
	res.Target = target
	f.log.Debug().
		Str("status", string(res.Status)).
		Float64("scale", res.Params.Scale).
		Float64("spacing", res.Params.Spacing).
		Float64("height", res.Height).
		Int("iterations", res.Iterations).
		Msg("fit: done")
	return res, nil
}

// bound is a measured point of the height function.
type bound struct {
	v, h float64
	ok   bool
}

// problem is a search for the largest v in [lo,hi] whose height does not exceed
// the target. Height grows with v for both scale and spacing.
type problem struct {
	lo, hi  float64
	params  func(v float64) FitParams
	loBound bound // largest v known to fit
	hiBound bound // smallest v known to overflow
}

func (f *Fitter) solve(ctx context.Context, m Measurer, p problem, h0 float64) (Result, error) {
	target := f.opts.TargetHeight
	// aim inside the acceptance band rather than at its edge
	aim := target * (1 - f.opts.Tolerance/2)
	accept := func(h float64) bool { return h <= target && h >= target*(1-f.opts.Tolerance) }

	prev := bound{v: 1, h: h0, ok: true}
	v := clamp(prev.v*aim/prev.h, p.lo, p.hi)
	iterations := 1

	for iterations < f.opts.MaxIterations {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		h, err := m.Measure(ctx, p.params(v))
		iterations++
		if err != nil || h <= 0 {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Result{}, ctxErr
			}
			f.log.Warn().Err(err).Float64("v", v).Float64("height", h).Msg("fit: re-measurement failed, keeping neutral layout")
			return Result{Params: Neutral(), Height: h0, Iterations: iterations, Status: StatusUnmeasured}, nil
		}

		if accept(h) {
			return Result{Params: p.params(v), Height: h, Iterations: iterations, Status: StatusConverged}, nil
		}
		cur := bound{v: v, h: h, ok: true}
		if h <= target {
			if !p.loBound.ok || v > p.loBound.v {
				p.loBound = cur
			}
			if v >= p.hi {
				return Result{Params: p.params(v), Height: h, Iterations: iterations, Status: StatusCeiling}, nil
			}
		} else {
			if !p.hiBound.ok || v < p.hiBound.v {
				p.hiBound = cur
			}
			if v <= p.lo {
				return Result{Params: p.params(v), Height: h, Iterations: iterations, Status: StatusFloored}, nil
			}
		}
		if p.loBound.ok && p.hiBound.ok && p.hiBound.v-p.loBound.v < 1e-4 {
			// the height jumps across the target, e.g. a line wrap
			break
		}

		v = p.next(prev, cur, aim)
		prev = cur
	}

	best := p.hiBound
	if p.loBound.ok {
		best = p.loBound
	}
	return Result{Params: p.params(best.v), Height: best.h, Iterations: iterations, Status: StatusExhausted}, nil
}

// next proposes the following point: a secant step through the last two
// measurements, kept strictly inside the known bracket, else bisection or a
// proportional step toward the open end.
func (p problem) next(prev, cur bound, aim float64) float64 {
	lo, hi := p.lo, p.hi
	loOpen, hiOpen := true, true
	if p.loBound.ok {
		lo, loOpen = p.loBound.v, false
	}
	if p.hiBound.ok {
		hi, hiOpen = p.hiBound.v, false
	}

	v := math.NaN()
	if cur.h != prev.h {
		v = cur.v + (aim-cur.h)*(cur.v-prev.v)/(cur.h-prev.h)
	}
	inside := !math.IsNaN(v) && !math.IsInf(v, 0) &&
		(v > lo || (loOpen && v >= lo)) &&
		(v < hi || (hiOpen && v <= hi))
	if inside {
		return v
	}

	switch {
	case !loOpen && !hiOpen:
		return (lo + hi) / 2
	case hiOpen:
		// only a fitting point is known: grow proportionally
		return clamp(cur.v*aim/cur.h, lo, p.hi)
	default:
		return clamp(cur.v*aim/cur.h, p.lo, hi)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
