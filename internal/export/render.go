package export

import (
	"context"

	"github.com/abdellahzou/HiResume/internal/autofit"
	"github.com/abdellahzou/HiResume/internal/i18n"
	"github.com/abdellahzou/HiResume/internal/layout"
	"github.com/abdellahzou/HiResume/internal/observability"
	"github.com/abdellahzou/HiResume/internal/types"
)

// Page is a rendered, fitted screen layout.
type Page struct {
	HTML []byte
	Tree *layout.Node
	Fit  autofit.Result
}

// Render renders doc for the screen and fits it onto one page.
func (e *Exporter) Render(ctx context.Context, doc types.ResumeDocument, locale i18n.Locale) (Page, error) {
	snap, err := prepare(doc, locale)
	if err != nil {
		return Page{}, err
	}
	return e.render(ctx, snap, nil, 0)
}

// RenderNeutral renders doc at neutral scale and spacing without measuring.
func (e *Exporter) RenderNeutral(ctx context.Context, doc types.ResumeDocument, locale i18n.Locale) (Page, error) {
	snap, err := prepare(doc, locale)
	if err != nil {
		return Page{}, err
	}
	return e.page(ctx, snap, func(*layout.Node, layout.HTMLOptions) (autofit.Result, error) {
		return autofit.Result{Params: autofit.Neutral(), Status: autofit.StatusUnmeasured}, nil
	})
}

// RenderRevision is Render inside a fitting session: a render for a revision
// older than the session's latest fails with autofit.ErrStale.
func (e *Exporter) RenderRevision(ctx context.Context, s *autofit.Session, revision uint64, doc types.ResumeDocument, locale i18n.Locale) (Page, error) {
	snap, err := prepare(doc, locale)
	if err != nil {
		return Page{}, err
	}
	return e.render(ctx, snap, s, revision)
}

func (e *Exporter) render(ctx context.Context, snap *snapshot, s *autofit.Session, revision uint64) (Page, error) {
	return e.page(ctx, snap, func(tree *layout.Node, opts layout.HTMLOptions) (autofit.Result, error) {
		if e.measure == nil {
			return autofit.Result{Params: autofit.Neutral(), Status: autofit.StatusUnmeasured}, nil
		}
		m := e.measure(tree, opts)
		var (
			fit autofit.Result
			err error
		)
		if s != nil {
			fit, err = s.Fit(ctx, revision, m)
		} else {
			fit, err = e.fitter.Fit(ctx, m)
		}
		if err != nil {
			return autofit.Result{}, err
		}
		observability.ObserveFit(fit)
		return fit, nil
	})
}

type fitFunc func(tree *layout.Node, opts layout.HTMLOptions) (autofit.Result, error)

func (e *Exporter) page(ctx context.Context, snap *snapshot, fitTree fitFunc) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	r, err := layout.For(snap.id)
	if err != nil {
		return Page{}, err
	}
	tree := r.Render(snap.set)
	opts := layout.HTMLOptions{Title: snap.set.DisplayName(), Lang: string(snap.locale)}

	fit, err := fitTree(tree, opts)
	if err != nil {
		return Page{}, err
	}

	opts.Scale, opts.Spacing = fit.Params.Scale, fit.Params.Spacing
	html, err := layout.HTML(tree, opts)
	if err != nil {
		return Page{}, err
	}
	return Page{HTML: html, Tree: tree, Fit: fit}, nil
}
