package export

import (
	"context"
	"errors"
	"fmt"
	"text/template"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/abdellahzou/HiResume/internal/autofit"
	"github.com/abdellahzou/HiResume/internal/chronology"
	"github.com/abdellahzou/HiResume/internal/docx"
	"github.com/abdellahzou/HiResume/internal/i18n"
	"github.com/abdellahzou/HiResume/internal/layout"
	"github.com/abdellahzou/HiResume/internal/observability"
	"github.com/abdellahzou/HiResume/internal/rendering"
	"github.com/abdellahzou/HiResume/internal/sections"
	"github.com/abdellahzou/HiResume/internal/types"
)

// ErrNoPrinter is returned for PDF exports when no print pipeline is configured.
var ErrNoPrinter = errors.New("pdf export requires a browser")

// Printer prints a standalone HTML page to PDF.
type Printer interface {
	PrintPDF(ctx context.Context, html []byte) ([]byte, error)
}

// MeasurerFactory returns the measurer used to fit one layout tree.
type MeasurerFactory func(tree *layout.Node, opts layout.HTMLOptions) autofit.Measurer

// EstimateMeasurer measures with autofit.Estimator.
func EstimateMeasurer(tree *layout.Node, _ layout.HTMLOptions) autofit.Measurer {
	return autofit.NewEstimator(tree)
}

// Exporter compiles documents to every output format.
type Exporter struct {
	fitter  *autofit.Fitter
	measure MeasurerFactory
	printer Printer
	tex     *template.Template
	log     zerolog.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithFitter sets the auto-fit loop.
func WithFitter(f *autofit.Fitter) Option {
	return func(e *Exporter) { e.fitter = f }
}

// WithMeasurer sets how rendered pages are measured. nil disables fitting.
func WithMeasurer(m MeasurerFactory) Option {
	return func(e *Exporter) { e.measure = m }
}

// WithPrinter enables PDF export.
func WithPrinter(p Printer) Option {
	return func(e *Exporter) { e.printer = p }
}

// WithTeXTemplate replaces the built-in LaTeX families with a template from
// rendering.ParseTemplateFile.
func WithTeXTemplate(t *template.Template) Option {
	return func(e *Exporter) { e.tex = t }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Exporter) { e.log = l }
}

// New returns an exporter fitting with the estimator and without PDF support.
func New(opts ...Option) *Exporter {
	e := &Exporter{
		measure: EstimateMeasurer,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.fitter == nil {
		e.fitter = autofit.NewFitter(autofit.DefaultOptions(), e.log)
	}
	return e
}

// Fitter returns the auto-fit loop used by Render.
func (e *Exporter) Fitter() *autofit.Fitter {
	return e.fitter
}

// CanPrint reports whether PDF export is available.
func (e *Exporter) CanPrint() bool {
	return e.printer != nil
}

// snapshot is the normalized, format-independent view shared by every format of one export.
type snapshot struct {
	id     types.TemplateID
	locale i18n.Locale
	set    sections.Set
}

func prepare(doc types.ResumeDocument, locale i18n.Locale) (*snapshot, error) {
	if !doc.TemplateID.Valid() {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownTemplate, string(doc.TemplateID))
	}
	labels, err := i18n.For(locale)
	if err != nil {
		return nil, err
	}
	return &snapshot{
		id:     doc.TemplateID,
		locale: locale,
		set:    sections.Build(chronology.Normalize(doc), labels),
	}, nil
}

// Export compiles doc to one format.
func (e *Exporter) Export(ctx context.Context, doc types.ResumeDocument, locale i18n.Locale, f Format) (Artifact, error) {
	snap, err := prepare(doc, locale)
	if err != nil {
		return Artifact{}, err
	}
	return e.export(ctx, snap, f)
}

// Bundle compiles doc to several formats concurrently from one snapshot.
// Artifacts come back in the requested order; duplicates are dropped.
func (e *Exporter) Bundle(ctx context.Context, doc types.ResumeDocument, locale i18n.Locale, formats ...Format) ([]Artifact, error) {
	snap, err := prepare(doc, locale)
	if err != nil {
		return nil, err
	}
	if len(formats) == 0 {
		formats = Formats()
		if !e.CanPrint() {
			formats = []Format{FormatTeX, FormatDOCX, FormatHTML}
		}
	}

	seen := make(map[Format]bool, len(formats))
	unique := formats[:0:0]
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			unique = append(unique, f)
		}
	}

	out := make([]Artifact, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range unique {
		g.Go(func() error {
			a, err := e.export(gctx, snap, f)
			if err != nil {
				return err
			}
			out[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Exporter) export(ctx context.Context, snap *snapshot, f Format) (a Artifact, err error) {
	start := time.Now()
	defer func() {
		observability.ObserveExport(string(f), time.Since(start), err)
		if err != nil && ctx.Err() == nil {
			e.log.Error().Err(err).
				Str("format", string(f)).
				Str("template", string(snap.id)).
				Msg("export failed")
		}
	}()

	switch f {
	case FormatTeX:
		var src string
		if e.tex != nil {
			src, err = rendering.CompileWith(e.tex, snap.id, snap.set)
		} else {
			src, err = rendering.CompileSet(snap.id, snap.set)
		}
		if err != nil {
			return Artifact{}, err
		}
		return newArtifact(f, []byte(src)), nil
	case FormatDOCX:
		data, err := docx.CompileSet(snap.id, snap.set)
		if err != nil {
			return Artifact{}, err
		}
		return newArtifact(f, data), nil
	case FormatHTML:
		page, err := e.render(ctx, snap, nil, 0)
		if err != nil {
			return Artifact{}, err
		}
		return newArtifact(f, page.HTML), nil
	case FormatPDF:
		if e.printer == nil {
			return Artifact{}, ErrNoPrinter
		}
		page, err := e.render(ctx, snap, nil, 0)
		if err != nil {
			return Artifact{}, err
		}
		data, err := e.printer.PrintPDF(ctx, page.HTML)
		if err != nil {
			return Artifact{}, fmt.Errorf("failed to print pdf: %w", err)
		}
		return newArtifact(f, data), nil
	}
	return Artifact{}, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}
