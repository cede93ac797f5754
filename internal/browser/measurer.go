package browser

import (
	"context"

	"github.com/abdellahzou/HiResume/internal/autofit"
	"github.com/abdellahzou/HiResume/internal/layout"
)

// Measurer measures a layout tree in Chrome. It implements autofit.Measurer.
type Measurer struct {
	browser *Browser
	tree    *layout.Node
	opts    layout.HTMLOptions
}

// Measurer returns a measurer for tree. opts supplies the title and language; the
// fit parameters are set per measurement.
func (b *Browser) Measurer(tree *layout.Node, opts layout.HTMLOptions) *Measurer {
	return &Measurer{browser: b, tree: tree, opts: opts}
}

// Measure implements autofit.Measurer.
func (m *Measurer) Measure(ctx context.Context, p autofit.FitParams) (float64, error) {
	opts := m.opts
	opts.Scale, opts.Spacing = p.Scale, p.Spacing
	html, err := layout.HTML(m.tree, opts)
	if err != nil {
		return 0, err
	}
	return m.browser.ContentHeight(ctx, html)
}

var _ autofit.Measurer = (*Measurer)(nil)
