package autofit

import (
	"context"
	"math"
	"unicode/utf8"

	"github.com/abdellahzou/HiResume/internal/layout"
)

// Average glyph advance as a fraction of the font size.
const (
	sansAdvance  = 0.5
	serifAdvance = 0.52
)

const defaultLineHeight = 1.45

// Estimator measures a layout tree without a browser, from average glyph widths
// and line heights. It is deterministic and monotonic in both parameters.
type Estimator struct {
	root  *layout.Node
	width float64
}

// NewEstimator returns an estimator for the tree on an A4-wide page.
func NewEstimator(root *layout.Node) *Estimator {
	return &Estimator{root: root, width: layout.PageWidth}
}

// Measure implements Measurer.
func (e *Estimator) Measure(ctx context.Context, p FitParams) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if e.root == nil {
		return 0, nil
	}
	m := metrics{p: p}
	return m.height(e.root, e.width, inherited{family: layout.Sans, size: 13, lineHeight: defaultLineHeight}), nil
}

type inherited struct {
	family     layout.Family
	size       float64
	lineHeight float64
}

func (in inherited) with(s layout.Style) inherited {
	if s.Family != "" {
		in.family = s.Family
	}
	if s.Size > 0 {
		in.size = s.Size
	}
	if s.LineHeight > 0 {
		in.lineHeight = s.LineHeight
	}
	return in
}

type metrics struct {
	p FitParams
}

func (m metrics) gap(n *layout.Node) float64 {
	return n.Gap * m.p.Scale * m.p.Spacing
}

func (m metrics) textWidth(n *layout.Node, in inherited) float64 {
	adv := sansAdvance
	if in.family == layout.Serif {
		adv = serifAdvance
	}
	if n.Style.Bold {
		adv *= 1.06
	}
	if n.Style.Upper {
		adv *= 1.18
	}
	return float64(utf8.RuneCountInString(n.Text)) * in.size * m.p.Scale * adv
}

func (m metrics) lineHeight(in inherited) float64 {
	return in.size * m.p.Scale * in.lineHeight
}

func (m metrics) height(n *layout.Node, width float64, in inherited) float64 {
	in = in.with(n.Style)
	inner := math.Max(width-2*n.Pad, 1)
	var h float64

	switch n.Kind {
	case layout.KindRule:
		return math.Max(n.Style.Size, 1)
	case layout.KindName, layout.KindHeading, layout.KindText, layout.KindLink, layout.KindChip:
		h = m.textHeight(n, inner, in)
	case layout.KindBullet:
		h = m.textHeight(n, inner-16, in)
	case layout.KindRow:
		h = m.rowHeight(n, inner, in)
	case layout.KindChips:
		h = m.chipsHeight(n, inner, in)
	default:
		for _, c := range n.Children {
			h += m.gap(c) + m.height(c, inner, in)
		}
	}
	if n.Style.Border {
		h += 5
	}
	return h + 2*n.Pad
}

func (m metrics) textHeight(n *layout.Node, width float64, in inherited) float64 {
	lines := math.Max(1, math.Ceil(m.textWidth(n, in)/math.Max(width, 1)))
	return lines * m.lineHeight(in)
}

func (m metrics) rowHeight(n *layout.Node, width float64, in inherited) float64 {
	var shared int
	var claimed float64
	for _, c := range n.Children {
		if c.Width > 0 {
			claimed += c.Width
		} else {
			shared++
		}
	}
	rest := math.Max(1-claimed, 0)
	var h float64
	for _, c := range n.Children {
		share := c.Width
		if share <= 0 {
			share = rest / float64(shared)
		}
		h = math.Max(h, m.gap(c)+m.height(c, width*share, in))
	}
	return h
}

func (m metrics) chipsHeight(n *layout.Node, width float64, in inherited) float64 {
	const chipGap = 6
	if len(n.Children) == 0 {
		return 0
	}
	lines := 1.0
	x := 0.0
	var lineH float64
	for _, c := range n.Children {
		cin := in.with(c.Style)
		w := m.textWidth(c, cin) + 2*c.Pad
		if x > 0 && x+chipGap+w > width {
			lines++
			x = 0
		}
		if x > 0 {
			x += chipGap
		}
		x += w
		lineH = math.Max(lineH, m.lineHeight(cin)+2*c.Pad)
	}
	return lines*lineH + (lines-1)*chipGap
}
