package docx

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// run is a span of text with character formatting. Size is in half-points.
type run struct {
	text   string
	bold   bool
	italic bool
	size   int
	color  string
}

// paragraph is a block with paragraph formatting. Spacing values are in twentieths of a point.
type paragraph struct {
	runs     []run
	style    string
	keepNext bool
	border   bool
	before   int
	after    int
	indent   int
	align    string
}

// body accumulates the XML of document.xml's w:body.
type body struct {
	b strings.Builder
}

func attr(v string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(v))
	return sb.String()
}

func (w *body) paragraph(p paragraph) {
	w.b.WriteString("<w:p>")
	w.paragraphProps(p)
	for _, r := range p.runs {
		w.run(r)
	}
	w.b.WriteString("</w:p>")
}

func (w *body) paragraphProps(p paragraph) {
	var props strings.Builder
	if p.style != "" {
		props.WriteString(`<w:pStyle w:val="` + attr(p.style) + `"/>`)
	}
	if p.keepNext {
		props.WriteString(`<w:keepNext/>`)
	}
	if p.border {
		props.WriteString(`<w:pBdr><w:bottom w:val="single" w:sz="6" w:space="1" w:color="auto"/></w:pBdr>`)
	}
	if p.before > 0 || p.after > 0 {
		props.WriteString(`<w:spacing w:before="` + strconv.Itoa(p.before) + `" w:after="` + strconv.Itoa(p.after) + `"/>`)
	}
	if p.indent > 0 {
		props.WriteString(`<w:ind w:left="` + strconv.Itoa(p.indent) + `"/>`)
	}
	if p.align != "" {
		props.WriteString(`<w:jc w:val="` + attr(p.align) + `"/>`)
	}
	if props.Len() > 0 {
		w.b.WriteString("<w:pPr>" + props.String() + "</w:pPr>")
	}
}

func (w *body) run(r run) {
	w.b.WriteString("<w:r>")
	var props strings.Builder
	if r.bold {
		props.WriteString("<w:b/>")
	}
	if r.italic {
		props.WriteString("<w:i/>")
	}
	if r.color != "" {
		props.WriteString(`<w:color w:val="` + attr(r.color) + `"/>`)
	}
	if r.size > 0 {
		props.WriteString(`<w:sz w:val="` + strconv.Itoa(r.size) + `"/>`)
	}
	if props.Len() > 0 {
		w.b.WriteString("<w:rPr>" + props.String() + "</w:rPr>")
	}
	w.b.WriteString(`<w:t xml:space="preserve">`)
	_ = xml.EscapeText(&w.b, []byte(r.text))
	w.b.WriteString("</w:t></w:r>")
}

// table writes a borderless one-row table whose cells hold the given bodies.
// widths are in twips; fills are hex colors or empty.
func (w *body) table(widths []int, fills []string, cells []*body) {
	w.b.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="5000" w:type="pct"/><w:tblBorders>`)
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		w.b.WriteString(`<w:` + side + ` w:val="nil"/>`)
	}
	w.b.WriteString(`</w:tblBorders><w:tblLayout w:type="fixed"/></w:tblPr><w:tblGrid>`)
	for _, width := range widths {
		w.b.WriteString(`<w:gridCol w:w="` + strconv.Itoa(width) + `"/>`)
	}
	w.b.WriteString(`</w:tblGrid><w:tr>`)
	for i, cell := range cells {
		w.b.WriteString(`<w:tc><w:tcPr><w:tcW w:w="` + strconv.Itoa(widths[i]) + `" w:type="dxa"/>`)
		if fills[i] != "" {
			w.b.WriteString(`<w:shd w:val="clear" w:color="auto" w:fill="` + attr(fills[i]) + `"/>`)
		}
		w.b.WriteString(`</w:tcPr>`)
		if cell.b.Len() == 0 {
			// a cell needs at least one paragraph
			cell.paragraph(paragraph{})
		}
		w.b.WriteString(cell.b.String())
		w.b.WriteString(`</w:tc>`)
	}
	w.b.WriteString(`</w:tr></w:tbl>`)
}

func (w *body) String() string {
	return w.b.String()
}
