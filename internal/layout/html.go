package layout

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
)

// ContentID is the id of the element whose height the auto-fit loop measures.
const ContentID = "resume-content"

// HTMLOptions controls the emitted document.
type HTMLOptions struct {
	// Scale shrinks fonts and gaps; Spacing stretches gaps only. Zero means 1.
	Scale   float64
	Spacing float64
	Title   string
	Lang    string
}

const baseCSS = `*{box-sizing:border-box}
html,body{margin:0;padding:0;background:#ffffff}
.a4-page{width:794px;min-height:1122px;margin:0 auto;background:#ffffff;overflow:hidden}
#resume-content{width:794px}
h1,h2,p,ul{margin:0;padding:0}
ul{list-style:disc inside}
a{text-decoration:none}
.columns{display:flex;align-items:stretch}
.entry-head{display:flex;justify-content:space-between;align-items:baseline;gap:12px}
.entry-head .dates{white-space:nowrap}
.skills{display:flex;flex-wrap:wrap;gap:6px}
.skill{display:inline-block;border-radius:9999px}
@media print{.a4-page{margin:0;box-shadow:none}@page{size:A4;margin:0}}
`

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"style": nodeStyle,
}).Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body>
<div class="a4-page"><div id="{{.ContentID}}" style="{{.Vars}}">{{template "node" .Root}}</div></div>
</body>
</html>
{{define "node"}}
{{- if eq .Kind "section"}}<section class="{{.Class}}" style="{{style .}}">{{template "children" .}}</section>
{{- else if eq .Kind "header"}}<header class="{{.Class}}" style="{{style .}}">{{template "children" .}}</header>
{{- else if eq .Kind "name"}}<h1 class="{{.Class}}" style="{{style .}}">{{.Text}}</h1>
{{- else if eq .Kind "heading"}}<h2 class="{{.Class}}" style="{{style .}}">{{.Text}}</h2>
{{- else if eq .Kind "text"}}<p class="{{.Class}}" style="{{style .}}">{{.Text}}</p>
{{- else if eq .Kind "chip"}}<span class="{{.Class}}" style="{{style .}}">{{.Text}}</span>
{{- else if eq .Kind "link"}}<a class="{{.Class}}" style="{{style .}}" href="{{.Href}}">{{.Text}}</a>
{{- else if eq .Kind "list"}}<ul class="{{.Class}}" style="{{style .}}">{{template "children" .}}</ul>
{{- else if eq .Kind "bullet"}}<li class="{{.Class}}" style="{{style .}}">{{.Text}}</li>
{{- else if eq .Kind "rule"}}<hr class="{{.Class}}" style="{{style .}}">
{{- else}}<div class="{{.Class}}" style="{{style .}}">{{template "children" .}}</div>
{{- end}}
{{- end}}
{{define "children"}}{{range .Children}}{{template "node" .}}{{end}}{{end}}
`))

type pageData struct {
	Lang      string
	Title     string
	CSS       template.CSS
	ContentID string
	Vars      template.CSS
	Root      *Node
}

// WriteHTML writes a standalone HTML page for the tree.
func WriteHTML(w io.Writer, root *Node, opts HTMLOptions) error {
	if root == nil {
		return fmt.Errorf("layout: nil tree")
	}
	scale, spacing := opts.Scale, opts.Spacing
	if scale <= 0 {
		scale = 1
	}
	if spacing <= 0 {
		spacing = 1
	}
	lang := opts.Lang
	if lang == "" {
		lang = "en"
	}
	data := pageData{
		Lang:      lang,
		Title:     opts.Title,
		CSS:       template.CSS(baseCSS),
		ContentID: ContentID,
		Vars:      template.CSS("--fit-scale:" + num(scale) + ";--fit-spacing:" + num(spacing)),
		Root:      root,
	}
	return pageTemplate.Execute(w, data)
}

// HTML renders the tree to a byte slice.
func HTML(root *Node, opts HTMLOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, root, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var fontStacks = map[Family]string{
	Sans:  `"Helvetica Neue",Helvetica,Arial,sans-serif`,
	Serif: `Georgia,"Times New Roman",Times,serif`,
}

// nodeStyle builds the inline style of a node. Only theme values reach it, never user text.
func nodeStyle(n *Node) template.CSS {
	var b strings.Builder
	s := n.Style
	if n.Kind == KindRule {
		fmt.Fprintf(&b, "height:%spx;border:0;margin:0;background:%s;", num(max(s.Size, 1)), s.Background)
		return template.CSS(b.String())
	}
	if s.Size > 0 {
		fmt.Fprintf(&b, "font-size:calc(var(--fit-scale) * %spx);", num(s.Size))
	}
	if s.LineHeight > 0 {
		fmt.Fprintf(&b, "line-height:%s;", num(s.LineHeight))
	}
	if n.Gap > 0 {
		fmt.Fprintf(&b, "margin-top:calc(var(--fit-scale) * var(--fit-spacing) * %spx);", num(n.Gap))
	}
	if n.Pad > 0 {
		fmt.Fprintf(&b, "padding:%spx;", num(n.Pad))
	}
	if n.Kind == KindColumn && n.Width > 0 {
		fmt.Fprintf(&b, "flex:0 0 %s%%;", num(n.Width*100))
	}
	if s.Family != "" {
		b.WriteString("font-family:" + fontStacks[s.Family] + ";")
	}
	if s.Bold {
		b.WriteString("font-weight:700;")
	}
	if s.Italic {
		b.WriteString("font-style:italic;")
	}
	if s.Upper {
		b.WriteString("text-transform:uppercase;letter-spacing:0.05em;")
	}
	if s.Align != "" {
		b.WriteString("text-align:" + s.Align + ";")
	}
	if s.Color != "" {
		b.WriteString("color:" + s.Color + ";")
	}
	if s.Background != "" {
		b.WriteString("background:" + s.Background + ";")
	}
	if s.Border {
		b.WriteString("border-bottom:1px solid currentColor;padding-bottom:4px;")
	}
	return template.CSS(b.String())
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
