package docx

import (
	"strings"

	"github.com/abdellahzou/HiResume/internal/chronology"
	"github.com/abdellahzou/HiResume/internal/i18n"
	"github.com/abdellahzou/HiResume/internal/sections"
	"github.com/abdellahzou/HiResume/internal/types"
)

const (
	separator    = " | "
	bullet       = "• "
	bulletIndent = 284
	datesGap     = "   "
)

// Compile normalizes doc and packages it as a .docx file.
func Compile(doc types.ResumeDocument, locale i18n.Locale) ([]byte, error) {
	labels, err := i18n.For(locale)
	if err != nil {
		return nil, err
	}
	return CompileSet(doc.TemplateID, sections.Build(chronology.Normalize(doc), labels))
}

// CompileSet packages already built sections. Sidebar templates become a
// two-cell table; every other template flows in one column.
func CompileSet(id types.TemplateID, set sections.Set) ([]byte, error) {
	plan, err := sections.DocumentPlan(id)
	if err != nil {
		return nil, err
	}
	style := StyleFor(id)

	var doc body
	if plan.TwoColumn() {
		var side, main body
		for _, sec := range set.Ordered(plan.Sidebar) {
			writeSection(&side, style, sec)
		}
		writeHeader(&main, style, set.Header, false)
		for _, sec := range set.Ordered(plan.Main) {
			writeSection(&main, style, sec)
		}
		doc.table(
			[]int{sidebarTwip, textWidth - sidebarTwip},
			[]string{style.SidebarFill, ""},
			[]*body{&side, &main},
		)
	} else {
		writeHeader(&doc, style, set.Header, true)
		for _, sec := range set.Ordered(plan.Main) {
			writeSection(&doc, style, sec)
		}
	}
	// a table may not be the last block before sectPr
	doc.paragraph(paragraph{})

	return pack([]part{
		{name: "[Content_Types].xml", data: contentTypesXML},
		{name: "_rels/.rels", data: packageRelsXML},
		{name: "word/document.xml", data: documentXML(&doc)},
		{name: "word/styles.xml", data: stylesXML(style)},
		{name: "word/_rels/document.xml.rels", data: documentRelsXML},
	})
}

func writeHeader(w *body, s Style, h sections.Header, withContacts bool) {
	align := ""
	if s.Centered {
		align = "center"
	}
	if h.Name != "" {
		w.paragraph(paragraph{style: "Title", align: align, runs: []run{{text: h.Name}}})
	}
	if h.Title != "" {
		w.paragraph(paragraph{align: align, after: 80, runs: []run{{text: h.Title, size: 26, color: s.Accent}}})
	}
	if withContacts && len(h.Contacts) > 0 {
		values := make([]string, 0, len(h.Contacts))
		for _, c := range h.Contacts {
			values = append(values, c.Value)
		}
		w.paragraph(paragraph{align: align, after: 120, runs: []run{{text: strings.Join(values, separator)}}})
	}
}

func writeSection(w *body, s Style, sec sections.Section) {
	w.paragraph(paragraph{style: "Heading1", border: true, runs: []run{{text: sec.Heading}}})

	switch sec.Kind {
	case sections.Summary:
		for _, p := range sec.Paragraphs {
			w.paragraph(paragraph{runs: []run{{text: p}}})
		}
	case sections.Skills:
		w.paragraph(paragraph{runs: []run{{text: strings.Join(sec.Items, ", ")}}})
	case sections.Contact:
		for _, c := range sec.Contacts {
			w.paragraph(paragraph{runs: []run{{text: c.Value}}})
		}
	default:
		for _, e := range sec.Entries {
			writeEntry(w, s, sec.Kind, e)
		}
	}
}

func writeEntry(w *body, s Style, kind sections.Kind, e sections.Entry) {
	var runs []run
	title := run{bold: true, size: s.EntrySize}

	switch kind {
	case sections.Experience:
		title.text = e.Secondary
		runs = append(runs, title)
		if e.Primary != "" {
			if e.Secondary != "" {
				runs = append(runs, run{text: separator})
			}
			runs = append(runs, run{text: e.Primary, bold: true})
		}
	case sections.Projects:
		title.text = e.Primary
		runs = append(runs, title)
		if e.Link != "" {
			runs = append(runs, run{text: " (" + e.Link + ")", italic: true})
		}
	case sections.Education:
		title.text = e.Primary
		runs = append(runs, title)
	case sections.Certifications:
		title.text = e.Primary
		runs = append(runs, title)
		if e.Secondary != "" {
			runs = append(runs, run{text: separator + e.Secondary})
		}
	default:
		title.text = e.Primary
		runs = append(runs, title)
		if e.Location != "" {
			runs = append(runs, run{text: separator + e.Location})
		}
	}
	if d := e.Dates.Join(" – "); d != "" {
		runs = append(runs, run{text: datesGap + d, italic: true})
	}
	w.paragraph(paragraph{keepNext: true, before: 80, runs: runs})

	if kind == sections.Education && e.Secondary != "" {
		w.paragraph(paragraph{runs: []run{{text: e.Secondary}}})
	}
	for _, line := range e.Lines {
		w.paragraph(paragraph{indent: bulletIndent, runs: []run{{text: bullet + line}}})
	}
}
