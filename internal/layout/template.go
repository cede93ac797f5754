package layout

import (
	"fmt"
	"strings"

	"github.com/abdellahzou/HiResume/internal/chronology"
	"github.com/abdellahzou/HiResume/internal/i18n"
	"github.com/abdellahzou/HiResume/internal/sections"
	"github.com/abdellahzou/HiResume/internal/types"
)

// Page geometry of an A4 sheet in CSS pixels at 96 dpi.
const (
	PageWidth  = 794.0
	PageHeight = 1122.0
)

// Renderer turns the sections of a document into a layout tree.
type Renderer interface {
	ID() types.TemplateID
	Render(set sections.Set) *Node
}

// Theme describes one template. The six templates are values of this type.
type Theme struct {
	Template types.TemplateID
	Family   Family
	Accent   string
	Ink      string
	Muted    string

	PagePad     float64
	HeaderAlign string
	// HeaderBand paints the header with the accent color and white text.
	HeaderBand bool
	NameSize   float64
	TitleSize  float64
	ContactSep string

	HeadingSize  float64
	HeadingRule  bool
	HeadingUpper bool
	HeadingAlign string
	BodySize     float64
	// SkillChips renders skills as chips instead of a comma separated line.
	SkillChips bool
	// DatesInline puts dates on the title row instead of a line of their own.
	DatesInline bool
	// Bullets renders description lines as a bulleted list.
	Bullets bool
	// TopRule draws a thick accent bar above the header.
	TopRule float64

	// Sidebar settings, used by two-column templates only.
	SidebarWidth float64
	SidebarFill  string

	SectionGap float64
	EntryGap   float64
}

// ID implements Renderer.
func (t Theme) ID() types.TemplateID { return t.Template }

// Render implements Renderer.
func (t Theme) Render(set sections.Set) *Node {
	plan, err := sections.ScreenPlan(t.Template)
	if err != nil {
		// themes are only constructed for known templates
		panic(err)
	}

	page := &Node{
		Kind:  KindPage,
		Class: "page template-" + string(t.Template),
		Pad:   t.PagePad,
		Style: Style{Family: t.Family, Color: t.Ink, Size: t.BodySize, LineHeight: 1.45},
	}

	if t.TopRule > 0 {
		page.Add(&Node{Kind: KindRule, Class: "top-rule", Style: Style{Size: t.TopRule, Background: t.Accent}})
	}
	if !plan.TwoColumn() {
		page.Add(t.header(set, true))
		for _, sec := range set.Ordered(plan.Main) {
			page.Add(t.section(sec))
		}
		return page
	}

	side := &Node{
		Kind:  KindColumn,
		Class: "sidebar",
		Width: t.SidebarWidth,
		Pad:   t.PagePad / 2,
		Style: Style{Background: t.SidebarFill},
	}
	main := &Node{Kind: KindColumn, Class: "main", Width: 1 - t.SidebarWidth, Pad: t.PagePad / 2}
	for _, sec := range set.Ordered(plan.Sidebar) {
		side.Add(t.section(sec))
	}
	main.Add(t.header(set, false))
	for _, sec := range set.Ordered(plan.Main) {
		main.Add(t.section(sec))
	}
	page.Pad = 0
	return page.Add((&Node{Kind: KindRow, Class: "columns"}).Add(side, main))
}

func (t Theme) header(set sections.Set, withContacts bool) *Node {
	h := &Node{Kind: KindHeader, Class: "header", Style: Style{Align: t.HeaderAlign, Border: !t.HeaderBand}}
	if t.HeaderBand {
		h.Pad = t.PagePad / 2
		h.Style.Background = t.Accent
		h.Style.Color = "#ffffff"
	}
	h.Add(&Node{
		Kind:  KindName,
		Class: "name",
		Text:  set.DisplayName(),
		Style: Style{Size: t.NameSize, Bold: true, Upper: true, Align: t.HeaderAlign, LineHeight: 1.15},
	})
	h.Add(&Node{
		Kind:  KindText,
		Class: "title",
		Text:  set.DisplayTitle(),
		Gap:   4,
		Style: Style{Size: t.TitleSize, Align: t.HeaderAlign, Color: t.mutedOn(t.HeaderBand)},
	})
	if withContacts && len(set.Header.Contacts) > 0 {
		values := make([]string, 0, len(set.Header.Contacts))
		for _, c := range set.Header.Contacts {
			values = append(values, c.Value)
		}
		h.Add(&Node{
			Kind:  KindText,
			Class: "contacts",
			Text:  strings.Join(values, t.ContactSep),
			Gap:   8,
			Style: Style{Size: t.BodySize - 1, Align: t.HeaderAlign, Color: t.mutedOn(t.HeaderBand)},
		})
	}
	return h
}

func (t Theme) mutedOn(band bool) string {
	if band {
		return "#e2e8f0"
	}
	return t.Muted
}

func (t Theme) section(sec sections.Section) *Node {
	n := &Node{Kind: KindSection, Class: "section section-" + string(sec.Kind), Gap: t.SectionGap}
	n.Add(&Node{
		Kind:  KindHeading,
		Class: "heading",
		Text:  sec.Heading,
		Style: Style{
			Size:   t.HeadingSize,
			Bold:   true,
			Upper:  t.HeadingUpper,
			Align:  t.HeadingAlign,
			Color:  t.Accent,
			Border: t.HeadingRule,
		},
	})

	switch sec.Kind {
	case sections.Summary:
		for i, p := range sec.Paragraphs {
			n.Add(t.text("summary", p, gapIf(i > 0, 4)))
		}
	case sections.Skills:
		n.Add(t.skills(sec.Items))
	case sections.Contact:
		for _, c := range sec.Contacts {
			n.Add(t.text("contact contact-"+c.Field, c.Value, 4))
		}
	default:
		for i, e := range sec.Entries {
			n.Add(t.entry(sec.Kind, e, gapIf(i > 0, t.EntryGap)))
		}
	}
	return n
}

func (t Theme) skills(items []string) *Node {
	if !t.SkillChips {
		return t.text("skill-line", strings.Join(items, ", "), 6)
	}
	chips := &Node{Kind: KindChips, Class: "skills", Gap: 6}
	for _, s := range items {
		chips.Add(&Node{
			Kind:  KindChip,
			Class: "skill",
			Text:  s,
			Pad:   4,
			Style: Style{Size: t.BodySize - 1, Background: "#f1f5f9"},
		})
	}
	return chips
}

func (t Theme) entry(kind sections.Kind, e sections.Entry, gap float64) *Node {
	n := &Node{Kind: KindEntry, Class: "entry entry-" + string(kind), Gap: gap}

	title, sub := e.Primary, e.Secondary
	if kind == sections.Experience && e.Secondary != "" {
		// position leads, company below
		title, sub = e.Secondary, e.Primary
	}
	if kind == sections.Custom && e.Location != "" {
		sub = e.Location
	}

	dates := e.Dates.Join(" – ")
	titleNode := &Node{Kind: KindText, Class: "entry-title", Text: title, Style: Style{Size: t.BodySize + 1, Bold: true}}
	if t.DatesInline && dates != "" {
		n.Add((&Node{Kind: KindRow, Class: "entry-head"}).Add(
			titleNode,
			&Node{Kind: KindText, Class: "dates", Text: dates, Style: Style{Size: t.BodySize - 1, Align: "right", Color: t.Muted}},
		))
	} else {
		n.Add(titleNode)
		if dates != "" {
			n.Add(&Node{Kind: KindText, Class: "dates", Text: dates, Gap: 2, Style: Style{Size: t.BodySize - 1, Color: t.Muted}})
		}
	}
	if sub != "" {
		n.Add(&Node{Kind: KindText, Class: "entry-sub", Text: sub, Gap: 2, Style: Style{Size: t.BodySize, Italic: t.Family == Serif, Color: t.Muted}})
	}
	if e.Link != "" {
		n.Add(&Node{Kind: KindLink, Class: "link", Text: e.Link, Href: e.Link, Gap: 2, Style: Style{Size: t.BodySize - 1, Color: t.Accent}})
	}
	if len(e.Lines) == 0 {
		return n
	}
	if t.Bullets {
		list := &Node{Kind: KindList, Class: "lines", Gap: 4}
		for _, line := range e.Lines {
			list.Add(&Node{Kind: KindBullet, Class: "line", Text: line, Style: Style{Size: t.BodySize}})
		}
		return n.Add(list)
	}
	for i, line := range e.Lines {
		n.Add(t.text("line", line, gapIf(i == 0, 4)))
	}
	return n
}

func (t Theme) text(class, s string, gap float64) *Node {
	return &Node{Kind: KindText, Class: class, Text: s, Gap: gap, Style: Style{Size: t.BodySize}}
}

func gapIf(cond bool, gap float64) float64 {
	if cond {
		return gap
	}
	return 0
}

// For returns the renderer of a template. Unknown ids fail with types.ErrUnknownTemplate.
func For(id types.TemplateID) (Renderer, error) {
	th, ok := themes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownTemplate, string(id))
	}
	return th, nil
}

// Render normalizes doc and renders it with its own template in the given locale.
func Render(doc types.ResumeDocument, locale i18n.Locale) (*Node, error) {
	r, err := For(doc.TemplateID)
	if err != nil {
		return nil, err
	}
	labels, err := i18n.For(locale)
	if err != nil {
		return nil, err
	}
	return r.Render(sections.Build(chronology.Normalize(doc), labels)), nil
}
