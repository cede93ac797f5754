package rendering

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"sync"
	"text/template"

	"github.com/abdellahzou/HiResume/internal/chronology"
	"github.com/abdellahzou/HiResume/internal/i18n"
	"github.com/abdellahzou/HiResume/internal/sections"
	"github.com/abdellahzou/HiResume/internal/types"
)

//go:embed templates/*.tex.tmpl
var templateFS embed.FS

// Delimiters that never occur in LaTeX brace groups.
const (
	leftDelim  = "<<"
	rightDelim = ">>"
)

// Family is a group of visual templates sharing one LaTeX layout.
type Family string

// Template families.
const (
	FamilyModern  Family = "modern"
	FamilyClassic Family = "classic"
	FamilySidebar Family = "sidebar"
)

// FamilyOf maps a template to its LaTeX family.
func FamilyOf(id types.TemplateID) (Family, error) {
	switch id {
	case types.TemplateModern, types.TemplateCreative:
		return FamilyModern, nil
	case types.TemplateClassic, types.TemplateExecutive:
		return FamilyClassic, nil
	case types.TemplateProfessional, types.TemplateMinimal:
		return FamilySidebar, nil
	default:
		return "", fmt.Errorf("%w: %q", types.ErrUnknownTemplate, string(id))
	}
}

// TemplateData is the data passed to a family template. Every string is already escaped.
type TemplateData struct {
	Serif       bool
	Margin      string
	TopRule     bool
	Name        string
	Title       string
	ContactLine string
	Sidebar     []SectionData
	Main        []SectionData
}

// SectionData is one section in template form.
type SectionData struct {
	Kind       string
	Heading    string
	Paragraphs []string
	Items      []string
	Entries    []EntryData
}

// EntryData is one list entry in template form.
type EntryData struct {
	Title    string
	Subtitle string
	Dates    string
	Location string
	Link     string
	LinkText string
	Lines    []string
}

var funcs = template.FuncMap{
	"escape": EscapeLaTeX,
	"join":   strings.Join,
}

var (
	familiesOnce sync.Once
	families     map[Family]*template.Template
	familiesErr  error
)

func loadFamilies() (map[Family]*template.Template, error) {
	familiesOnce.Do(func() {
		families = make(map[Family]*template.Template)
		for _, f := range []Family{FamilyModern, FamilyClassic, FamilySidebar} {
			name := string(f) + ".tex.tmpl"
			tmpl, err := template.New(name).Delims(leftDelim, rightDelim).Funcs(funcs).
				ParseFS(templateFS, "templates/common.tex.tmpl", "templates/"+name)
			if err != nil {
				familiesErr = &TemplateError{Template: name, Message: "failed to parse embedded template", Cause: err}
				return
			}
			families[f] = tmpl
		}
	})
	return families, familiesErr
}

// ParseTemplateFile reads a custom family template from disk. The file may use the
// "preamble" and "section" definitions of the built-in templates.
func ParseTemplateFile(templatePath string) (*template.Template, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{Template: templatePath, Message: "template file not found", Cause: err}
		}
		return nil, &TemplateError{Template: templatePath, Message: "failed to read template file", Cause: err}
	}

	tmpl, err := template.New("custom").Delims(leftDelim, rightDelim).Funcs(funcs).
		ParseFS(templateFS, "templates/common.tex.tmpl")
	if err == nil {
		tmpl, err = tmpl.New("custom").Parse(string(content))
	}
	if err != nil {
		return nil, &TemplateError{Template: templatePath, Message: "failed to parse template", Cause: err}
	}
	return tmpl, nil
}

// Compile normalizes doc and compiles it to LaTeX source with its own template.
// The output depends only on the document, the template and the locale.
func Compile(doc types.ResumeDocument, locale i18n.Locale) (string, error) {
	labels, err := i18n.For(locale)
	if err != nil {
		return "", err
	}
	return CompileSet(doc.TemplateID, sections.Build(chronology.Normalize(doc), labels))
}

// CompileSet compiles already built sections with the family of template id.
func CompileSet(id types.TemplateID, set sections.Set) (string, error) {
	family, err := FamilyOf(id)
	if err != nil {
		return "", err
	}
	all, err := loadFamilies()
	if err != nil {
		return "", err
	}
	return execute(all[family], string(family)+".tex.tmpl", id, set)
}

// CompileWith compiles with a custom template from ParseTemplateFile.
func CompileWith(tmpl *template.Template, id types.TemplateID, set sections.Set) (string, error) {
	if tmpl == nil {
		return "", &RenderError{TemplateID: id, Message: "no template"}
	}
	return execute(tmpl, "custom", id, set)
}

func execute(tmpl *template.Template, name string, id types.TemplateID, set sections.Set) (string, error) {
	data, err := buildTemplateData(id, set)
	if err != nil {
		return "", &RenderError{TemplateID: id, Message: "failed to build template data", Cause: err}
	}

	var out strings.Builder
	if err := tmpl.ExecuteTemplate(&out, name, data); err != nil {
		return "", &TemplateError{Template: name, Message: "failed to execute template", Cause: err}
	}
	return out.String(), nil
}

// buildTemplateData escapes every user string and lays the sections out in the template's order
func buildTemplateData(id types.TemplateID, set sections.Set) (*TemplateData, error) {
	plan, err := sections.ScreenPlan(id)
	if err != nil {
		return nil, err
	}

	contacts := make([]string, 0, len(set.Header.Contacts))
	for _, c := range set.Header.Contacts {
		contacts = append(contacts, EscapeLaTeX(c.Value))
	}

	data := &TemplateData{
		Serif:       id.UsesSerif(),
		Margin:      "0.6in",
		TopRule:     id == types.TemplateExecutive,
		Name:        EscapeLaTeX(set.Header.Name),
		Title:       EscapeLaTeX(set.Header.Title),
		ContactLine: strings.Join(contacts, ` \textbar{} `),
		Sidebar:     convertSections(set.Ordered(plan.Sidebar)),
		Main:        convertSections(set.Ordered(plan.Main)),
	}
	if plan.TwoColumn() {
		data.Margin = "0.45in"
	}
	return data, nil
}

func convertSections(in []sections.Section) []SectionData {
	out := make([]SectionData, 0, len(in))
	for _, sec := range in {
		sd := SectionData{
			Kind:       string(sec.Kind),
			Heading:    EscapeLaTeX(sec.Heading),
			Paragraphs: escapeAll(sec.Paragraphs),
			Items:      escapeAll(sec.Items),
		}
		if sec.Kind == sections.Contact {
			for _, c := range sec.Contacts {
				sd.Items = append(sd.Items, EscapeLaTeX(c.Value))
			}
		}
		for _, e := range sec.Entries {
			sd.Entries = append(sd.Entries, convertEntry(sec.Kind, e))
		}
		out = append(out, sd)
	}
	return out
}

func convertEntry(kind sections.Kind, e sections.Entry) EntryData {
	title, sub := e.Primary, e.Secondary
	if kind == sections.Experience {
		title, sub = e.Secondary, e.Primary
		if title == "" {
			title, sub = sub, ""
		}
	}
	ed := EntryData{
		Title:    EscapeLaTeX(title),
		Subtitle: EscapeLaTeX(sub),
		Dates:    EscapeLaTeX(e.Dates.Join(" -- ")),
		Location: EscapeLaTeX(e.Location),
		Lines:    escapeAll(e.Lines),
	}
	if e.Link != "" {
		ed.Link = EscapeURL(e.Link)
		ed.LinkText = EscapeLaTeX(e.Link)
	}
	return ed
}

func escapeAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = EscapeLaTeX(s)
	}
	return out
}
