package rendering

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdellahzou/HiResume/internal/i18n"
	"github.com/abdellahzou/HiResume/internal/sections"
	"github.com/abdellahzou/HiResume/internal/types"
)

func sampleDocument(id types.TemplateID) types.ResumeDocument {
	return types.ResumeDocument{
		PersonalInfo: types.PersonalInfo{
			FullName: "Jane Doe",
			Title:    "Engineer",
			Email:    "jane_doe@x.com",
			Phone:    "+1 555 0100",
			Website:  "https://jane.dev",
			Summary:  "Ships things.",
		},
		Experience: []types.Experience{
			{ID: "e1", Company: "Old Co", Position: "Intern", StartDate: "2015-01", EndDate: "2016-01"},
			{ID: "e2", Company: "Acme & Sons", Position: "Lead", StartDate: "2020-01", EndDate: "2099-01", Current: true, Description: "Led the team\nCut costs by 30%\n\n"},
		},
		Projects:           []types.Project{{ID: "p1", Name: "100% A&B_C", Link: "https://example.com/a#b", Description: "Tooling"}},
		Education:          []types.Education{{ID: "ed1", School: "MIT", Degree: "BSc", StartDate: "2010", EndDate: "2014"}},
		Certifications:     []types.Certification{{ID: "c1", Name: "CKA", Issuer: "CNCF", Date: "2021"}},
		Skills:             []types.Skill{{ID: "s1", Name: "Go", Level: 4}, {ID: "s2", Name: "C#", Level: 2}},
		CustomItems:        []types.CustomItem{{ID: "x1", Name: "Mentor", City: "Lyon", StartDate: "2019"}},
		CustomSectionTitle: "Volunteering",
		TemplateID:         id,
	}
}

// balanced reports whether unescaped braces balance and every environment is closed.
func balanced(src string) bool {
	depth := 0
	runes := []rune(src)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	begins := regexp.MustCompile(`\\begin\{`).FindAllStringIndex(src, -1)
	ends := regexp.MustCompile(`\\end\{`).FindAllStringIndex(src, -1)
	return depth == 0 && len(begins) == len(ends)
}

func TestCompile_EveryTemplate(t *testing.T) {
	for _, id := range types.AllTemplates() {
		t.Run(string(id), func(t *testing.T) {
			src, err := Compile(sampleDocument(id), i18n.English)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(src, `\documentclass`))
			assert.True(t, strings.HasSuffix(strings.TrimSpace(src), `\end{document}`))
			assert.True(t, balanced(src), "unbalanced source:\n%s", src)
			for _, h := range []string{"Summary", "Experience", "Projects", "Education", "Certifications", "Skills", "Volunteering"} {
				assert.Contains(t, src, `\section*{`+h+`}`)
			}
		})
	}
}

func TestCompile_EscapesUserText(t *testing.T) {
	src, err := Compile(sampleDocument(types.TemplateModern), i18n.English)
	require.NoError(t, err)

	assert.Contains(t, src, `100\% A\&B\_C`)
	assert.Contains(t, src, `Acme \& Sons`)
	assert.Contains(t, src, `jane\_doe@x.com`)
	assert.Contains(t, src, `C\#`)
	assert.Contains(t, src, `\href{https://example.com/a\#b}`)
	assert.NotContains(t, src, "100% A")
}

func TestCompile_OmitsEmptySections(t *testing.T) {
	for _, id := range types.AllTemplates() {
		doc := sampleDocument(id)
		doc.Projects = nil
		doc.Certifications = []types.Certification{}
		src, err := Compile(doc, i18n.English)
		require.NoError(t, err)
		assert.NotContains(t, src, `\section*{Projects}`, string(id))
		assert.NotContains(t, src, `\section*{Certifications}`, string(id))
	}
}

func TestCompile_PresentToken(t *testing.T) {
	for _, id := range types.AllTemplates() {
		for _, l := range i18n.All() {
			src, err := Compile(sampleDocument(id), l)
			require.NoError(t, err)
			assert.Contains(t, src, "2020-01 -- "+i18n.MustFor(l).Present)
			assert.NotContains(t, src, "2099")
		}
	}
}

func TestCompile_OneItemPerDescriptionLine(t *testing.T) {
	src, err := Compile(sampleDocument(types.TemplateClassic), i18n.English)
	require.NoError(t, err)

	assert.Contains(t, src, `\item Led the team`)
	assert.Contains(t, src, `\item Cut costs by 30\%`)
	assert.NotContains(t, src, `\item `+"\n")
}

func TestCompile_CurrentEntryFirst(t *testing.T) {
	src, err := Compile(sampleDocument(types.TemplateModern), i18n.English)
	require.NoError(t, err)
	assert.Less(t, strings.Index(src, "Lead"), strings.Index(src, "Intern"))
}

func TestCompile_Deterministic(t *testing.T) {
	for _, id := range types.AllTemplates() {
		a, err := Compile(sampleDocument(id), i18n.French)
		require.NoError(t, err)
		b, err := Compile(sampleDocument(id), i18n.French)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestCompile_FamilyConventions(t *testing.T) {
	modern, err := Compile(sampleDocument(types.TemplateCreative), i18n.English)
	require.NoError(t, err)
	assert.Contains(t, modern, `\sfdefault`)
	assert.NotContains(t, modern, "minipage")

	exec, err := Compile(sampleDocument(types.TemplateExecutive), i18n.English)
	require.NoError(t, err)
	assert.Contains(t, exec, "lmodern")
	assert.Contains(t, exec, `\rule{\textwidth}{4pt}`)

	classic, err := Compile(sampleDocument(types.TemplateClassic), i18n.English)
	require.NoError(t, err)
	assert.NotContains(t, classic, `\rule{\textwidth}{4pt}`)

	side, err := Compile(sampleDocument(types.TemplateProfessional), i18n.English)
	require.NoError(t, err)
	assert.Contains(t, side, `\begin{minipage}[t]{0.31\textwidth}`)
	sidebar := side[strings.Index(side, `\begin{minipage}[t]{0.31`):strings.Index(side, `\end{minipage}`)]
	assert.Contains(t, sidebar, `\section*{Contact}`)
	assert.Contains(t, sidebar, `\section*{Education}`)
	assert.NotContains(t, sidebar, `\section*{Experience}`)
}

func TestCompile_EmptyDocument(t *testing.T) {
	for _, id := range types.AllTemplates() {
		src, err := Compile(types.ResumeDocument{TemplateID: id}, i18n.English)
		require.NoError(t, err)
		assert.NotContains(t, src, `\section*`)
		assert.True(t, balanced(src), string(id))
	}
}

func TestCompile_Errors(t *testing.T) {
	_, err := Compile(sampleDocument("fancy"), i18n.English)
	assert.ErrorIs(t, err, types.ErrUnknownTemplate)

	_, err = Compile(sampleDocument(types.TemplateModern), "xx")
	assert.ErrorIs(t, err, i18n.ErrUnknownLocale)
}

func TestFamilyOf(t *testing.T) {
	tests := []struct {
		id   types.TemplateID
		want Family
	}{
		{types.TemplateModern, FamilyModern},
		{types.TemplateCreative, FamilyModern},
		{types.TemplateClassic, FamilyClassic},
		{types.TemplateExecutive, FamilyClassic},
		{types.TemplateProfessional, FamilySidebar},
		{types.TemplateMinimal, FamilySidebar},
	}
	for _, tt := range tests {
		got, err := FamilyOf(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, string(tt.id))
	}
}

func TestParseTemplateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.tex")
	content := `<<- template "preamble" .>>
\begin{document}
<<.Name>>
<<range .Main>><<template "section" .>><<end>>
\end{document}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tmpl, err := ParseTemplateFile(path)
	require.NoError(t, err)

	doc := sampleDocument(types.TemplateModern)
	set := sections.Build(doc, i18n.MustFor(i18n.English))
	src, err := CompileWith(tmpl, doc.TemplateID, set)
	require.NoError(t, err)
	assert.Contains(t, src, "Jane Doe")
	assert.Contains(t, src, `\section*{Experience}`)
}

func TestParseTemplateFile_Errors(t *testing.T) {
	_, err := ParseTemplateFile("/nonexistent/template.tex")
	var templateErr *TemplateError
	require.ErrorAs(t, err, &templateErr)
	assert.Contains(t, err.Error(), "template file not found")

	path := filepath.Join(t.TempDir(), "bad.tex")
	require.NoError(t, os.WriteFile(path, []byte(`<<.Name`), 0o644))
	_, err = ParseTemplateFile(path)
	assert.ErrorAs(t, err, &templateErr)

	_, err = CompileWith(nil, types.TemplateModern, sections.Set{})
	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}
