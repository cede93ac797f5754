package layout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdellahzou/HiResume/internal/i18n"
	"github.com/abdellahzou/HiResume/internal/types"
)

func fullDocument(id types.TemplateID) types.ResumeDocument {
	return types.ResumeDocument{
		PersonalInfo: types.PersonalInfo{
			FullName: "Jane Doe",
			Title:    "Staff Engineer",
			Email:    "jane@x.com",
			Phone:    "+33 6 12 34 56 78",
			Summary:  "Builds reliable systems.",
		},
		Experience: []types.Experience{
			{ID: "e1", Company: "Acme", Position: "Engineer", StartDate: "2020-01", EndDate: "2099-01", Current: true, Description: "Led migration\nImproved latency"},
			{ID: "e2", Company: "Globex", Position: "Intern", StartDate: "2018-01", EndDate: "2019-06"},
		},
		Projects:           []types.Project{{ID: "p1", Name: "100% A&B_C", Link: "https://example.com"}},
		Education:          []types.Education{{ID: "ed1", School: "MIT", Degree: "BSc", StartDate: "2014", EndDate: "2018"}},
		Certifications:     []types.Certification{{ID: "c1", Name: "CKA", Issuer: "CNCF", Date: "2022"}},
		Skills:             []types.Skill{{ID: "s1", Name: "Go", Level: 5}, {ID: "s2", Name: "SQL", Level: 3}},
		CustomItems:        []types.CustomItem{{ID: "x1", Name: "Volunteer", City: "Lyon", StartDate: "2017"}},
		CustomSectionTitle: "Volunteering",
		TemplateID:         id,
	}
}

func render(t *testing.T, doc types.ResumeDocument, locale i18n.Locale) *goquery.Document {
	t.Helper()
	tree, err := Render(doc, locale)
	require.NoError(t, err)
	out, err := HTML(tree, HTMLOptions{Lang: string(locale)})
	require.NoError(t, err)
	page, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	require.NoError(t, err)
	return page
}

func headings(page *goquery.Document) []string {
	var out []string
	page.Find("h2.heading").Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Text())
	})
	return out
}

func TestRender_EveryTemplateIncludesEverySection(t *testing.T) {
	for _, id := range types.AllTemplates() {
		t.Run(string(id), func(t *testing.T) {
			page := render(t, fullDocument(id), i18n.English)
			got := headings(page)
			for _, want := range []string{"Summary", "Experience", "Projects", "Education", "Certifications", "Skills", "Volunteering"} {
				assert.Contains(t, got, want)
			}
			assert.Equal(t, 1, page.Find("h1.name").Length())
		})
	}
}

func TestRender_EmptyProjectsOmitted(t *testing.T) {
	for _, id := range types.AllTemplates() {
		t.Run(string(id), func(t *testing.T) {
			doc := fullDocument(id)
			doc.Projects = nil
			page := render(t, doc, i18n.English)
			assert.NotContains(t, headings(page), "Projects")
			assert.Equal(t, 0, page.Find(".section-projects").Length())
		})
	}
}

func TestRender_PresentToken(t *testing.T) {
	for _, id := range types.AllTemplates() {
		for _, l := range i18n.All() {
			page := render(t, fullDocument(id), l)
			text := page.Find("#" + ContentID).Text()
			assert.Contains(t, text, i18n.MustFor(l).Present, "%s/%s", id, l)
			assert.NotContains(t, text, "2099", "%s/%s", id, l)
		}
	}
}

func TestRender_SidebarTemplates(t *testing.T) {
	for _, id := range []types.TemplateID{types.TemplateProfessional, types.TemplateMinimal} {
		t.Run(string(id), func(t *testing.T) {
			page := render(t, fullDocument(id), i18n.English)
			side := page.Find(".sidebar")
			main := page.Find(".main")
			require.Equal(t, 1, side.Length())
			require.Equal(t, 1, main.Length())

			for _, k := range []string{"contact", "education", "skills", "certifications"} {
				assert.Equal(t, 1, side.Find(".section-"+k).Length(), k)
			}
			for _, k := range []string{"summary", "experience", "projects", "custom"} {
				assert.Equal(t, 1, main.Find(".section-"+k).Length(), k)
			}
		})
	}
}

func TestRender_SectionOrderIsFixed(t *testing.T) {
	page := render(t, fullDocument(types.TemplateCreative), i18n.English)
	assert.Equal(t,
		[]string{"Summary", "Experience", "Projects", "Skills", "Education", "Certifications", "Volunteering"},
		headings(page))

	doc := fullDocument(types.TemplateCreative)
	doc.Skills = nil
	assert.Equal(t,
		[]string{"Summary", "Experience", "Projects", "Education", "Certifications", "Volunteering"},
		headings(render(t, doc, i18n.English)))
}

func TestRender_TimelineIsNormalized(t *testing.T) {
	doc := fullDocument(types.TemplateModern)
	doc.Experience[0], doc.Experience[1] = doc.Experience[1], doc.Experience[0]
	tree, err := Render(doc, i18n.English)
	require.NoError(t, err)

	titles := tree.Find("entry-title")
	require.NotEmpty(t, titles)
	assert.Equal(t, "Engineer", titles[0].Text)
}

func TestRender_NameFallback(t *testing.T) {
	doc := fullDocument(types.TemplateClassic)
	doc.PersonalInfo.FullName = ""
	doc.PersonalInfo.Title = ""
	page := render(t, doc, i18n.French)
	assert.Equal(t, "Votre nom", page.Find("h1.name").Text())
	assert.Equal(t, "Intitulé du poste", page.Find("p.title").Text())
}

func TestRender_EmptyDocument(t *testing.T) {
	for _, id := range types.AllTemplates() {
		tree, err := Render(types.ResumeDocument{TemplateID: id}, i18n.English)
		require.NoError(t, err)
		assert.Empty(t, tree.Find("heading"), string(id))
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render(types.ResumeDocument{TemplateID: "fancy"}, i18n.English)
	assert.ErrorIs(t, err, types.ErrUnknownTemplate)

	_, err = For("")
	assert.ErrorIs(t, err, types.ErrUnknownTemplate)
}

func TestRender_UnknownLocale(t *testing.T) {
	_, err := Render(fullDocument(types.TemplateModern), "de")
	assert.ErrorIs(t, err, i18n.ErrUnknownLocale)
}

func TestHTML_EscapesUserText(t *testing.T) {
	doc := fullDocument(types.TemplateModern)
	doc.PersonalInfo.FullName = "<script>alert(1)</script>"
	doc.Projects[0].Link = "javascript:alert(1)"
	tree, err := Render(doc, i18n.English)
	require.NoError(t, err)
	out, err := HTML(tree, HTMLOptions{})
	require.NoError(t, err)

	assert.NotContains(t, string(out), "<script>")
	assert.NotContains(t, string(out), `href="javascript:`)
}

func TestHTML_FitVariables(t *testing.T) {
	tree, err := Render(fullDocument(types.TemplateModern), i18n.English)
	require.NoError(t, err)

	out, err := HTML(tree, HTMLOptions{Scale: 0.8, Spacing: 1.25})
	require.NoError(t, err)
	page, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	require.NoError(t, err)

	style, ok := page.Find("#" + ContentID).Attr("style")
	require.True(t, ok)
	assert.Contains(t, style, "--fit-scale:0.8")
	assert.Contains(t, style, "--fit-spacing:1.25")
	assert.True(t, strings.Contains(string(out), "var(--fit-scale)"))

	neutral, err := HTML(tree, HTMLOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(neutral), "--fit-scale:1;--fit-spacing:1")
}

func TestHTML_NilTree(t *testing.T) {
	_, err := HTML(nil, HTMLOptions{})
	assert.Error(t, err)
}

func TestThemes_CoverEveryTemplate(t *testing.T) {
	all := Themes()
	require.Len(t, all, len(types.AllTemplates()))
	for _, th := range all {
		assert.True(t, th.ID().Valid())
		assert.Equal(t, th.ID().UsesSerif(), th.Family == Serif, string(th.ID()))
		assert.Equal(t, th.ID().UsesSidebar(), th.SidebarWidth > 0, string(th.ID()))
	}
}
