package ats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boundaryText = `Jane Doe
jane@x.com
Experience
Acme Corp, Software Engineer. Led the platform team, built the billing service,
designed the public API, improved latency and delivered the storage migration on time.
Education
BSc Computer Science, State University
Skills
Go, PostgreSQL, Kubernetes`

const completeText = `Jane Doe
jane@x.com | +33 6 12 34 56 78 | linkedin.com/in/janedoe
Summary
Engineer who managed, developed, led, created, implemented, designed, improved,
increased, achieved, launched, built, coordinated, analyzed and delivered things.
Experience
Acme Corp
Projects
Billing engine
Education
State University
Skills
Go, SQL`

func TestAnalyze_BoundaryScenario(t *testing.T) {
	r := Analyze(boundaryText, "resume.pdf")

	assert.InDelta(t, 12, r.Breakdown.Sections, 1e-9)
	assert.InDelta(t, 15, r.Breakdown.Keywords, 1e-9)
	assert.InDelta(t, 15, r.Breakdown.Formatting, 1e-9)
	assert.InDelta(t, 15, r.Breakdown.Skills, 1e-9)
	assert.InDelta(t, 10, r.Breakdown.Clarity, 1e-9)
	assert.Equal(t, 67, r.Score)
	assert.GreaterOrEqual(t, r.Score, 60)
	assert.LessOrEqual(t, r.Score, 75)

	assert.Contains(t, r.Strengths, StrengthSections)
	assert.Contains(t, r.Strengths, StrengthSkills)
	assert.Contains(t, r.Strengths, StrengthKeywords)
	assert.Contains(t, r.Strengths, StrengthEmail)
	assert.Contains(t, r.Improvements, ImprovePhone)
	assert.Contains(t, r.Improvements, ImproveProfile)
	assert.Contains(t, r.Improvements, ImproveContentLength)

	assert.Equal(t, []string{SectionExperience, SectionEducation, SectionSkills}, r.Details.FoundSections)
	assert.Equal(t, []string{SectionProjects, SectionSummary}, r.Details.MissingSections)
	assert.True(t, r.Details.ContactInfoFound)
	assert.Equal(t, "pdf", r.Details.FileType)
}

func TestAnalyze_CompleteDocumentScoresFull(t *testing.T) {
	r := Analyze(completeText, "Resume.DOCX")

	assert.InDelta(t, 20, r.Breakdown.Sections, 1e-9)
	assert.InDelta(t, 30, r.Breakdown.Keywords, 1e-9)
	assert.InDelta(t, 20, r.Breakdown.Clarity, 1e-9)
	assert.Equal(t, 100, r.Score)
	assert.Equal(t, "docx", r.Details.FileType)
	assert.Empty(t, r.Details.MissingSections)
	assert.Equal(t, []string{ImproveContentLength}, r.Improvements)
}

func TestAnalyze_Deterministic(t *testing.T) {
	assert.Equal(t, Analyze(boundaryText, "a.pdf"), Analyze(boundaryText, "a.pdf"))
}

func TestAnalyze_ShortText(t *testing.T) {
	r := Analyze("hello world", "a.pdf")

	assert.Zero(t, r.Breakdown.Formatting)
	assert.InDelta(t, 5, r.Breakdown.Skills, 1e-9)
	assert.Equal(t, 5, r.Score)
	assert.False(t, r.Details.ContactInfoFound)
	assert.Contains(t, r.Improvements, ImproveFormatting)
	assert.Contains(t, r.Improvements, ImproveSkills)
	assert.NotNil(t, r.Strengths)
	assert.Empty(t, r.Strengths)
}

func TestAnalyze_LongTextIsNotFlaggedShort(t *testing.T) {
	text := boundaryText + "\n" + strings.Repeat("word ", 500)
	r := Analyze(text, "a.pdf")
	assert.NotContains(t, r.Improvements, ImproveContentLength)
}

func TestDetect_KeywordsArePresenceNotFrequency(t *testing.T) {
	s := Detect("led led led built built")
	assert.Equal(t, []string{"led", "built"}, s.Keywords)

	// word boundaries
	s = Detect("misled rebuilt")
	assert.Empty(t, s.Keywords)
}

func TestDetect_Phone(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"+33 6 12 34 56 78", true},
		{"(555) 123-4567", true},
		{"+1-202-555-0143", true},
		{"555.123.4567", true},
		{"2020-01-15", false},
		{"2014 - 2018", false},
		{"call me", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.text).Phone)
		})
	}
}

func TestDetect_ContactPatterns(t *testing.T) {
	s := Detect("Reach me at Jane.Doe+cv@Example.co.uk or www.linkedin.com/in/jane-doe")
	assert.True(t, s.Email)
	assert.True(t, s.Profile)

	s = Detect("jane at example dot com, linkedin.com/company/acme")
	assert.False(t, s.Email)
	assert.False(t, s.Profile)
}

func TestDetect_LocalizedHeadings(t *testing.T) {
	s := Detect("Expérience\nFormation\nCompétences\nProjets\nProfil")
	assert.Len(t, s.Sections, 5)
}

func TestAnalyzer_CustomWeights(t *testing.T) {
	w := DefaultWeights()
	w.KeywordsMax, w.SectionsMax = 25, 25
	a, err := NewAnalyzer(w)
	require.NoError(t, err)

	r := a.Analyze(boundaryText, "a.pdf")
	assert.InDelta(t, 15, r.Breakdown.Sections, 1e-9)
	assert.InDelta(t, 12.5, r.Breakdown.Keywords, 1e-9)
	assert.Equal(t, w, a.Weights())
}

func TestWeights_Validate(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())
	assert.InDelta(t, 100, DefaultWeights().Max(), 1e-9)

	tests := []struct {
		name   string
		mutate func(*Weights)
	}{
		{"sum not 100", func(w *Weights) { w.KeywordsMax = 40 }},
		{"negative", func(w *Weights) { w.PhonePoints = -5; w.ProfilePoints = 15 }},
		{"zero keyword target", func(w *Weights) { w.KeywordTarget = 0 }},
		{"absent above present", func(w *Weights) { w.SkillsAbsent = 20 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWeights()
			tt.mutate(&w)
			assert.Error(t, w.Validate())
			_, err := NewAnalyzer(w)
			assert.Error(t, err)
		})
	}
}

func TestWeights_Fingerprint(t *testing.T) {
	a := DefaultWeights()
	b := DefaultWeights()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	b.MinWords = 400
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
