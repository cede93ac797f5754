package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdellahzou/HiResume/internal/autofit"
	"github.com/abdellahzou/HiResume/internal/types"
	"github.com/abdellahzou/HiResume/internal/validation"
)

func TestPrintFitResult(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintFitResult(autofit.Result{
		Params:     autofit.FitParams{Scale: 0.667, Spacing: 1},
		Height:     1118,
		Target:     1122,
		Iterations: 3,
		Status:     autofit.StatusConverged,
	})
	output := buf.String()

	assert.Contains(t, output, "AUTO-FIT")
	assert.Contains(t, output, "converged")
	assert.Contains(t, output, "0.667")
	assert.Contains(t, output, "1118 / 1122 px")
}

func TestPrintAtsResult(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAtsResult(&types.AtsResult{
		Score:        67,
		Breakdown:    types.AtsBreakdown{Sections: 12, Keywords: 15, Formatting: 15, Skills: 15, Clarity: 10},
		Strengths:    []string{"Email address found."},
		Improvements: []string{"Add a phone number."},
		Details:      types.AtsDetails{FileType: "pdf", WordCount: 120, MissingSections: []string{"Projects", "Summary"}},
	})
	output := buf.String()

	assert.Contains(t, output, "ATS ANALYSIS")
	assert.Contains(t, output, "Score: 67 / 100")
	assert.Contains(t, output, "Missing: Projects, Summary")
	assert.Contains(t, output, "• Email address found.")
	assert.Contains(t, output, "• Add a phone number.")
}

func TestPrintAtsResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAtsResult(nil)
	assert.Empty(t, buf.String())
}

func TestPrintTeXReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTeXReport(&validation.Report{Compiled: true, Pages: 1, MaxPages: 1})
	assert.Contains(t, buf.String(), "No violations found")

	buf.Reset()
	violations := make([]validation.Violation, 7)
	for i := range violations {
		violations[i] = validation.Violation{Severity: validation.SeverityWarning, Details: "overfull"}
	}
	violations[0] = validation.Violation{Severity: validation.SeverityError, Details: "Resume has 2 pages"}
	p.PrintTeXReport(&validation.Report{Compiled: true, Pages: 2, MaxPages: 1, Violations: violations})

	output := buf.String()
	assert.Contains(t, output, "7 violation(s)")
	assert.Contains(t, output, "✗ Resume has 2 pages")
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintArtifact(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintArtifact("resume.tex", "text/x-tex", 2048)
	assert.Contains(t, buf.String(), "resume.tex")
	assert.Contains(t, buf.String(), "2048 bytes")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("TITLE", strings.Repeat("é", 100))

	output := buf.String()
	assert.Contains(t, output, "...")
	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	for _, line := range strings.Split(strings.TrimSuffix(output, "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)))
	}
}
