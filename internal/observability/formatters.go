// Package observability provides Prometheus metrics and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/abdellahzou/HiResume/internal/autofit"
	"github.com/abdellahzou/HiResume/internal/types"
	"github.com/abdellahzou/HiResume/internal/validation"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if r := []rune(line); len(r) > boxWidth-4 {
			line = string(r[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintFitResult outputs the outcome of an auto-fit run.
func (p *Printer) PrintFitResult(r autofit.Result) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Status:     %s\n", r.Status))
	sb.WriteString(fmt.Sprintf("Scale:      %.3f\n", r.Params.Scale))
	sb.WriteString(fmt.Sprintf("Spacing:    %.3f\n", r.Params.Spacing))
	sb.WriteString(fmt.Sprintf("Height:     %.0f / %.0f px\n", r.Height, r.Target))
	sb.WriteString(fmt.Sprintf("Iterations: %d", r.Iterations))
	p.printBox("AUTO-FIT", sb.String())
}

// PrintAtsResult outputs an ATS score with its breakdown and feedback.
func (p *Printer) PrintAtsResult(r *types.AtsResult) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d / 100  (%s, %d words)\n\n", r.Score, r.Details.FileType, r.Details.WordCount))

	b := r.Breakdown
	sb.WriteString(fmt.Sprintf("  Sections    %5.1f\n", b.Sections))
	sb.WriteString(fmt.Sprintf("  Keywords    %5.1f\n", b.Keywords))
	sb.WriteString(fmt.Sprintf("  Formatting  %5.1f\n", b.Formatting))
	sb.WriteString(fmt.Sprintf("  Skills      %5.1f\n", b.Skills))
	sb.WriteString(fmt.Sprintf("  Contact     %5.1f\n", b.Clarity))

	if len(r.Details.MissingSections) > 0 {
		sb.WriteString(fmt.Sprintf("\nMissing: %s\n", strings.Join(r.Details.MissingSections, ", ")))
	}
	writeList(&sb, "Strengths", r.Strengths)
	writeList(&sb, "Improvements", r.Improvements)

	p.printBox("ATS ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintArtifact outputs one exported file.
func (p *Printer) PrintArtifact(filename, mime string, size int) {
	p.printBox("EXPORT", fmt.Sprintf("File: %s\nType: %s\nSize: %d bytes", filename, mime, size))
}

// PrintTeXReport outputs the outcome of a LaTeX check.
func (p *Printer) PrintTeXReport(r *validation.Report) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Compiled: %t\n", r.Compiled))
	sb.WriteString(fmt.Sprintf("Pages:    %d (max %d)\n", r.Pages, r.MaxPages))

	if len(r.Violations) == 0 {
		sb.WriteString("\n✓ No violations found")
	} else {
		sb.WriteString(fmt.Sprintf("\n%d violation(s):\n", len(r.Violations)))
		count := min(len(r.Violations), maxItemsToShow)
		for i := 0; i < count; i++ {
			v := r.Violations[i]
			icon := "⚠"
			if v.Severity == validation.SeverityError {
				icon = "✗"
			}
			sb.WriteString(fmt.Sprintf("  %s %s\n", icon, v.Details))
		}
		if len(r.Violations) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(r.Violations)-maxItemsToShow))
		}
	}

	p.printBox("LATEX CHECK", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s:\n", title))
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}
