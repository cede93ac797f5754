package validation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Options bound a check.
type Options struct {
	MaxPages        int
	MaxCharsPerLine int
	// OverfullTolerance ignores overfull boxes up to this many points.
	OverfullTolerance float64
}

// DefaultOptions checks for a single page.
func DefaultOptions() Options {
	return Options{MaxPages: 1, MaxCharsPerLine: 160, OverfullTolerance: 1}
}

// Report is the outcome of CheckTeX.
type Report struct {
	Compiled   bool        `json:"compiled"`
	Pages      int         `json:"pages"`
	MaxPages   int         `json:"max_pages"`
	Violations []Violation `json:"violations"`
}

// FitsPageLimit reports whether the PDF was produced and has at most MaxPages pages.
func (r *Report) FitsPageLimit() bool {
	return r.Compiled && r.Pages > 0 && r.Pages <= r.MaxPages
}

// HasErrors reports whether any violation is an error.
func (r *Report) HasErrors() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

// CheckTeXContent writes source to a temporary file and checks it.
func CheckTeXContent(ctx context.Context, source string, opts Options) (*Report, error) {
	tmpDir, err := os.MkdirTemp("", "resume-validation-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	texPath := filepath.Join(tmpDir, "resume.tex")
	if err := os.WriteFile(texPath, []byte(source), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write temp LaTeX file: %w", err)
	}
	return CheckTeX(ctx, texPath, opts)
}

// CheckTeX compiles texPath in a scratch directory, counts the pages and
// collects line-length and overfull-box warnings. A missing pdflatex is
// returned as ErrNoLaTeX; other compilation failures become violations.
func CheckTeX(ctx context.Context, texPath string, opts Options) (*Report, error) {
	if opts.MaxPages < 1 {
		opts.MaxPages = 1
	}
	report := &Report{MaxPages: opts.MaxPages, Violations: []Violation{}}

	source, err := os.ReadFile(texPath)
	if err != nil {
		return nil, &FileReadError{Message: fmt.Sprintf("failed to read LaTeX file: %s", texPath), Cause: err}
	}
	if opts.MaxCharsPerLine > 0 {
		lines, err := ValidateLineLengths(strings.NewReader(string(source)), opts.MaxCharsPerLine)
		if err != nil {
			return nil, fmt.Errorf("failed to validate line lengths: %w", err)
		}
		report.Violations = append(report.Violations, lines...)
	}

	pdfPath, logOutput, err := CompileLaTeX(ctx, texPath, "")
	if pdfPath != "" {
		defer func() { _ = CleanupCompilationArtifacts(filepath.Dir(pdfPath)) }()
	}
	if err != nil {
		if errors.Is(err, ErrNoLaTeX) {
			return nil, err
		}
		var compErr *CompilationError
		if !errors.As(err, &compErr) {
			return nil, fmt.Errorf("failed to compile LaTeX: %w", err)
		}
		report.Violations = append(report.Violations, Violation{
			Type:     ViolationLaTeXError,
			Severity: SeverityError,
			Details:  compErr.Message,
		})
		if pdfPath == "" {
			return report, nil
		}
	}
	report.Compiled = true
	report.Violations = append(report.Violations, ParseOverfullBoxes(logOutput, opts.OverfullTolerance)...)

	pages, err := CountPDFPages(pdfPath)
	if err != nil {
		report.Violations = append(report.Violations, Violation{
			Type:     ViolationPageOverflow,
			Severity: SeverityWarning,
			Details:  fmt.Sprintf("Could not determine page count: %v", err),
		})
		return report, nil
	}
	report.Pages = pages
	if pages > opts.MaxPages {
		report.Violations = append(report.Violations, Violation{
			Type:     ViolationPageOverflow,
			Severity: SeverityError,
			Details:  fmt.Sprintf("Resume has %d pages, maximum allowed is %d", pages, opts.MaxPages),
		})
	}
	return report, nil
}
