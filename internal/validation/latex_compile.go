package validation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// CompilationTimeout is the maximum time to wait for LaTeX compilation
	CompilationTimeout = 30 * time.Second
)

// ErrNoLaTeX is returned when pdflatex is not installed.
var ErrNoLaTeX = errors.New("pdflatex not found in PATH")

// Available reports whether pdflatex can be run.
func Available() bool {
	_, err := exec.LookPath("pdflatex")
	return err == nil
}

// CompileLaTeX compiles a LaTeX file using pdflatex. An empty workDir means a
// fresh temporary directory, which CleanupCompilationArtifacts removes.
func CompileLaTeX(ctx context.Context, texPath string, workDir string) (pdfPath string, logOutput string, err error) {
	if !Available() {
		return "", "", &CompilationError{
			Message: "install a LaTeX distribution (e.g., TeX Live, MiKTeX)",
			Cause:   ErrNoLaTeX,
		}
	}

	if workDir == "" {
		workDir, err = os.MkdirTemp("", "latex-compile-*")
		if err != nil {
			return "", "", &CompilationError{
				Message: "failed to create temporary working directory",
				Cause:   err,
			}
		}
	} else if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", "", &CompilationError{
			Message: fmt.Sprintf("failed to create working directory: %s", workDir),
			Cause:   err,
		}
	}

	texBaseName := filepath.Base(texPath)
	workTexPath := filepath.Join(workDir, texBaseName)
	if filepath.Clean(texPath) != workTexPath {
		texContent, err := os.ReadFile(texPath)
		if err != nil {
			return "", "", &FileReadError{
				Message: fmt.Sprintf("failed to read LaTeX file: %s", texPath),
				Cause:   err,
			}
		}
		if err := os.WriteFile(workTexPath, texContent, 0o644); err != nil {
			return "", "", &CompilationError{
				Message: fmt.Sprintf("failed to write LaTeX file to working directory: %s", workDir),
				Cause:   err,
			}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, CompilationTimeout)
	defer cancel()

	// nonstopmode never waits for input on errors
	cmd := exec.CommandContext(ctx, "pdflatex", "-interaction=nonstopmode", "-halt-on-error",
		"-output-directory", workDir, workTexPath)
	cmd.Dir = workDir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()
	logOutput = stdout.String() + stderr.String()

	pdfPath = filepath.Join(workDir, strings.TrimSuffix(texBaseName, ".tex")+".pdf")
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		return "", logOutput, &CompilationError{
			Message:   "LaTeX compilation failed: PDF was not generated",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	// LaTeX can produce a PDF despite errors
	if runErr != nil {
		return pdfPath, logOutput, &CompilationError{
			Message:   "LaTeX compilation completed with errors (PDF may be incomplete)",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	return pdfPath, logOutput, nil
}

// CleanupCompilationArtifacts removes temporary files created during compilation
func CleanupCompilationArtifacts(workDir string) error {
	if workDir == "" {
		return nil
	}

	if strings.Contains(filepath.Base(workDir), "latex-compile-") {
		return os.RemoveAll(workDir)
	}

	matches, err := filepath.Glob(filepath.Join(workDir, "*"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		switch filepath.Ext(m) {
		case ".aux", ".log", ".out", ".toc", ".lof", ".lot":
			_ = os.Remove(m)
		}
	}
	return nil
}
