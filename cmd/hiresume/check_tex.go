package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdellahzou/HiResume/internal/export"
	"github.com/abdellahzou/HiResume/internal/observability"
	"github.com/abdellahzou/HiResume/internal/schemas"
	"github.com/abdellahzou/HiResume/internal/validation"
)

var checkTeXCmd = &cobra.Command{
	Use:   "check-tex <resume.tex|resume.json>",
	Short: "Compile a LaTeX resume and check its page budget",
	Long: `Compiles a LaTeX file with pdflatex, counts the pages and reports long lines and overfull boxes.
A ResumeDocument JSON is exported to LaTeX first. Requires pdflatex in PATH.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckTeX,
}

var (
	checkTeXMaxPages int
	checkTeXMaxChars int
)

func init() {
	checkTeXCmd.Flags().IntVar(&checkTeXMaxPages, "max-pages", 1, "Maximum page count")
	checkTeXCmd.Flags().IntVar(&checkTeXMaxChars, "max-chars", validation.DefaultOptions().MaxCharsPerLine, "Maximum characters per source line (0 disables)")
	rootCmd.AddCommand(checkTeXCmd)
}

func runCheckTeX(cmd *cobra.Command, args []string) error {
	opts := validation.DefaultOptions()
	opts.MaxPages = checkTeXMaxPages
	opts.MaxCharsPerLine = checkTeXMaxChars

	var (
		report *validation.Report
		err    error
	)
	if filepath.Ext(args[0]) == ".json" {
		report, err = checkDocument(cmd, args[0], opts)
	} else {
		report, err = validation.CheckTeX(cmd.Context(), args[0], opts)
	}
	if err != nil {
		if errors.Is(err, validation.ErrNoLaTeX) {
			return fmt.Errorf("check-tex needs a LaTeX installation: %w", err)
		}
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintTeXReport(report)
	if report.HasErrors() || !report.FitsPageLimit() {
		return fmt.Errorf("%s does not fit in %d page(s)", args[0], report.MaxPages)
	}
	return nil
}

func checkDocument(cmd *cobra.Command, path string, opts validation.Options) (*validation.Report, error) {
	loc, err := locale()
	if err != nil {
		return nil, err
	}
	doc, err := schemas.LoadResume(path)
	if err != nil {
		return nil, err
	}
	a, err := export.New(export.WithLogger(log), export.WithMeasurer(nil)).Export(cmd.Context(), doc, loc, export.FormatTeX)
	if err != nil {
		return nil, err
	}
	return validation.CheckTeXContent(cmd.Context(), string(a.Data), opts)
}
