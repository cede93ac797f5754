package main

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/abdellahzou/HiResume/internal/export"
	"github.com/abdellahzou/HiResume/internal/observability"
	"github.com/abdellahzou/HiResume/internal/rendering"
	"github.com/abdellahzou/HiResume/internal/schemas"
)

var exportCmd = &cobra.Command{
	Use:   "export <resume.json>",
	Short: "Export a resume to LaTeX, DOCX, PDF or HTML",
	Long:  "Compiles a ResumeDocument to one or more formats. All files of one run come from the same document snapshot; if any format fails nothing is written.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var (
	exportFormats     []string
	exportOutDir      string
	exportTeXTemplate string
)

func init() {
	exportCmd.Flags().StringSliceVarP(&exportFormats, "format", "f", []string{"tex", "docx"}, "Formats to export: tex, docx, pdf, html")
	exportCmd.Flags().StringVarP(&exportOutDir, "out", "o", ".", "Output directory")
	exportCmd.Flags().StringVar(&exportTeXTemplate, "tex-template", "", "Custom LaTeX template file (<< >> delimiters)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	loc, err := locale()
	if err != nil {
		return err
	}
	formats := make([]export.Format, 0, len(exportFormats))
	for _, s := range exportFormats {
		f, err := export.ParseFormat(s)
		if err != nil {
			return err
		}
		formats = append(formats, f)
	}
	doc, err := schemas.LoadResume(args[0])
	if err != nil {
		return err
	}

	var extra []export.Option
	if exportTeXTemplate != "" {
		tmpl, err := rendering.ParseTemplateFile(exportTeXTemplate)
		if err != nil {
			return err
		}
		extra = append(extra, export.WithTeXTemplate(tmpl))
	}

	exp, cleanup, err := newExporter(slices.Contains(formats, export.FormatPDF), extra...)
	if err != nil {
		return err
	}
	defer cleanup()

	artifacts, err := exp.Bundle(cmd.Context(), doc, loc, formats...)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	for _, a := range artifacts {
		path := filepath.Join(exportOutDir, a.Filename)
		if err := writeFile(path, a.Data); err != nil {
			return err
		}
		if verbose {
			printer.PrintArtifact(path, a.MIME, len(a.Data))
			continue
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", path, len(a.Data))
	}
	return nil
}
