package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdellahzou/HiResume/internal/export"
	"github.com/abdellahzou/HiResume/internal/observability"
	"github.com/abdellahzou/HiResume/internal/schemas"
)

var renderCmd = &cobra.Command{
	Use:   "render <resume.json>",
	Short: "Render the fitted screen HTML of a resume",
	Long:  "Renders a ResumeDocument to a standalone HTML page and fits it onto one A4 page.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var (
	renderOutput string
	renderNoFit  bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Path of the HTML file (default: <input>.html)")
	renderCmd.Flags().BoolVar(&renderNoFit, "no-fit", false, "Render at neutral scale and spacing")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	loc, err := locale()
	if err != nil {
		return err
	}
	doc, err := schemas.LoadResume(args[0])
	if err != nil {
		return err
	}
	exp, cleanup, err := newExporter(false)
	if err != nil {
		return err
	}
	defer cleanup()

	var page export.Page
	if renderNoFit {
		page, err = exp.RenderNeutral(cmd.Context(), doc, loc)
	} else {
		page, err = exp.Render(cmd.Context(), doc, loc)
	}
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}

	out := renderOutput
	if out == "" {
		out = strings.TrimSuffix(args[0], ".json") + ".html"
	}
	if err := writeFile(out, page.HTML); err != nil {
		return err
	}
	if verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintFitResult(page.Fit)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s (scale %.3f, %s)\n", out, page.Fit.Params.Scale, page.Fit.Status)
	return nil
}
