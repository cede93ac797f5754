package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdellahzou/HiResume/internal/ats"
	"github.com/abdellahzou/HiResume/internal/cache"
	"github.com/abdellahzou/HiResume/internal/ingestion"
	"github.com/abdellahzou/HiResume/internal/observability"
	"github.com/abdellahzou/HiResume/internal/schemas"
	"github.com/abdellahzou/HiResume/internal/types"
)

var atsCmd = &cobra.Command{
	Use:   "ats <resume.pdf|resume.docx>",
	Short: "Score a resume for ATS readability",
	Long: `Extracts the text of a PDF or DOCX resume and scores it out of 100.
With --document, a ResumeDocument JSON is rendered and its screen text scored instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runATS,
}

var (
	atsDocument string
	atsJSON     bool
)

func init() {
	atsCmd.Flags().StringVarP(&atsDocument, "document", "d", "", "Score a ResumeDocument JSON file instead of an upload")
	atsCmd.Flags().BoolVar(&atsJSON, "json", false, "Print the result as JSON")
	rootCmd.AddCommand(atsCmd)
}

func runATS(cmd *cobra.Command, args []string) error {
	if (len(args) == 1) == (atsDocument != "") {
		return errors.New("pass either a file or --document")
	}
	ctx := cmd.Context()

	name, data, err := atsInput(ctx, args)
	if err != nil {
		return err
	}

	analyzer, err := ats.NewAnalyzer(appConfig.ATS)
	if err != nil {
		return err
	}
	opts := []ats.Option{
		ats.WithExtractors(ingestion.DefaultRegistry().WithHTML()),
		ats.WithLogger(log),
	}
	if appConfig.Redis.Addr != "" {
		rc, err := cache.New(ctx, appConfig.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, scoring without cache")
		} else {
			defer func() { _ = rc.Close() }()
			opts = append(opts, ats.WithCache(rc))
		}
	}

	result, err := ats.NewPipeline(analyzer, opts...).Run(ctx, name, data)
	if err != nil {
		var userErr ats.UserError
		if errors.As(err, &userErr) {
			return errors.New(ats.UserMessage(err))
		}
		return err
	}
	return printATS(cmd, &result)
}

// atsInput returns the file to score: the upload itself, or the rendered screen HTML of a document.
func atsInput(ctx context.Context, args []string) (string, []byte, error) {
	if atsDocument == "" {
		data, err := ingestion.ReadFile(args[0])
		if err != nil {
			return "", nil, err
		}
		return args[0], data, nil
	}

	loc, err := locale()
	if err != nil {
		return "", nil, err
	}
	doc, err := schemas.LoadResume(atsDocument)
	if err != nil {
		return "", nil, err
	}
	exp, cleanup, err := newExporter(false)
	if err != nil {
		return "", nil, err
	}
	defer cleanup()
	page, err := exp.RenderNeutral(ctx, doc, loc)
	if err != nil {
		return "", nil, err
	}
	return "resume.html", page.HTML, nil
}

func printATS(cmd *cobra.Command, r *types.AtsResult) error {
	if atsJSON {
		data, err := jsonIndent(r)
		if err != nil {
			return err
		}
		if err := schemas.Validate(schemas.AtsResult, data); err != nil {
			log.Warn().Err(err).Msg("ats result does not match its schema")
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintAtsResult(r)
	return nil
}
