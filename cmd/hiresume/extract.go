package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdellahzou/HiResume/internal/ingestion"
)

var extractCmd = &cobra.Command{
	Use:   "extract <resume.pdf|resume.docx|resume.html>",
	Short: "Extract the cleaned text of a resume",
	Long:  "Extracts and cleans the text an ATS would read from a resume, and writes it with its metadata (hash, word and character counts).",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

var extractOutDir string

func init() {
	extractCmd.Flags().StringVarP(&extractOutDir, "out", "o", "", "Output directory (required)")
	_ = extractCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, meta, err := ingestion.DefaultRegistry().WithHTML().IngestFromFile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}
	metaJSON, err := meta.ToJSON()
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	textPath := filepath.Join(extractOutDir, base+".cleaned.txt")
	metaPath := filepath.Join(extractOutDir, base+".meta.json")
	if err := writeFile(textPath, []byte(text)); err != nil {
		return err
	}
	if err := writeFile(metaPath, metaJSON); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Extracted %d words from %s\n", meta.Words, args[0])
	_, _ = fmt.Fprintf(out, "Cleaned text: %s\n", textPath)
	_, _ = fmt.Fprintf(out, "Metadata: %s\n", metaPath)
	return nil
}
