package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abdellahzou/HiResume/internal/draft"
	"github.com/abdellahzou/HiResume/internal/types"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Write an empty resume document",
	Long:  "Writes the default empty ResumeDocument as JSON, ready to be filled in and exported.",
	RunE:  runNew,
}

var (
	newOutput   string
	newTemplate string
	newForce    bool
)

func init() {
	newCmd.Flags().StringVarP(&newOutput, "out", "o", "resume.json", "Path of the JSON file to create")
	newCmd.Flags().StringVarP(&newTemplate, "template", "t", string(types.TemplateModern), "Template of the new document")
	newCmd.Flags().BoolVarP(&newForce, "force", "f", false, "Overwrite an existing file")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, _ []string) error {
	doc := draft.Default()
	doc.TemplateID = types.TemplateID(newTemplate)
	if !doc.TemplateID.Valid() {
		return fmt.Errorf("%w: %q", types.ErrUnknownTemplate, newTemplate)
	}

	if !newForce {
		if _, err := os.Stat(newOutput); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", newOutput)
		}
	}
	data, err := jsonIndent(doc)
	if err != nil {
		return err
	}
	if err := writeFile(newOutput, data); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s (template: %s)\n", newOutput, doc.TemplateID)
	return nil
}
