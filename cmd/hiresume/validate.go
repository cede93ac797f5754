package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdellahzou/HiResume/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate <resume.json>",
	Short: "Validate a resume document",
	Long:  "Checks a ResumeDocument JSON file against the resume schema and the field rules.",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	doc, err := schemas.LoadResume(args[0])
	if err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			for _, fe := range validationErr.Errors {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", fe.Field, fe.Message)
			}
			return fmt.Errorf("%s is not a valid resume document", args[0])
		}
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (template: %s, %d experience entries)\n",
		args[0], doc.TemplateID, len(doc.Experience))
	return nil
}
