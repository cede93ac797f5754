// Package main provides the hiresume CLI: document export, ATS scoring and the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abdellahzou/HiResume/internal/config"
	"github.com/abdellahzou/HiResume/internal/i18n"
	"github.com/abdellahzou/HiResume/internal/logger"
)

var (
	configPath string
	verbose    bool
	localeFlag string

	appConfig *config.Config
	log       zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "hiresume",
	Short:         "Resume documents, exports and ATS scoring",
	Long:          "HiResume renders resume documents to HTML, LaTeX, DOCX and PDF, fits them onto one page, and scores uploaded resumes for ATS readability.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Log.Level = "debug"
			cfg.Log.Format = "pretty"
		}
		appConfig = cfg
		log = logger.InitWriter(cmd.ErrOrStderr(), cfg.Log)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default: ./hiresume.yaml when present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging with human-readable output")
	rootCmd.PersistentFlags().StringVarP(&localeFlag, "locale", "l", "", "Display locale: en, fr or es (default from config)")
}

// locale returns the --locale flag or the configured default.
func locale() (i18n.Locale, error) {
	if localeFlag == "" {
		return appConfig.DefaultLocale(), nil
	}
	return i18n.Parse(localeFlag)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
