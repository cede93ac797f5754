package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abdellahzou/HiResume/internal/ats"
	"github.com/abdellahzou/HiResume/internal/cache"
	"github.com/abdellahzou/HiResume/internal/db"
	"github.com/abdellahzou/HiResume/internal/ingestion"
	"github.com/abdellahzou/HiResume/internal/server"
	"github.com/abdellahzou/HiResume/internal/server/ratelimit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing rendering, export and ATS scoring.
Draft storage is enabled when both a database URL and a JWT secret are configured.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sc := appConfig.Server
	if servePort != 0 {
		sc.Port = servePort
	}

	exp, cleanup, err := newExporter(false)
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer cleanup()

	analyzer, err := ats.NewAnalyzer(appConfig.ATS)
	if err != nil {
		return err
	}
	deps := server.Deps{
		Exporter:   exp,
		Analyzer:   analyzer,
		Extractors: ingestion.DefaultRegistry(),
		Logger:     log,
	}

	if appConfig.Redis.Addr != "" {
		rc, err := cache.New(ctx, appConfig.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() { _ = rc.Close() }()
		deps.Cache = rc
	}

	if appConfig.DatabaseURL != "" && appConfig.Auth.Enabled() {
		database, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer database.Close()
		deps.Drafts = database
		deps.Tokens = server.NewJWTService(appConfig.Auth)
	} else {
		log.Info().Msg("draft storage disabled: database_url and auth.jwt_secret are both required")
	}

	rl := sc.RateLimit
	srv := server.New(server.Config{
		Port:           sc.Port,
		ReadTimeout:    sc.ReadTimeout,
		WriteTimeout:   sc.WriteTimeout,
		IdleTimeout:    sc.IdleTimeout,
		AllowedOrigins: sc.AllowedOrigins,
		MaxUploadBytes: sc.MaxUploadBytes,
		SessionIdleTTL: sc.SessionIdleTTL,
		Locale:         appConfig.DefaultLocale(),
		Features:       appConfig.Features,
		RateLimit: ratelimit.NewConfig(ratelimit.Settings{
			Enabled:         rl.Enabled,
			DefaultLimit:    rl.DefaultLimit,
			DefaultWindow:   rl.DefaultWindow,
			CleanupInterval: rl.CleanupInterval,
			Whitelist:       rl.Whitelist,
			Blacklist:       rl.Blacklist,
		}),
	}, deps)

	return srv.Start(ctx)
}

func openDatabase(ctx context.Context) (*db.DB, error) {
	database, err := db.Connect(ctx, appConfig.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return database, nil
}
