package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abdellahzou/HiResume/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the draft API",
	Long:  "Signs a JWT with the configured auth.jwt_secret. Tokens are issued by an upstream identity service in production; this command is for local use.",
	RunE:  runToken,
}

var tokenUser string

func init() {
	tokenCmd.Flags().StringVarP(&tokenUser, "user", "u", "", "User ID (default: a new random ID)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	if !appConfig.Auth.Enabled() {
		return errors.New("auth.jwt_secret is not configured")
	}
	user := uuid.New()
	if tokenUser != "" {
		var err error
		if user, err = uuid.Parse(tokenUser); err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
	}
	token, err := server.NewJWTService(appConfig.Auth).GenerateToken(user)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
