package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aamoria/wellness-api/auth"
)

var (
	tokenSubject string
	tokenEmail   string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a signed admin token",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()
		if err := env.RequireJWTSecret(); err != nil {
			return err
		}
		token, err := auth.CreateAdminToken(authSettings(env), tokenSubject, tokenEmail)
		if err != nil {
			return err
		}
		log.Info("Issued admin token", "subject", tokenSubject, "ttl", env.AdminTokenTTL.String())
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "admin", "Token subject")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Admin email recorded on edits")
}
