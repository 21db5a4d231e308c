package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()
		_, err = openDB(env, log)
		return err
	},
}
