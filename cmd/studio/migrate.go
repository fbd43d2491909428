package main

import (
	"github.com/spf13/cobra"

	"floral-studio/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the entity store schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close(db)

		logger.Info("Database migrations completed")
		return nil
	},
}
