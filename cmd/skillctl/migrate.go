package main

import (
	"skill-directory/internal/config"
	"skill-directory/internal/database"
	"skill-directory/internal/database/migration"

	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), func(_ config.Config, db database.DB) error {
				cmd.Println("Running migrations...")
				if err := (migration.Runner{}).Run(cmd.Context(), db); err != nil {
					return err
				}
				cmd.Println("Migrations completed successfully")
				return nil
			})
		},
	}
}
