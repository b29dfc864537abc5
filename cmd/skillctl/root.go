package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"skill-directory/internal/config"
	"skill-directory/internal/database"
	dbpostgres "skill-directory/internal/database/postgres"

	"github.com/spf13/cobra"
)

// loadConfig is replaced in tests.
var loadConfig = config.LoadStorage

// NewRootCmd creates the root command for the skillctl CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skillctl",
		Short: "Administer the skill directory",
		Long: `skillctl applies migrations, loads demo data and creates users
and skills directly against the database. Connection settings come from the
same DB_* environment variables the server reads.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewUserCmd())
	cmd.AddCommand(NewSkillCmd())

	return cmd
}

func newLogger(cmd *cobra.Command) *log.Logger {
	return log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
}

// withDB loads config, opens the pool and hands both to fn.
func withDB(ctx context.Context, fn func(cfg config.Config, db database.DB) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close database: %v\n", err)
		}
	}()

	return fn(cfg, db)
}
