package main

import (
	"fmt"

	"skill-directory/internal/config"
	"skill-directory/internal/database"
	"skill-directory/internal/database/migration"
	"skill-directory/internal/database/seeder"
	"skill-directory/internal/infrastructure/cache"
	"skill-directory/internal/repository"
	"skill-directory/internal/usecase"
	ucauth "skill-directory/internal/usecase/auth"

	"github.com/spf13/cobra"
)

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo users, skills and assignments",
		Long: `Load the demo data set. Rows that already exist are left alone, so
seeding twice is harmless. The cached skill list is dropped afterwards.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), func(cfg config.Config, db database.DB) error {
				if migrate {
					if err := (migration.Runner{}).Run(cmd.Context(), db); err != nil {
						return fmt.Errorf("migrate: %w", err)
					}
				}

				hasher, err := ucauth.NewBcryptHasher(cfg.Auth.BcryptCost)
				if err != nil {
					return err
				}
				runner := seeder.Runner{Seeders: seeder.Defaults(hasher)}
				if err := runner.Run(cmd.Context(), db); err != nil {
					return err
				}

				logger := newLogger(cmd)
				redis := cache.NewRedis(cfg.Redis, logger)
				defer redis.Close()
				usecase.NewSkillUsecase(repository.NewPostgresSkillRepository(db), redis, logger).InvalidateSkillList(cmd.Context())
				cmd.Println("Seed completed")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply pending migrations first")

	return cmd
}
