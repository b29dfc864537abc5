package main

import (
	"skill-directory/internal/config"
	"skill-directory/internal/database"
	"skill-directory/internal/infrastructure/cache"
	"skill-directory/internal/repository"
	"skill-directory/internal/usecase"

	"github.com/spf13/cobra"
)

// NewSkillCmd creates the skill command group.
func NewSkillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Manage the skill catalogue",
	}
	cmd.AddCommand(newSkillCreateCmd())
	return cmd
}

func newSkillCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a skill and invalidate the cached skill list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), func(cfg config.Config, db database.DB) error {
				logger := newLogger(cmd)
				redis := cache.NewRedis(cfg.Redis, logger)
				defer redis.Close()

				uc := usecase.NewSkillUsecase(repository.NewPostgresSkillRepository(db), redis, logger)
				s, err := uc.AddSkill(cmd.Context(), name)
				if err != nil {
					return err
				}
				cmd.Printf("created skill %s (%s)\n", s.Name, s.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "skill name, at most 100 characters")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
