package main

import (
	"skill-directory/internal/config"
	"skill-directory/internal/database"
	"skill-directory/internal/infrastructure/persistence/postgres"
	ucauth "skill-directory/internal/usecase/auth"

	"github.com/spf13/cobra"
)

// NewUserCmd creates the user command group.
func NewUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(newUserCreateCmd())
	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a user with a hashed password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), func(cfg config.Config, db database.DB) error {
				hasher, err := ucauth.NewBcryptHasher(cfg.Auth.BcryptCost)
				if err != nil {
					return err
				}
				svc, err := ucauth.NewService(postgres.NewUserRepository(db), hasher)
				if err != nil {
					return err
				}

				u, err := svc.Register(cmd.Context(), username, password)
				if err != nil {
					return err
				}
				cmd.Printf("created user %s (%s)\n", u.Username, u.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "login name, at most 20 characters")
	cmd.Flags().StringVar(&password, "password", "", "plaintext password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
