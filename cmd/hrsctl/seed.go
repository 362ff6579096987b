package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jlvilasoler/hashrate-app/internal/application/auth"
	"github.com/jlvilasoler/hashrate-app/internal/bootstrap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Crea los usuarios por defecto que falten",
	Long: `Crea los usuarios de AUTH_DEFAULT_USERS con AUTH_DEFAULT_PASSWORD.
El primero recibe el rol admin_a y el resto admin_b. Los existentes no se modifican.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStorage(cmd, func(store *bootstrap.Storage) error {
			authUC := auth.NewAuthUseCase(store.Users, store.Activity, auth.JWTConfig{
				Secret:     cfg.JWT.Secret,
				ExpMinutes: cfg.JWT.Expiration,
				Issuer:     cfg.JWT.Issuer,
			}, log)
			defaults := auth.DefaultUsersFrom(cfg.Auth.DefaultUsers, cfg.Auth.DefaultPassword)
			if err := authUC.EnsureDefaultUsers(cmd.Context(), defaults); err != nil {
				return err
			}
			for _, u := range defaults {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", u.Email, u.Role)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
