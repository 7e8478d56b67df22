// Package token issues access tokens for operators and local testing.
package token

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kimono-rental/kimono/internal/infrastructure/auth"
	"github.com/kimono-rental/kimono/internal/interfaces/cli/clienv"
	"github.com/kimono-rental/kimono/internal/shared/constants"
)

var (
	env    string
	userID string
	role   string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed access token",
		Long:  `Sign a JWT for the given user and role with the configured secret and print it.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&userID, "user", "u", "", "User id placed in the token (required)")
	cmd.Flags().StringVar(&role, "role", constants.RoleMerchant, "Role: merchant or admin")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if role != constants.RoleMerchant && role != constants.RoleAdmin {
		return fmt.Errorf("unknown role %q", role)
	}

	cfg, _, err := clienv.Load(clienv.Resolve(env))
	if err != nil {
		return err
	}

	jwt := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes)
	signed, err := jwt.Generate(userID, role)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), signed)
	return nil
}
