package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kimono-rental/kimono/internal/infrastructure/config"
	"github.com/kimono-rental/kimono/internal/infrastructure/database"
	"github.com/kimono-rental/kimono/internal/infrastructure/migration"
	"github.com/kimono-rental/kimono/internal/interfaces/cli/clienv"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

var (
	env   string
	name  string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply, roll back and inspect the versioned schema scripts, or create a new one.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")
	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Write an empty timestamped SQL script into the scripts directory.`,
		RunE:  runCreate,
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func openStrategy() (*migration.GooseStrategy, logger.Interface, error) {
	cfg, log, err := clienv.LoadWithDatabase(clienv.Resolve(env))
	if err != nil {
		return nil, nil, err
	}
	return newStrategy(cfg, log), log, nil
}

func newStrategy(cfg *config.Config, log logger.Interface) *migration.GooseStrategy {
	return migration.NewGooseStrategy(cfg.Database.Driver, migration.DefaultScriptsPath, log)
}

func runUp(cmd *cobra.Command, args []string) error {
	strategy, log, err := openStrategy()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", env)
	if err := strategy.Migrate(database.Get()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	if steps < 1 {
		return fmt.Errorf("steps must be at least 1")
	}
	strategy, log, err := openStrategy()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running down migrations", "environment", env, "steps", steps)
	if err := strategy.MigrateDown(database.Get(), steps); err != nil {
		return fmt.Errorf("down migration failed: %w", err)
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	strategy, _, err := openStrategy()
	if err != nil {
		return err
	}
	defer database.Close()

	version, err := strategy.GetVersion(database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", env)
	fmt.Fprintf(out, "  Current Version: %d\n", version)

	return strategy.Status(database.Get())
}

// runCreate only touches the filesystem, so no database is opened.
func runCreate(cmd *cobra.Command, args []string) error {
	cfg, log, err := clienv.Load(clienv.Resolve(env))
	if err != nil {
		return err
	}
	if err := newStrategy(cfg, log).Create(name); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created in %s\n", name, migration.DefaultScriptsPath)
	return nil
}
