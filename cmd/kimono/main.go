package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kimono-rental/kimono/internal/interfaces/cli/autotag"
	"github.com/kimono-rental/kimono/internal/interfaces/cli/events"
	"github.com/kimono-rental/kimono/internal/interfaces/cli/migrate"
	"github.com/kimono-rental/kimono/internal/interfaces/cli/server"
	"github.com/kimono-rental/kimono/internal/interfaces/cli/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "kimono",
		Short:        "Kimono rental plan reconciliation service",
		Long:         `Serves the merchant plan API and provides schema migration, batch tagging and event tailing tools.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		autotag.NewCommand(),
		events.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
