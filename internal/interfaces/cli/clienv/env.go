// Package clienv loads configuration and logging shared by every subcommand.
package clienv

import (
	"fmt"
	"os"

	"github.com/kimono-rental/kimono/internal/infrastructure/config"
	"github.com/kimono-rental/kimono/internal/infrastructure/database"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

// Resolve lets the ENV variable override the --env flag.
func Resolve(flag string) string {
	if v := os.Getenv("ENV"); v != "" {
		return v
	}
	return flag
}

// Load reads configuration for env and initializes the process logger. The
// server mode is rewritten to a gin mode.
func Load(env string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = GinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger.NewLogger(), nil
}

// LoadWithDatabase is Load followed by opening the database pool. Callers
// close it with database.Close.
func LoadWithDatabase(env string) (*config.Config, logger.Interface, error) {
	cfg, log, err := Load(env)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, log, nil
}

func GinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
