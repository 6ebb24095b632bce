package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/okian/meritsim/internal/config"
	"github.com/okian/meritsim/pkg/logger"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "meritsim",
		Short: "Simulate scored student achievement claims and their review",
		Long: `meritsim generates synthetic achievement submissions for a student roster.

Each claim is scored by a per-category rule table, either by summing option
points or by multiplying a category base, and then passes through a simulated
approval workflow whose outcome depends on the claim's value.

Configuration is layered: built-in defaults, a YAML file (--config or
$MERITSIM_CONFIG) and MERITSIM_* environment variables.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "YAML config file (default $MERITSIM_CONFIG)")
	rootCmd.PersistentFlags().String("log-level", "", "Override log_level: debug, info, warn, error")

	rootCmd.AddCommand(
		newGenerateCmd(),
		newScoreCmd(),
		newCategoriesCmd(),
	)
	return rootCmd
}

// loadConfig resolves the layered config and applies the log level.
func loadConfig(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(ctx, path)
	} else {
		cfg, err = config.Load(ctx)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return cfg, nil
}
