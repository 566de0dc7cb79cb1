// Package cli implements the econsim command line.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/macro-sim/internal/config"
	"github.com/talgya/macro-sim/internal/engine"
	"github.com/talgya/macro-sim/internal/entropy"
	"github.com/talgya/macro-sim/internal/persistence"
)

// RootOptions holds global flags for all commands, and the configuration
// loaded before any subcommand runs.
type RootOptions struct {
	Verbose    bool
	ConfigPath string

	Config *config.Config
}

// NewRootCommand creates the root command for the econsim CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "econsim",
		Short: "econsim - macroeconomic policy simulator",
		Long: `A turn-based macroeconomic policy game. Each turn is one quarter: set
fiscal and monetary levers, watch the economy respond, and keep approval
above water for twenty quarters.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			opts.Config = cfg

			level, _ := cfg.LogLevel()
			if opts.Verbose {
				level = slog.LevelDebug
			}
			setupLogging(level)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file (default $CONFIG_PATH or "+config.DefaultPath+")")

	// Add subcommands
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewSimulateCommand(opts))
	cmd.AddCommand(NewJournalCommand(opts))

	return cmd
}

func setupLogging(level slog.Level) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// newSource builds the configured noise source. A non-zero seed overrides
// the configured one.
func newSource(cfg *config.Config, seed int64) (entropy.Source, error) {
	if seed == 0 {
		seed = cfg.Game.Seed
	}
	src, err := entropy.New(cfg.Game.NoiseSource, seed, cfg.Game.RandomOrgAPIKey)
	if err != nil {
		return nil, fmt.Errorf("noise source: %w", err)
	}
	return src, nil
}

// openJournal opens the configured journal. It returns a nil sink and a
// no-op closer when the journal is disabled.
func openJournal(cfg *config.Config) (engine.EventSink, func() error, error) {
	opts, enabled := cfg.JournalOptions()
	if !enabled {
		return nil, func() error { return nil }, nil
	}
	db, err := persistence.Open(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("open journal: %w", err)
	}
	return db, db.Close, nil
}
