package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talgya/macro-sim/internal/advisor"
	"github.com/talgya/macro-sim/internal/economy"
	"github.com/talgya/macro-sim/internal/engine"
)

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	Turns   int
	Seed    int64
	Advisor bool
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a batch of turns offline",
		Long: `Run turns without a server and print one line per quarter.

Without --advisor every turn is idle. With it, the rule-based advisor picks
each turn's policy. The run stops early when the game ends.

Example:
  econsim simulate --turns 20 --seed 42
  econsim simulate --advisor`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Turns, "turns", "n", 20, "number of turns to play")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "noise seed (overrides game.seed)")
	cmd.Flags().BoolVar(&opts.Advisor, "advisor", false, "let the advisor choose each turn's policy")

	return cmd
}

func runSimulate(cmd *cobra.Command, opts *SimulateOptions) error {
	if opts.Turns <= 0 {
		return fmt.Errorf("--turns must be positive, got %d", opts.Turns)
	}

	src, err := newSource(opts.Config, opts.Seed)
	if err != nil {
		return err
	}
	sink, closeJournal, err := openJournal(opts.Config)
	if err != nil {
		return err
	}
	defer closeJournal()

	game := engine.NewGame(src, sink)
	out := cmd.OutOrStdout()

	snap := game.State()
	for i := 0; i < opts.Turns && !snap.Ended(); i++ {
		var action economy.Action
		if opts.Advisor {
			d := advisor.Decide(snap)
			action = d.Action
			if opts.Verbose {
				fmt.Fprintf(out, "     %s\n", d.Rationale)
			}
		}
		snap = game.PlayTurn(action)
		writeSummaryLine(out, snap)
	}

	fmt.Fprintln(out)
	writeReport(out, snap)
	fmt.Fprintf(out, "\nOutcome: %s (game %s)\n", outcome(snap), snap.GameID)
	return nil
}
