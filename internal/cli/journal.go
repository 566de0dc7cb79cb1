package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talgya/macro-sim/internal/persistence"
)

// NewJournalCommand creates the journal command.
func NewJournalCommand(rootOpts *RootOptions) *cobra.Command {
	var gameID string
	var limit int

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Print recent events from the journal",
		Long: `Print the newest journaled events, oldest first.

Example:
  DB_DIALECT=sqlite econsim journal --limit 20
  econsim journal --game 4b0c... --config configs/econsim.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, enabled := rootOpts.Config.JournalOptions()
			if !enabled {
				return errors.New("journal is disabled; set journal.dialect or DB_DIALECT")
			}
			db, err := persistence.Open(popts)
			if err != nil {
				return err
			}
			defer db.Close()

			events, err := db.RecentEvents(cmd.Context(), gameID, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "no events")
				return nil
			}
			for _, e := range events {
				fmt.Fprintf(out, "%s  Q%-3d %-10s %s\n", shortID(e.GameID), e.Turn, e.Category, e.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "only events from this game ID")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum events to print")

	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
