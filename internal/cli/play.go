package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talgya/macro-sim/internal/advisor"
	"github.com/talgya/macro-sim/internal/economy"
	"github.com/talgya/macro-sim/internal/engine"
)

const playHelp = `Commands:
  <lever> <amount>   queue a lever for this turn, e.g. "stimulus 25"
                     levers: bond, repay, stimulus, taxcut, works, rnd,
                             housing, defend
  tax <0-100>        set the tax rate
  ltv <0-100>        set LTV/DTI regulation strength
  pending            show the queued policy
  advise             ask the advisor for a policy and queue it
  next               play the turn with the queued policy
  status             print the current report
  events [n]         show recent events
  reset              start a new game
  help               show this help
  quit               leave`

// NewPlayCommand creates the interactive play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play interactively in the terminal",
		Long: `Play one game in a line-oriented terminal session.

Queue levers, then type "next" to end the quarter. Type "help" for the
command list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !rootOpts.Verbose {
				// Turn logs would interleave with the reports.
				setupLogging(slog.LevelWarn)
			}
			src, err := newSource(rootOpts.Config, seed)
			if err != nil {
				return err
			}
			sink, closeJournal, err := openJournal(rootOpts.Config)
			if err != nil {
				return err
			}
			defer closeJournal()

			s := &session{game: engine.NewGame(src, sink), out: cmd.OutOrStdout()}
			return s.run(cmd.InOrStdin())
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "noise seed (overrides game.seed)")

	return cmd
}

type session struct {
	game    *engine.Game
	out     io.Writer
	pending economy.Action
}

func (s *session) run(in io.Reader) error {
	fmt.Fprintln(s.out, "Macroeconomic policy simulator. Survive twenty quarters.")
	writeReport(s.out, s.game.State())
	fmt.Fprintln(s.out, `Type "help" for commands.`)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if quit := s.exec(fields); quit {
			return nil
		}
	}
}

// exec runs one command line and reports whether the session should end.
func (s *session) exec(fields []string) bool {
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Goodbye.")
		return true
	case "help", "h", "?":
		fmt.Fprintln(s.out, playHelp)
	case "status", "s":
		writeReport(s.out, s.game.State())
	case "pending", "p":
		s.showPending()
	case "advise":
		d := advisor.Decide(s.game.State())
		s.pending = d.Action
		fmt.Fprintln(s.out, d.Rationale)
		s.showPending()
	case "next", "n":
		if s.game.State().Ended() {
			fmt.Fprintln(s.out, `The game has ended. Type "reset" to play again.`)
			return false
		}
		before := len(s.game.Events(0))
		snap := s.game.PlayTurn(s.pending)
		s.pending = economy.Action{}
		for _, e := range s.game.Events(0)[before:] {
			fmt.Fprintf(s.out, "  * %s\n", e.Description)
		}
		writeReport(s.out, snap)
		if snap.Ended() {
			fmt.Fprintf(s.out, "%s\n", outcome(snap))
		}
	case "events":
		n := 10
		if len(args) > 0 {
			if v, err := strconv.Atoi(args[0]); err == nil && v > 0 {
				n = v
			}
		}
		for _, e := range s.game.Events(n) {
			fmt.Fprintf(s.out, "  Q%-3d %-10s %s\n", e.Turn, e.Category, e.Description)
		}
	case "reset":
		s.pending = economy.Action{}
		snap := s.game.Reset()
		fmt.Fprintln(s.out, "New game.")
		writeReport(s.out, snap)
	default:
		if err := s.queue(cmd, args); err != nil {
			fmt.Fprintln(s.out, err)
		}
	}
	return false
}

func (s *session) queue(lever string, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("unknown command %q; type \"help\"", lever)
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("%s: %q is not a number", lever, args[0])
	}

	next := s.pending
	switch lever {
	case "bond":
		next.BondIssuance = v
	case "repay":
		next.DebtRepayment = v
	case "stimulus":
		next.Stimulus = v
	case "taxcut":
		next.TaxCut = v
	case "works":
		next.PublicWorks = v
	case "rnd":
		next.RnDInvestment = v
	case "housing":
		next.HousingSupply = v
	case "defend":
		next.CurrencyDefense = v
	case "tax":
		next.TaxRate = economy.Level(v)
	case "ltv":
		next.LTVDTIStrength = economy.Level(v)
	default:
		return fmt.Errorf("unknown command %q; type \"help\"", lever)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	s.pending = next
	s.showPending()
	return nil
}

func (s *session) showPending() {
	a := s.pending
	if a.IsZero() {
		fmt.Fprintln(s.out, "  (no policy queued; next turn is idle)")
		return
	}
	line := func(name string, v float64) {
		if v > 0 {
			fmt.Fprintf(s.out, "  %-16s %s\n", name, money(v))
		}
	}
	line("bond issuance", a.BondIssuance)
	line("debt repayment", a.DebtRepayment)
	line("stimulus", a.Stimulus)
	line("tax cut", a.TaxCut)
	line("public works", a.PublicWorks)
	line("R&D", a.RnDInvestment)
	line("housing supply", a.HousingSupply)
	line("currency defense", a.CurrencyDefense)
	if a.TaxRate != nil {
		fmt.Fprintf(s.out, "  %-16s %s\n", "tax rate", pct(*a.TaxRate))
	}
	if a.LTVDTIStrength != nil {
		fmt.Fprintf(s.out, "  %-16s %.0f\n", "LTV/DTI", *a.LTVDTIStrength)
	}
}
