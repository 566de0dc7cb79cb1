package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/talgya/macro-sim/internal/api"
	"github.com/talgya/macro-sim/internal/economy"
	"github.com/talgya/macro-sim/internal/engine"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP",
		Long: `Serve one shared game over the HTTP API.

Autoplay advances idle turns on the configured cron schedule, and the
journal records engine events when a dialect is configured.

Example:
  econsim serve --addr :8000
  ECONSIM_AUTOPLAY_CRON="*/30 * * * * *" econsim serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.Config
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, rootOpts)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")

	return cmd
}

func serve(ctx context.Context, opts *RootOptions) error {
	cfg := opts.Config

	src, err := newSource(cfg, 0)
	if err != nil {
		return err
	}
	sink, closeJournal, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeJournal(); err != nil {
			slog.Error("close journal", "error", err)
		}
	}()

	game := engine.NewGame(src, sink)

	if spec := cfg.Game.AutoplayCron; spec != "" {
		ticker := engine.NewTicker(game)
		ticker.OnTurn = func(snap economy.Snapshot) {
			if snap.Ended() {
				slog.Info("autoplay reached the end of the game", "turn", snap.Turn, "victory", snap.IsVictory)
			}
		}
		if err := ticker.Schedule(spec); err != nil {
			return err
		}
		ticker.Start()
		defer ticker.Stop()
	}

	srv := &api.Server{
		Game:        game,
		Addr:        cfg.Server.Addr,
		AdminKey:    cfg.Server.AdminKey,
		CORSOrigins: cfg.Server.CORSOrigins,
		TurnLimit:   cfg.Server.RateLimit,
	}
	srv.Start()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
