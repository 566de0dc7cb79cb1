package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/talgya/macro-sim/internal/economy"
)

// Ticker advances idle turns on a cron schedule (autoplay). Each firing plays
// a turn with no policy; firing stops having any effect once the game ends.
type Ticker struct {
	Game *Game
	Cron *cron.Cron

	// OnTurn, if set, is called with the snapshot after each autoplayed turn.
	OnTurn func(snap economy.Snapshot)

	mu      sync.Mutex
	entryID cron.EntryID
	running bool
}

// NewTicker creates a ticker for the given game. Schedules use the seconds
// field, e.g. "*/30 * * * * *" for a turn every thirty seconds.
func NewTicker(g *Game) *Ticker {
	return &Ticker{
		Game: g,
		Cron: cron.New(cron.WithSeconds()),
	}
}

// Schedule registers the autoplay job.
func (t *Ticker) Schedule(spec string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.entryID != 0 {
		t.Cron.Remove(t.entryID)
	}
	id, err := t.Cron.AddFunc(spec, func() { t.Step() })
	if err != nil {
		return fmt.Errorf("register autoplay %q: %w", spec, err)
	}
	t.entryID = id
	return nil
}

// Start starts the cron scheduler.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.Cron.Start()
	t.running = true
	slog.Info("autoplay started")
}

// Stop stops the scheduler and waits for a running step to finish.
func (t *Ticker) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	t.mu.Unlock()

	<-t.Cron.Stop().Done()
	slog.Info("autoplay stopped")
}

// Step plays one idle turn unless the game has ended. It reports whether a
// turn was played.
func (t *Ticker) Step() bool {
	if t.Game.State().Ended() {
		return false
	}
	snap := t.Game.PlayTurn(economy.Action{})
	slog.Info("autoplay turn", "turn", snap.Turn, "approval", snap.ApprovalRating)
	if t.OnTurn != nil {
		t.OnTurn(snap)
	}
	return true
}
