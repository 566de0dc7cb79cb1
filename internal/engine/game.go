package engine

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/talgya/macro-sim/internal/economy"
	"github.com/talgya/macro-sim/internal/entropy"
)

// EventSink receives events after each mutation, outside the game lock.
type EventSink interface {
	SaveEvents(ctx context.Context, events []Event) error
}

// Game owns the single running Simulation. Mutations are serialised by a
// mutex; reads return the last published snapshot without locking.
type Game struct {
	mu   sync.Mutex
	sim  *Simulation
	snap atomic.Pointer[economy.Snapshot]

	sink    EventSink
	sinkMu  sync.Mutex
	pending []Event
}

// NewGame starts a fresh game. sink may be nil.
func NewGame(src entropy.Source, sink EventSink) *Game {
	g := &Game{sink: sink}
	g.sim = NewSimulation(src)
	g.publish()
	return g
}

// State returns a consistent point-in-time snapshot.
func (g *Game) State() economy.Snapshot {
	return *g.snap.Load()
}

// Reset replaces the game with fresh initial values.
func (g *Game) Reset() economy.Snapshot {
	return g.mutate(func(s *Simulation) {
		s.Reset()
	})
}

// ApplyPolicy applies a policy without advancing the turn.
func (g *Game) ApplyPolicy(a economy.Action) economy.Snapshot {
	return g.mutate(func(s *Simulation) {
		s.ApplyPolicy(a)
	})
}

// AdvanceTurn runs the market update.
func (g *Game) AdvanceTurn() economy.Snapshot {
	return g.mutate(func(s *Simulation) {
		s.AdvanceTurn()
	})
}

// PlayTurn applies a policy and advances the turn as one step.
func (g *Game) PlayTurn(a economy.Action) economy.Snapshot {
	return g.mutate(func(s *Simulation) {
		s.ApplyPolicy(a)
		s.AdvanceTurn()
	})
}

// Events returns up to limit of the most recent events, oldest first.
func (g *Game) Events(limit int) []Event {
	g.mu.Lock()
	defer g.mu.Unlock()

	events := g.sim.Events
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	out := make([]Event, len(events))
	copy(out, events)
	return out
}

func (g *Game) mutate(fn func(s *Simulation)) economy.Snapshot {
	g.mu.Lock()
	fn(g.sim)
	g.pending = append(g.pending, g.sim.drainEvents()...)
	snap := g.publish()
	g.mu.Unlock()

	g.flush()
	return snap
}

func (g *Game) publish() economy.Snapshot {
	snap := g.sim.Snapshot()
	g.snap.Store(&snap)
	return snap
}

// flush hands pending events to the sink. Sink failures never affect the game.
func (g *Game) flush() {
	g.sinkMu.Lock()
	defer g.sinkMu.Unlock()

	g.mu.Lock()
	events := g.pending
	g.pending = nil
	g.mu.Unlock()

	if g.sink == nil || len(events) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := g.sink.SaveEvents(ctx, events); err != nil {
		slog.Error("journal write failed", "error", err, "events", len(events))
	}
}
