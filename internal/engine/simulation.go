// Simulation ties the economy state to the policy and market pipelines.
package engine

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/macro-sim/internal/economy"
	"github.com/talgya/macro-sim/internal/entropy"
)

// maxEvents bounds the in-memory event buffer.
const maxEvents = 1000

// Simulation holds one game's economy and the noise source that drives it.
// It is not safe for concurrent use; Game serialises access.
type Simulation struct {
	State  *economy.State
	Rand   entropy.Source
	GameID string
	Events []Event // Recent events, oldest first

	unsent []Event // Emitted since the last drain
}

// Event is a notable occurrence during a turn. Diagnostics such as a skipped
// policy are events, not errors.
type Event struct {
	GameID      string         `json:"game_id" db:"game_id"`
	Turn        int            `json:"turn" db:"turn"`
	Description string         `json:"description" db:"description"`
	Category    string         `json:"category" db:"category"` // "policy", "monetary", "credit", "innovation", "outcome"
	Meta        map[string]any `json:"meta,omitempty" db:"-"`
}

// Event categories.
const (
	CategoryPolicy     = "policy"
	CategoryMonetary   = "monetary"
	CategoryCredit     = "credit"
	CategoryInnovation = "innovation"
	CategoryOutcome    = "outcome"
)

// NewSimulation creates a fresh game drawing noise from src.
func NewSimulation(src entropy.Source) *Simulation {
	s := &Simulation{Rand: src}
	s.Reset()
	return s
}

// Reset replaces the state with a fresh economy under a new game ID.
func (s *Simulation) Reset() {
	s.State = economy.NewState()
	s.GameID = uuid.NewString()
	s.Events = nil
	slog.Info("new game", "game_id", s.GameID)
}

// Snapshot exports the current state.
func (s *Simulation) Snapshot() economy.Snapshot {
	return s.State.Snapshot(s.GameID)
}

// EmitEvent records an event against the current turn.
func (s *Simulation) EmitEvent(category, description string, meta map[string]any) {
	e := Event{
		GameID:      s.GameID,
		Turn:        s.State.Turn,
		Description: description,
		Category:    category,
		Meta:        meta,
	}
	s.Events = append(s.Events, e)
	s.unsent = append(s.unsent, e)
	if len(s.Events) > maxEvents {
		s.Events = s.Events[len(s.Events)-maxEvents:]
	}
	slog.Debug("event", "turn", e.Turn, "category", category, "description", description)
}

// noise draws a uniform term of the given amplitude.
func (s *Simulation) noise(amplitude float64) float64 {
	return entropy.Uniform(s.Rand, amplitude)
}

// drainEvents returns the events emitted since the previous call.
func (s *Simulation) drainEvents() []Event {
	out := s.unsent
	s.unsent = nil
	return out
}
