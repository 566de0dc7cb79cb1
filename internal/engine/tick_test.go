package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/macro-sim/internal/economy"
	"github.com/talgya/macro-sim/internal/entropy"
)

func TestTickerStepPlaysIdleTurn(t *testing.T) {
	g := NewGame(&entropy.Fixed{}, nil)
	tk := NewTicker(g)

	var seen []economy.Snapshot
	tk.OnTurn = func(snap economy.Snapshot) { seen = append(seen, snap) }

	require.True(t, tk.Step())
	assert.Equal(t, 2, g.State().Turn)
	require.Len(t, seen, 1)
	assert.Equal(t, 2, seen[0].Turn)
}

func TestTickerStopsAtVictory(t *testing.T) {
	g := NewGame(&entropy.Fixed{}, nil)
	tk := NewTicker(g)

	played := 0
	for tk.Step() {
		played++
		require.Less(t, played, 100)
	}

	assert.Equal(t, 20, played)
	assert.True(t, g.State().IsVictory)
	assert.False(t, tk.Step())
}

func TestTickerStopsAtGameOver(t *testing.T) {
	g := NewGame(&entropy.Fixed{}, nil)
	// Punitive taxes drain approval every turn.
	g.ApplyPolicy(economy.Action{TaxRate: economy.Level(100)})
	tk := NewTicker(g)

	for i := 0; i < 10 && tk.Step(); i++ {
	}

	snap := g.State()
	require.True(t, snap.IsGameOver)
	assert.False(t, tk.Step())
	assert.Equal(t, snap.Turn, g.State().Turn)
}

func TestTickerSchedule(t *testing.T) {
	tk := NewTicker(NewGame(&entropy.Fixed{}, nil))

	assert.Error(t, tk.Schedule("not a schedule"))
	require.NoError(t, tk.Schedule("*/30 * * * * *"))
	require.NoError(t, tk.Schedule("0 * * * * *"))
	assert.Len(t, tk.Cron.Entries(), 1)

	tk.Start()
	tk.Start()
	tk.Stop()
	tk.Stop()
}
