package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/macro-sim/internal/economy"
	"github.com/talgya/macro-sim/internal/entropy"
)

func TestIdleTurnFromDefaults(t *testing.T) {
	s := newQuietSim()

	s.AdvanceTurn()
	st := s.State

	assert.Equal(t, 2, st.Turn)
	// 100 + 2200·0.10 − 1000·0.025 − (10 + 2)
	assert.InDelta(t, 283.0, st.Budget, 1e-9)
	assert.InDelta(t, 12.0, st.WelfareCost, 1e-9)
	assert.InDelta(t, 2.0, st.InflationRate, 1e-9)
	assert.InDelta(t, 1.5, st.InterestRate, 1e-9)
	assert.InDelta(t, 5.0, st.MoneyMultiplier, 1e-9)
	assert.InDelta(t, 1200.0, st.ExchangeRate, 1e-9)
	assert.InDelta(t, 440.0, st.Exports, 1e-9)
	assert.InDelta(t, 440.0, st.Imports, 1e-9)
	assert.InDelta(t, 410.0, st.ForeignReserves, 1e-9)
	assert.InDelta(t, 100.0, st.RealEstateIndex, 1e-9)
	assert.InDelta(t, 3.0, st.UnemploymentRate, 1e-9)
	// 2 − 0.02 (aging) − 50·0.005 (regulation)
	assert.InDelta(t, 1.73, st.GDPGrowthRate, 1e-9)
	assert.InDelta(t, 2238.06, st.GDP, 1e-6)
	assert.InDelta(t, 60.0, st.ApprovalRating, 1e-9)
	assert.Equal(t, int64(51700), st.Population)
	assert.InDelta(t, 100/1.005, st.RealPurchasingPower, 1e-9)
	assert.False(t, st.IsGameOver)
	assert.False(t, st.IsVictory)
}

func TestInterestRateHike(t *testing.T) {
	s := newQuietSim()
	s.State.InflationRate = 5

	s.AdvanceTurn()

	assert.InDelta(t, 3.8, s.State.InflationRate, 1e-9)
	assert.InDelta(t, 1.75, s.State.InterestRate, 1e-9)
	assert.InDelta(t, 59.0, s.State.ApprovalRating, 1e-9)
	assert.InDelta(t, 0.25, s.State.InterestChange, 1e-9)
	assert.NotEmpty(t, eventsOf(s, CategoryMonetary))
}

func TestInterestRateHikeRespectsCap(t *testing.T) {
	s := newQuietSim()
	s.State.InflationRate = 5
	s.State.InterestRate = economy.MaxPolicyRate

	s.AdvanceTurn()

	assert.Equal(t, economy.MaxPolicyRate, s.State.InterestRate)
}

func TestInterestRateCut(t *testing.T) {
	s := newQuietSim()
	s.State.InflationRate = 0

	s.AdvanceTurn()

	assert.InDelta(t, 0.8, s.State.InflationRate, 1e-9)
	assert.InDelta(t, 1.25, s.State.InterestRate, 1e-9)

	s = newQuietSim()
	s.State.InflationRate = 0
	s.State.InterestRate = 0
	s.AdvanceTurn()
	assert.Zero(t, s.State.InterestRate)
}

func TestCreditDowngrade(t *testing.T) {
	s := newQuietSim()
	s.State.NationalDebt = 3000

	s.AdvanceTurn()

	assert.True(t, s.State.CreditDowngraded)
	// 15 + (3000/2200 − 1)·20
	assert.GreaterOrEqual(t, s.State.InterestRate, 22.27)
	assert.Equal(t, economy.MinMoneyMultiplier, s.State.MoneyMultiplier)
	assert.Len(t, eventsOf(s, CategoryCredit), 1)

	// The flag is recomputed every turn.
	s.State.NationalDebt = 1000
	s.AdvanceTurn()
	assert.False(t, s.State.CreditDowngraded)
	assert.Len(t, eventsOf(s, CategoryCredit), 2)
}

func TestInnovationFiresOncePerThreshold(t *testing.T) {
	s := newQuietSim()

	s.ApplyPolicy(economy.Action{BondIssuance: 200, RnDInvestment: 120})
	s.AdvanceTurn()

	assert.InDelta(t, 1.0, s.State.ProductivityBonus, 1e-9)
	assert.InDelta(t, 20.0, s.State.CumulativeRnD, 1e-9)
	assert.True(t, s.State.InnovationTriggered)
	assert.Len(t, eventsOf(s, CategoryInnovation), 2)

	s.ApplyPolicy(economy.Action{})
	s.AdvanceTurn()
	assert.False(t, s.State.InnovationTriggered)
	assert.InDelta(t, 1.0, s.State.ProductivityBonus, 1e-9)
}

func TestCapitalFlight(t *testing.T) {
	quiet := newQuietSim()
	quiet.AdvanceTurn()

	s := newQuietSim()
	s.State.TaxRate = 30
	s.AdvanceTurn()

	// Growth loses 10·0.1 to flight and 20·0.05 to the tax deviation.
	assert.InDelta(t, quiet.State.GDPGrowthRate-2.0, s.State.GDPGrowthRate, 1e-9)
	// Approval loses 20·0.3 to the tax level and 10·0.2 to flight.
	assert.InDelta(t, 52.0, s.State.ApprovalRating, 1e-9)
}

func TestHousingBubbleCostsApproval(t *testing.T) {
	s := newQuietSim()
	s.State.RealEstateIndex = 130

	s.AdvanceTurn()

	assert.InDelta(t, 130.0, s.State.RealEstateIndex, 1e-9)
	assert.InDelta(t, 58.0, s.State.ApprovalRating, 1e-9)
}

func TestGameOverIsSticky(t *testing.T) {
	s := newQuietSim()
	s.State.ApprovalRating = 4

	s.AdvanceTurn()
	require.True(t, s.State.IsGameOver)

	s.State.ApprovalRating = 90
	s.State.Turn = 25
	for i := 0; i < 3; i++ {
		s.AdvanceTurn()
	}
	assert.True(t, s.State.IsGameOver)
	assert.False(t, s.State.IsVictory)
	assert.Equal(t, 28, s.State.Turn)
	assert.Len(t, eventsOf(s, CategoryOutcome), 1)
}

func TestVictoryAfterTwentyTurns(t *testing.T) {
	s := newQuietSim()

	for i := 0; i < 19; i++ {
		s.AdvanceTurn()
	}
	assert.False(t, s.State.IsVictory)
	assert.Equal(t, 20, s.State.Turn)

	s.AdvanceTurn()
	assert.True(t, s.State.IsVictory)
	assert.False(t, s.State.IsGameOver)
	assert.Equal(t, 21, s.State.Turn)
	assert.Len(t, eventsOf(s, CategoryOutcome), 1)
}

func TestDerivedIndicators(t *testing.T) {
	s := newQuietSim()
	s.ApplyPolicy(economy.Action{BondIssuance: 100})
	s.AdvanceTurn()

	assert.InDelta(t, 10.0, s.State.DebtGrowthRate, 1e-9)
	assert.InDelta(t, s.State.RealPurchasingPower-100, s.State.RealPurchasingPowerChange, 1e-9)
	assert.Equal(t, s.State.MoneySupply, s.State.PrevMoneySupply)
}

func TestReproducibleWithSeed(t *testing.T) {
	play := func() economy.Snapshot {
		s := NewSimulation(entropy.NewSeeded(42))
		for i := 0; i < 15; i++ {
			s.ApplyPolicy(economy.Action{Stimulus: 5, RnDInvestment: 10})
			s.AdvanceTurn()
		}
		return s.Snapshot()
	}

	a, b := play(), play()
	a.GameID, b.GameID = "", ""
	assert.Equal(t, a, b)
}

// TestInvariantsUnderRandomPlay drives many seeded games with arbitrary
// policies and checks the bounds that must hold after every turn.
func TestInvariantsUnderRandomPlay(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		s := NewSimulation(entropy.NewSeeded(seed))
		r := rand.New(rand.NewSource(seed))
		lever := func() float64 {
			if r.Float64() < 0.3 {
				return r.Float64() * 60
			}
			return 0
		}

		over := false
		for turn := 1; turn <= 60; turn++ {
			a := economy.Action{
				BondIssuance:    lever(),
				DebtRepayment:   lever(),
				Stimulus:        lever(),
				TaxCut:          lever(),
				PublicWorks:     lever(),
				RnDInvestment:   lever(),
				HousingSupply:   lever(),
				CurrencyDefense: lever(),
			}
			if r.Float64() < 0.2 {
				a.TaxRate = economy.Level(r.Float64()*140 - 20)
			}
			if r.Float64() < 0.2 {
				a.LTVDTIStrength = economy.Level(r.Float64() * 100)
			}

			s.ApplyPolicy(a)
			s.AdvanceTurn()
			st := s.State

			require.Equal(t, turn+1, st.Turn)
			require.GreaterOrEqual(t, st.ApprovalRating, 0.0)
			require.LessOrEqual(t, st.ApprovalRating, 100.0)
			require.GreaterOrEqual(t, st.UnemploymentRate, 0.0)
			require.LessOrEqual(t, st.UnemploymentRate, 10.0)
			require.GreaterOrEqual(t, st.ExchangeRate, 800.0)
			require.LessOrEqual(t, st.ExchangeRate, 2000.0)
			require.GreaterOrEqual(t, st.RealEstateIndex, 50.0)
			require.GreaterOrEqual(t, st.MoneyMultiplier, 2.0)
			require.GreaterOrEqual(t, st.InterestRate, 0.0)
			require.GreaterOrEqual(t, st.ForeignReserves, 0.0)
			require.GreaterOrEqual(t, st.NationalDebt, 0.0)
			require.GreaterOrEqual(t, st.GDP, 0.0)
			require.GreaterOrEqual(t, st.TaxRate, 0.0)
			require.LessOrEqual(t, st.TaxRate, 100.0)

			if st.CreditDowngraded {
				require.GreaterOrEqual(t, st.InterestRate, economy.DowngradeBaseRate)
			}
			if over {
				require.True(t, st.IsGameOver)
			}
			over = st.IsGameOver
			require.False(t, st.IsGameOver && st.IsVictory)
		}
	}
}

func eventsOf(s *Simulation, category string) []Event {
	var out []Event
	for _, e := range s.Events {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}
