// Market update: the turn-advance pipeline.
// Stages run in a fixed order; later stages read what earlier ones just wrote.
package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/talgya/macro-sim/internal/economy"
)

// AdvanceTurn runs one full market update and moves the turn counter forward.
func (s *Simulation) AdvanceTurn() {
	s.State.InnovationTriggered = false

	s.collectFiscalFlows()
	moneyGrowth := s.updateInflation()
	s.respondInterestRate()
	s.repriceCreditRisk()
	s.updateMoneyMultiplier()
	s.processInnovation()
	s.adjustApproval()
	tradeBonus := s.updateTrade()
	s.updateRealEstate()
	s.updateUnemployment()
	s.growGDP(moneyGrowth, tradeBonus)
	s.driftPopulation()
	s.closeTurn()
}

// closeTurn clamps approval, refreshes derived indicators, checks the
// terminal conditions and increments the turn.
func (s *Simulation) closeTurn() {
	st := s.State

	st.ApprovalRating = clamp(st.ApprovalRating, economy.MinApproval, economy.MaxApproval)

	// Real purchasing power erodes by the quarterly share of annual inflation.
	st.RealPurchasingPower /= 1 + (st.InflationRate/4)/100

	st.InflationChange = st.InflationRate - st.PrevInflationRate
	st.InterestChange = st.InterestRate - st.PrevInterestRate
	st.ApprovalChange = st.ApprovalRating - st.PrevApprovalRating
	st.RealPurchasingPowerChange = st.RealPurchasingPower - st.PrevRealPurchasingPower
	st.DebtGrowthRate = 0
	if st.PrevNationalDebt > 0 {
		st.DebtGrowthRate = (st.NationalDebt - st.PrevNationalDebt) / st.PrevNationalDebt * 100
	}

	st.PrevInflationRate = st.InflationRate
	st.PrevInterestRate = st.InterestRate
	st.PrevApprovalRating = st.ApprovalRating
	st.PrevNationalDebt = st.NationalDebt
	st.PrevRealPurchasingPower = st.RealPurchasingPower
	st.PrevMoneySupply = st.MoneySupply

	if !st.IsGameOver && st.ApprovalRating < economy.GameOverApproval {
		st.IsGameOver = true
		s.EmitEvent(CategoryOutcome,
			fmt.Sprintf("approval collapsed to %.1f; the government has fallen", st.ApprovalRating),
			map[string]any{"approval": st.ApprovalRating},
		)
		slog.Warn("game over", "game_id", s.GameID, "turn", st.Turn, "approval", st.ApprovalRating)
	}

	wasVictory := st.IsVictory
	st.IsVictory = st.Turn >= economy.VictoryTurn && !st.IsGameOver
	if st.IsVictory && !wasVictory {
		s.EmitEvent(CategoryOutcome,
			fmt.Sprintf("the government survived %d quarters", st.Turn),
			map[string]any{"approval": st.ApprovalRating},
		)
		slog.Info("victory", "game_id", s.GameID, "turn", st.Turn, "approval", st.ApprovalRating)
	}

	slog.Info("turn complete",
		"turn", st.Turn,
		"gdp", fmt.Sprintf("%.1f", st.GDP),
		"growth", fmt.Sprintf("%.2f", st.GDPGrowthRate),
		"inflation", fmt.Sprintf("%.2f", st.InflationRate),
		"rate", fmt.Sprintf("%.2f", st.InterestRate),
		"approval", fmt.Sprintf("%.1f", st.ApprovalRating),
		"budget", fmt.Sprintf("%.1f", st.Budget),
	)

	st.Turn++
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
