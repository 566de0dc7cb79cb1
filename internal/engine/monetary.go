// Monetary block: inflation, the central-bank rule, credit risk and the
// money multiplier.
package engine

import (
	"fmt"
	"math"

	"github.com/talgya/macro-sim/internal/economy"
)

// updateInflation blends a money-driven target with last turn's inflation.
// It returns this turn's money growth (%), reused by the GDP stage.
func (s *Simulation) updateInflation() float64 {
	st := s.State

	moneyGrowth := 0.0
	if st.PrevMoneySupply > 0 {
		moneyGrowth = (st.MoneySupply - st.PrevMoneySupply) / st.PrevMoneySupply * 100
	}
	st.MoneyGrowthRate = moneyGrowth

	pressure := (st.MoneySupply/economy.MoneySupplyBaseline - 1) * economy.MoneyPressureCoefficient
	target := economy.InflationTarget + pressure + s.noise(economy.InflationNoise)
	st.InflationRate = st.InflationRate*economy.InflationInertia + target*(1-economy.InflationInertia)

	return moneyGrowth
}

// respondInterestRate applies the central bank's step rule.
func (s *Simulation) respondInterestRate() {
	st := s.State

	switch {
	case st.InflationRate > economy.HikeThreshold:
		st.InterestRate = math.Min(economy.MaxPolicyRate, st.InterestRate+economy.RateStep)
		st.ApprovalRating -= economy.RateHikeApprovalHit
		s.EmitEvent(CategoryMonetary,
			fmt.Sprintf("central bank raises rates to %.2f%% with inflation at %.2f%%", st.InterestRate, st.InflationRate),
			map[string]any{"rate": st.InterestRate, "inflation": st.InflationRate},
		)
	case st.InflationRate < economy.CutThreshold:
		st.InterestRate = math.Max(0, st.InterestRate-economy.RateStep)
		s.EmitEvent(CategoryMonetary,
			fmt.Sprintf("central bank cuts rates to %.2f%% with inflation at %.2f%%", st.InterestRate, st.InflationRate),
			map[string]any{"rate": st.InterestRate, "inflation": st.InflationRate},
		)
	}
}

// repriceCreditRisk flags a downgrade while debt exceeds GDP and forces the
// policy rate above the crisis floor, past the normal cap if need be.
func (s *Simulation) repriceCreditRisk() {
	st := s.State
	ratio := st.DebtToGDP()

	if ratio <= economy.DowngradeDebtRatio {
		if st.CreditDowngraded {
			s.EmitEvent(CategoryCredit, "sovereign rating restored", map[string]any{"debt_to_gdp": ratio})
		}
		st.CreditDowngraded = false
		return
	}

	if !st.CreditDowngraded {
		s.EmitEvent(CategoryCredit,
			fmt.Sprintf("sovereign rating downgraded with debt at %.0f%% of GDP", ratio*100),
			map[string]any{"debt_to_gdp": ratio},
		)
	}
	st.CreditDowngraded = true
	floor := economy.DowngradeBaseRate + (ratio-economy.DowngradeDebtRatio)*economy.DowngradeRateSlope
	st.InterestRate = math.Max(st.InterestRate, floor)
	st.ApprovalRating -= economy.DowngradeApprovalHit
}

// updateMoneyMultiplier compresses credit creation as rates rise.
func (s *Simulation) updateMoneyMultiplier() {
	st := s.State
	m := economy.DefaultMoneyMultiplier - (st.InterestRate-economy.NeutralInterestRate)*economy.MultiplierRateSlope
	st.MoneyMultiplier = math.Max(economy.MinMoneyMultiplier, m)
}
