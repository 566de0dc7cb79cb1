package engine

import (
	"math"

	"github.com/talgya/macro-sim/internal/economy"
)

// growGDP composes this turn's growth rate and applies it to GDP.
func (s *Simulation) growGDP(moneyGrowth, tradeBonus float64) {
	st := s.State

	g := economy.BaseGrowth
	g += moneyGrowth * economy.MoneyGrowthCoefficient
	g -= (st.InterestRate - economy.NeutralInterestRate) * economy.GrowthRateSlope

	if st.InflationRate > economy.GrowthInflationCeiling {
		g -= (st.InflationRate - economy.GrowthInflationCeiling) * economy.GrowthInflationSlope
	}

	// Capital flight above the tax ceiling also costs approval.
	if st.TaxRate > economy.CapitalFlightTaxRate {
		excess := st.TaxRate - economy.CapitalFlightTaxRate
		g -= excess * economy.CapitalFlightSlope
		st.ApprovalRating -= excess * economy.CapitalFlightApproval
	}

	g -= float64(st.Turn) * economy.AgingPerTurn
	g -= st.LTVDTIStrength * economy.RegulationGrowthSlope
	g += st.GDPBonus
	g += (economy.NeutralTaxRate - st.TaxRate) * economy.TaxDeviationGrowthSlope
	g += st.ProductivityBonus
	g += tradeBonus
	g += s.noise(economy.GrowthNoise)

	st.GDPGrowthRate = g
	if st.GDP > 0 {
		// A collapse past −100% leaves GDP at zero rather than negative.
		st.GDP = math.Max(0, st.GDP*(1+g/100))
	}
}

// driftPopulation nudges population by a small random amount (thousands).
func (s *Simulation) driftPopulation() {
	s.State.Population += int64(math.Round(s.noise(economy.PopulationDriftMax)))
}
