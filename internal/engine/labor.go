package engine

import "github.com/talgya/macro-sim/internal/economy"

// updateUnemployment follows last turn's growth gap (Okun-style).
func (s *Simulation) updateUnemployment() {
	st := s.State

	u := st.UnemploymentRate - (st.GDPGrowthRate-economy.BaseGrowth)*economy.UnemploymentGrowthSlope
	st.UnemploymentRate = clamp(u, economy.MinUnemployment, economy.MaxUnemployment)

	if st.UnemploymentRate > economy.UnemploymentPainFloor {
		st.ApprovalRating -= (st.UnemploymentRate - economy.UnemploymentPainFloor) * economy.UnemploymentPainSlope
	}
}
