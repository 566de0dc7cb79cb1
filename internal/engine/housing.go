package engine

import (
	"math"

	"github.com/talgya/macro-sim/internal/economy"
)

// updateRealEstate moves the housing index and charges approval for bubbles.
func (s *Simulation) updateRealEstate() {
	st := s.State

	delta := -(st.InterestRate-economy.NeutralInterestRate)*economy.RealEstateRateSlope +
		st.InflationRate*economy.RealEstateInflSlope +
		s.noise(economy.RealEstateNoise) -
		st.LTVDTIStrength*economy.RegulationHousingSlope
	st.RealEstateIndex = math.Max(economy.MinRealEstateIndex, st.RealEstateIndex+delta)

	if st.RealEstateIndex > economy.RealEstateCeiling {
		st.ApprovalRating -= (st.RealEstateIndex - economy.RealEstateCeiling) * economy.RealEstateApprovalSlope
	}
}
