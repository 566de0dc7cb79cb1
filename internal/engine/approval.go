package engine

import "github.com/talgya/macro-sim/internal/economy"

// adjustApproval applies the inflation-pain and tax-level terms.
func (s *Simulation) adjustApproval() {
	st := s.State
	if st.InflationRate > economy.InflationPainCeiling {
		st.ApprovalRating -= (st.InflationRate - economy.InflationPainCeiling) * economy.InflationPainSlope
	}
	// Taxes above neutral cost approval, below neutral earn it.
	st.ApprovalRating -= (st.TaxRate - economy.NeutralTaxRate) * economy.TaxApprovalSlope
}
