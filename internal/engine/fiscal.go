package engine

import "github.com/talgya/macro-sim/internal/economy"

// collectFiscalFlows books this turn's automatic revenue and spending.
func (s *Simulation) collectFiscalFlows() {
	st := s.State

	taxRevenue := st.GDP * (st.TaxRate / 100)
	interestPayment := st.NationalDebt * ((st.InterestRate + economy.InterestSpread) / 100)
	st.WelfareCost = economy.WelfareBase + float64(st.Turn)*economy.WelfarePerTurn

	st.Budget += taxRevenue
	st.Budget -= interestPayment
	st.Budget -= st.WelfareCost
}
