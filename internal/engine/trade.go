// Trade and exchange-rate dynamics.
package engine

import (
	"math"

	"github.com/talgya/macro-sim/internal/economy"
)

// updateTrade moves the exchange rate, recomputes exports and imports, and
// books the reserve change. It returns the trade contribution to GDP growth.
func (s *Simulation) updateTrade() float64 {
	st := s.State

	rate := economy.BaseExchangeRate -
		(st.InterestRate-economy.NeutralInterestRate)*economy.ExchangeRateRateSlope +
		(st.InflationRate-economy.InflationTarget)*economy.ExchangeRateInflSlope +
		s.noise(economy.ExchangeRateNoise) -
		st.CurrencyDefenseEffect
	st.ExchangeRate = clamp(rate, economy.MinExchangeRate, economy.MaxExchangeRate)

	// A weaker currency (higher rate) lifts exports and cuts imports.
	competitiveness := math.Sqrt(st.ExchangeRate / economy.BaseExchangeRate)
	volume := st.GDP * economy.TradeVolumeShare
	st.Exports = volume * competitiveness
	st.Imports = volume / competitiveness
	st.TradeBalance = st.Exports - st.Imports

	// Net exports in local currency convert into reserve-currency units.
	st.ForeignReserves = math.Max(0, st.ForeignReserves+st.TradeBalance*1000/st.ExchangeRate)

	if st.GDP <= 0 {
		return 0
	}
	return st.TradeBalance / st.GDP * 100 * economy.TradeGrowthCoefficient
}
