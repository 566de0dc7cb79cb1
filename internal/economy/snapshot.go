package economy

import "math"

// Snapshot is a read-only export of State for display. Money-sized values carry
// one decimal, rates and percentages two. Rounding happens here only.
type Snapshot struct {
	GameID string `json:"game_id,omitempty"`
	Turn   int    `json:"turn"`

	MoneySupply     float64 `json:"money_supply"`
	MoneyGrowthRate float64 `json:"money_growth_rate"`
	MoneyMultiplier float64 `json:"money_multiplier"`
	InflationRate   float64 `json:"inflation_rate"`
	InflationChange float64 `json:"inflation_change"`
	InterestRate    float64 `json:"interest_rate"`
	InterestChange  float64 `json:"interest_change"`

	GDP               float64 `json:"gdp"`
	GDPGrowthRate     float64 `json:"gdp_growth_rate"`
	GDPBonus          float64 `json:"gdp_bonus"`
	ProductivityBonus float64 `json:"productivity_bonus"`
	Population        int64   `json:"population"`

	Budget           float64 `json:"budget"`
	TaxRate          float64 `json:"tax_rate"`
	NationalDebt     float64 `json:"national_debt"`
	DebtGrowthRate   float64 `json:"debt_growth_rate"`
	DebtToGDP        float64 `json:"debt_to_gdp"`
	CumulativeRnD    float64 `json:"cumulative_rnd"`
	WelfareCost      float64 `json:"welfare_cost"`
	CreditDowngraded bool    `json:"credit_downgraded"`

	ExchangeRate          float64 `json:"exchange_rate"`
	Exports               float64 `json:"exports"`
	Imports               float64 `json:"imports"`
	TradeBalance          float64 `json:"trade_balance"`
	ForeignReserves       float64 `json:"foreign_reserves"`
	CurrencyDefenseEffect float64 `json:"currency_defense_effect"`

	RealEstateIndex  float64 `json:"real_estate_index"`
	LTVDTIStrength   float64 `json:"ltv_dti_strength"`
	UnemploymentRate float64 `json:"unemployment_rate"`

	RealPurchasingPower       float64 `json:"real_purchasing_power"`
	RealPurchasingPowerChange float64 `json:"real_purchasing_power_change"`

	ApprovalRating      float64 `json:"approval_rating"`
	ApprovalChange      float64 `json:"approval_change"`
	InnovationTriggered bool    `json:"innovation_triggered"`
	IsGameOver          bool    `json:"is_game_over"`
	IsVictory           bool    `json:"is_victory"`
}

// Snapshot exports the state, rounded for display.
func (s *State) Snapshot(gameID string) Snapshot {
	return Snapshot{
		GameID: gameID,
		Turn:   s.Turn,

		MoneySupply:     round1(s.MoneySupply),
		MoneyGrowthRate: round2(s.MoneyGrowthRate),
		MoneyMultiplier: round2(s.MoneyMultiplier),
		InflationRate:   round2(s.InflationRate),
		InflationChange: round2(s.InflationChange),
		InterestRate:    round2(s.InterestRate),
		InterestChange:  round2(s.InterestChange),

		GDP:               round1(s.GDP),
		GDPGrowthRate:     round2(s.GDPGrowthRate),
		GDPBonus:          round2(s.GDPBonus),
		ProductivityBonus: round2(s.ProductivityBonus),
		Population:        s.Population,

		Budget:           round1(s.Budget),
		TaxRate:          round2(s.TaxRate),
		NationalDebt:     round1(s.NationalDebt),
		DebtGrowthRate:   round2(s.DebtGrowthRate),
		DebtToGDP:        round2(s.DebtToGDP() * 100),
		CumulativeRnD:    round1(s.CumulativeRnD),
		WelfareCost:      round1(s.WelfareCost),
		CreditDowngraded: s.CreditDowngraded,

		ExchangeRate:          round1(s.ExchangeRate),
		Exports:               round1(s.Exports),
		Imports:               round1(s.Imports),
		TradeBalance:          round1(s.TradeBalance),
		ForeignReserves:       round1(s.ForeignReserves),
		CurrencyDefenseEffect: round1(s.CurrencyDefenseEffect),

		RealEstateIndex:  round1(s.RealEstateIndex),
		LTVDTIStrength:   round2(s.LTVDTIStrength),
		UnemploymentRate: round2(s.UnemploymentRate),

		RealPurchasingPower:       round1(s.RealPurchasingPower),
		RealPurchasingPowerChange: round2(s.RealPurchasingPowerChange),

		ApprovalRating:      round1(s.ApprovalRating),
		ApprovalChange:      round2(s.ApprovalChange),
		InnovationTriggered: s.InnovationTriggered,
		IsGameOver:          s.IsGameOver,
		IsVictory:           s.IsVictory,
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// Ended reports whether the snapshot shows a terminal outcome.
func (s Snapshot) Ended() bool {
	return s.IsGameOver || s.IsVictory
}
