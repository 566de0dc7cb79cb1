// Package economy defines the state model, policy actions, and exported snapshots
// of the macroeconomic simulator.
package economy

// State is the single mutable record of the economy at a point in time.
// It is mutated in place once per turn by policy application and then by the
// market update; everything else only reads snapshots of it.
type State struct {
	// Monetary.
	MoneySupply     float64
	PrevMoneySupply float64
	MoneyMultiplier float64
	InflationRate   float64
	InterestRate    float64

	// Real economy.
	GDP               float64
	GDPGrowthRate     float64
	GDPBonus          float64 // transient, reset each policy application
	ProductivityBonus float64 // permanent, accumulates from innovation
	Population        int64   // thousands

	// Fiscal.
	Budget           float64
	TaxRate          float64
	NationalDebt     float64
	CumulativeRnD    float64
	WelfareCost      float64
	CreditDowngraded bool

	// External.
	ExchangeRate          float64
	Exports               float64
	Imports               float64
	TradeBalance          float64
	ForeignReserves       float64
	CurrencyDefenseEffect float64 // transient

	// Housing and labour.
	RealEstateIndex  float64
	LTVDTIStrength   float64
	UnemploymentRate float64

	// Meta.
	ApprovalRating      float64
	Turn                int
	IsGameOver          bool
	IsVictory           bool
	InnovationTriggered bool

	// Derived indicators, display only.
	MoneyGrowthRate           float64
	InflationChange           float64
	InterestChange            float64
	ApprovalChange            float64
	RealPurchasingPower       float64
	RealPurchasingPowerChange float64
	DebtGrowthRate            float64

	PrevInflationRate       float64
	PrevInterestRate        float64
	PrevApprovalRating      float64
	PrevNationalDebt        float64
	PrevRealPurchasingPower float64
}

// NewState returns the economy at the start of a game.
func NewState() *State {
	return &State{
		MoneySupply:     MoneySupplyBaseline,
		PrevMoneySupply: MoneySupplyBaseline,
		MoneyMultiplier: DefaultMoneyMultiplier,
		InflationRate:   InflationTarget,
		InterestRate:    NeutralInterestRate,

		GDP:           2200.0,
		GDPGrowthRate: BaseGrowth,
		Population:    51700,

		Budget:       100.0,
		TaxRate:      NeutralTaxRate,
		NationalDebt: 1000.0,

		ExchangeRate:    BaseExchangeRate,
		Exports:         440.0,
		Imports:         440.0,
		ForeignReserves: 410.0,

		RealEstateIndex:  100.0,
		LTVDTIStrength:   50.0,
		UnemploymentRate: 3.0,

		ApprovalRating: 60.0,
		Turn:           1,

		RealPurchasingPower: 100.0,

		PrevInflationRate:       InflationTarget,
		PrevInterestRate:        NeutralInterestRate,
		PrevApprovalRating:      60.0,
		PrevNationalDebt:        1000.0,
		PrevRealPurchasingPower: 100.0,
	}
}

// DebtToGDP returns national debt over GDP, or 0 when GDP is not positive.
func (s *State) DebtToGDP() float64 {
	if s.GDP <= 0 {
		return 0
	}
	return s.NationalDebt / s.GDP
}

// Ended reports whether the game has reached a terminal outcome.
func (s *State) Ended() bool {
	return s.IsGameOver || s.IsVictory
}
