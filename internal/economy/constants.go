package economy

// Fixed policy parameters of the model. These are part of the model itself,
// not runtime configuration.

// Central bank anchors.
const (
	// NeutralInterestRate is the rate at which the money multiplier sits at its default.
	NeutralInterestRate = 1.5

	// InflationTarget is the long-run inflation anchor (%).
	InflationTarget = 2.0

	// HikeThreshold triggers a +0.25 rate step when inflation exceeds it.
	HikeThreshold = 3.0

	// CutThreshold triggers a −0.25 rate step when inflation falls below it.
	CutThreshold = 1.0

	// RateStep is the size of one central-bank move (percentage points).
	RateStep = 0.25

	// MaxPolicyRate caps the normal rule. Credit repricing may exceed it.
	MaxPolicyRate = 10.0
)

// Money.
const (
	// MoneySupplyBaseline is the reference money stock for inflation pressure.
	MoneySupplyBaseline = 4000.0

	// MoneyPressureCoefficient converts relative money deviation into inflation points.
	MoneyPressureCoefficient = 20.0

	// InflationInertia is the weight kept from last turn's inflation.
	InflationInertia = 0.6

	// DefaultMoneyMultiplier is the multiplier at the neutral rate.
	DefaultMoneyMultiplier = 5.0

	// MultiplierRateSlope shrinks the multiplier per point above neutral.
	MultiplierRateSlope = 0.5

	// MinMoneyMultiplier floors credit creation.
	MinMoneyMultiplier = 2.0
)

// Credit risk.
const (
	DowngradeDebtRatio   = 1.0
	DowngradeBaseRate    = 15.0
	DowngradeRateSlope   = 20.0
	DowngradeApprovalHit = 5.0
	RateHikeApprovalHit  = 1.0
)

// Innovation.
const (
	InnovationThreshold     = 50.0
	InnovationProductivity  = 0.5
	InnovationApprovalBoost = 3.0
)

// Approval.
const (
	InflationPainCeiling = 4.0
	InflationPainSlope   = 2.0
	NeutralTaxRate       = 10.0
	TaxApprovalSlope     = 0.3
	GameOverApproval     = 5.0
	VictoryTurn          = 20
	MinApproval          = 0.0
	MaxApproval          = 100.0
)

// Trade and exchange rate.
const (
	BaseExchangeRate       = 1200.0
	MinExchangeRate        = 800.0
	MaxExchangeRate        = 2000.0
	ExchangeRateRateSlope  = 50.0
	ExchangeRateInflSlope  = 30.0
	ExchangeRateNoise      = 10.0
	TradeVolumeShare       = 0.2
	TradeGrowthCoefficient = 0.1
	DefensePerReserveUnit  = 5.0
)

// Real estate.
const (
	MinRealEstateIndex      = 50.0
	RealEstateCeiling       = 120.0
	RealEstateRateSlope     = 2.0
	RealEstateInflSlope     = 0.5
	RealEstateNoise         = 1.0
	RegulationHousingSlope  = 0.02
	RealEstateApprovalSlope = 0.2
)

// Labour.
const (
	BaseGrowth              = 2.0
	UnemploymentGrowthSlope = 0.3
	MinUnemployment         = 0.0
	MaxUnemployment         = 10.0
	UnemploymentPainFloor   = 5.0
	UnemploymentPainSlope   = 1.0
)

// GDP growth composition (percentage points per quarter).
const (
	MoneyGrowthCoefficient  = 0.1
	GrowthRateSlope         = 0.3
	GrowthInflationCeiling  = 5.0
	GrowthInflationSlope    = 0.5
	CapitalFlightTaxRate    = 20.0
	CapitalFlightSlope      = 0.1
	CapitalFlightApproval   = 0.2
	AgingPerTurn            = 0.02
	RegulationGrowthSlope   = 0.005
	TaxDeviationGrowthSlope = 0.05
	GrowthNoise             = 0.3
)

// Noise amplitudes and population drift.
const (
	InflationNoise     = 0.2
	PopulationDriftMax = 20.0
)

// Fiscal.
const (
	InterestSpread = 1.0
	WelfareBase    = 10.0
	WelfarePerTurn = 2.0
)

// Policy efficiencies: how much of each lever reaches money, growth and approval.
const (
	StimulusApproval    = 0.5
	TaxCutMoneyShare    = 0.4
	TaxCutGrowth        = 0.02
	TaxCutApproval      = 0.1
	PublicWorksGrowth   = 0.05
	PublicWorksApproval = 0.3
	RnDGrowth           = 0.08
	RnDApproval         = 0.1
	HousingSupplyEffect = 0.3
)
