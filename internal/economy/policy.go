package economy

import (
	"fmt"
	"math"
)

// PolicyKind identifies a budget-gated policy lever.
type PolicyKind uint8

const (
	PolicyDebtRepayment PolicyKind = iota
	PolicyStimulus
	PolicyTaxCut
	PolicyPublicWorks
	PolicyRnD
	PolicyHousingSupply
)

// BudgetedPolicies lists the gated levers in the order they are applied.
var BudgetedPolicies = []PolicyKind{
	PolicyDebtRepayment,
	PolicyStimulus,
	PolicyTaxCut,
	PolicyPublicWorks,
	PolicyRnD,
	PolicyHousingSupply,
}

// String returns the lever's wire name.
func (k PolicyKind) String() string {
	switch k {
	case PolicyDebtRepayment:
		return "debt_repayment"
	case PolicyStimulus:
		return "stimulus"
	case PolicyTaxCut:
		return "tax_cut"
	case PolicyPublicWorks:
		return "public_works"
	case PolicyRnD:
		return "rnd_investment"
	case PolicyHousingSupply:
		return "housing_supply"
	default:
		return "unknown"
	}
}

// Action is one turn's policy submission. Every field is optional: amounts
// default to zero (no-op) and nil levels keep the current setting.
type Action struct {
	BondIssuance    float64 `json:"bond_issuance,omitempty"`
	DebtRepayment   float64 `json:"debt_repayment,omitempty"`
	Stimulus        float64 `json:"stimulus,omitempty"`
	TaxCut          float64 `json:"tax_cut,omitempty"`
	PublicWorks     float64 `json:"public_works,omitempty"`
	RnDInvestment   float64 `json:"rnd_investment,omitempty"`
	HousingSupply   float64 `json:"housing_supply,omitempty"`
	CurrencyDefense float64 `json:"currency_defense,omitempty"`

	TaxRate        *float64 `json:"tax_rate,omitempty"`
	LTVDTIStrength *float64 `json:"ltv_dti_strength,omitempty"`
}

// Amount returns the requested amount for a gated lever.
func (a Action) Amount(kind PolicyKind) float64 {
	switch kind {
	case PolicyDebtRepayment:
		return a.DebtRepayment
	case PolicyStimulus:
		return a.Stimulus
	case PolicyTaxCut:
		return a.TaxCut
	case PolicyPublicWorks:
		return a.PublicWorks
	case PolicyRnD:
		return a.RnDInvestment
	case PolicyHousingSupply:
		return a.HousingSupply
	default:
		return 0
	}
}

// IsZero reports whether the action changes nothing.
func (a Action) IsZero() bool {
	return a == Action{}
}

// Level returns a pointer to v, for filling the level fields of an Action.
func Level(v float64) *float64 {
	return &v
}

// Validate rejects negative or non-finite amounts and levels outside [0, 100].
func (a Action) Validate() error {
	amounts := []struct {
		name string
		v    float64
	}{
		{"bond_issuance", a.BondIssuance},
		{PolicyDebtRepayment.String(), a.DebtRepayment},
		{PolicyStimulus.String(), a.Stimulus},
		{PolicyTaxCut.String(), a.TaxCut},
		{PolicyPublicWorks.String(), a.PublicWorks},
		{PolicyRnD.String(), a.RnDInvestment},
		{PolicyHousingSupply.String(), a.HousingSupply},
		{"currency_defense", a.CurrencyDefense},
	}
	for _, f := range amounts {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return fmt.Errorf("%s must be a non-negative number, got %v", f.name, f.v)
		}
	}

	levels := []struct {
		name string
		v    *float64
	}{
		{"tax_rate", a.TaxRate},
		{"ltv_dti_strength", a.LTVDTIStrength},
	}
	for _, f := range levels {
		if f.v == nil {
			continue
		}
		if math.IsNaN(*f.v) || *f.v < 0 || *f.v > 100 {
			return fmt.Errorf("%s must be between 0 and 100, got %v", f.name, *f.v)
		}
	}
	return nil
}
