package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/talgya/macro-sim/internal/economy"
)

// policyEffect is the state transition of one gated lever, run only after the
// budget check passed.
type policyEffect func(st *economy.State, amount float64)

// policyEffects maps each budget-gated lever to its transition.
var policyEffects = map[economy.PolicyKind]policyEffect{
	economy.PolicyDebtRepayment: repayDebt,
	economy.PolicyStimulus:      applyStimulus,
	economy.PolicyTaxCut:        applyTaxCut,
	economy.PolicyPublicWorks:   applyPublicWorks,
	economy.PolicyRnD:           applyRnD,
	economy.PolicyHousingSupply: applyHousingSupply,
}

// ApplyPolicy applies one turn's policy submission to the state.
// It never fails: unaffordable levers are skipped and reported as events.
func (s *Simulation) ApplyPolicy(a economy.Action) {
	st := s.State

	// Transient accumulators never carry over turns.
	st.GDPBonus = 0
	st.CurrencyDefenseEffect = 0

	// Bonds fund the budget, so they go first and are never gated.
	if a.BondIssuance > 0 {
		st.Budget += a.BondIssuance
		st.NationalDebt += a.BondIssuance
	}

	for _, kind := range economy.BudgetedPolicies {
		amount := a.Amount(kind)
		if amount <= 0 || applyIfAffordable(st, amount, policyEffects[kind]) {
			continue
		}
		s.EmitEvent(CategoryPolicy,
			fmt.Sprintf("%s of %.1f skipped: budget %.1f is insufficient", kind, amount, st.Budget),
			map[string]any{"policy": kind.String(), "amount": amount, "budget": st.Budget},
		)
		slog.Info("policy skipped", "policy", kind.String(), "amount", amount, "budget", st.Budget)
	}

	s.defendCurrency(a.CurrencyDefense)

	if a.TaxRate != nil {
		st.TaxRate = clampLevel(*a.TaxRate)
	}
	if a.LTVDTIStrength != nil {
		st.LTVDTIStrength = clampLevel(*a.LTVDTIStrength)
	}
}

// applyIfAffordable runs effect when amount is positive and the budget covers it.
// It reports whether the effect ran.
func applyIfAffordable(st *economy.State, amount float64, effect policyEffect) bool {
	if amount <= 0 || effect == nil {
		return false
	}
	if st.Budget < amount {
		return false
	}
	effect(st, amount)
	return true
}

func repayDebt(st *economy.State, amount float64) {
	paid := math.Min(amount, st.NationalDebt)
	st.Budget -= paid
	st.NationalDebt -= paid
}

func applyStimulus(st *economy.State, amount float64) {
	st.MoneySupply += amount * st.MoneyMultiplier
	st.ApprovalRating += amount * economy.StimulusApproval
	st.Budget -= amount
}

func applyTaxCut(st *economy.State, amount float64) {
	st.MoneySupply += amount * st.MoneyMultiplier * economy.TaxCutMoneyShare
	st.GDPBonus += amount * economy.TaxCutGrowth
	st.ApprovalRating += amount * economy.TaxCutApproval
	st.Budget -= amount
}

func applyPublicWorks(st *economy.State, amount float64) {
	st.MoneySupply += amount * st.MoneyMultiplier
	st.GDPBonus += amount * economy.PublicWorksGrowth
	st.ApprovalRating += amount * economy.PublicWorksApproval
	st.Budget -= amount
}

func applyRnD(st *economy.State, amount float64) {
	st.MoneySupply += amount * st.MoneyMultiplier
	st.GDPBonus += amount * economy.RnDGrowth
	st.ApprovalRating += amount * economy.RnDApproval
	st.Budget -= amount
	st.CumulativeRnD += amount
}

func applyHousingSupply(st *economy.State, amount float64) {
	st.RealEstateIndex -= amount * economy.HousingSupplyEffect
	st.Budget -= amount
}

// defendCurrency spends reserves to hold the exchange rate down this turn.
func (s *Simulation) defendCurrency(amount float64) {
	if amount <= 0 {
		return
	}
	st := s.State
	if st.ForeignReserves < amount {
		s.EmitEvent(CategoryPolicy,
			fmt.Sprintf("currency defense of %.1f skipped: reserves %.1f are insufficient", amount, st.ForeignReserves),
			map[string]any{"policy": "currency_defense", "amount": amount, "reserves": st.ForeignReserves},
		)
		slog.Info("policy skipped", "policy", "currency_defense", "amount", amount, "reserves", st.ForeignReserves)
		return
	}
	st.ForeignReserves -= amount
	st.CurrencyDefenseEffect += amount * economy.DefensePerReserveUnit
}

func clampLevel(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
