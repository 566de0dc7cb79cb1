package advisor

import (
	"fmt"
	"math"
	"strings"

	"github.com/talgya/macro-sim/internal/economy"
)

// Decision is the advisor's recommended action for one turn.
type Decision struct {
	Action    economy.Action `json:"action"`
	Rationale string         `json:"rationale"`
	Health    Health         `json:"health"`
}

// purse tracks what is left to spend as levers are filled in the order the
// engine applies them, so no lever is ever skipped for lack of funds.
type purse struct {
	budget   float64
	reserves float64
}

func (p *purse) spend(want float64) float64 {
	amt := math.Max(0, math.Min(want, p.budget))
	p.budget -= amt
	return math.Floor(amt)
}

func (p *purse) defend(want float64) float64 {
	amt := math.Max(0, math.Min(want, p.reserves))
	p.reserves -= amt
	return math.Floor(amt)
}

// Decide picks an action from fixed rules. The result always validates and
// never asks for more than the budget or reserves can cover.
func Decide(snap economy.Snapshot) Decision {
	h := Triage(snap)
	d := Decision{Health: h}
	var why []string

	if snap.Ended() {
		d.Rationale = "game has ended; holding"
		return d
	}

	// Snapshot values are rounded; keep a unit of slack.
	p := &purse{budget: snap.Budget - 1, reserves: snap.ForeignReserves - 1}
	a := &d.Action

	// Borrow only when the books are thin and credit is still good.
	if p.budget < 30 && !h.DebtStress {
		a.BondIssuance = 50
		p.budget += a.BondIssuance
		why = append(why, "issue bonds to fund the turn")
	}

	// Levers are filled in application order.
	if h.DebtStress {
		a.DebtRepayment = p.spend(math.Min(p.budget*0.5, snap.NationalDebt))
		if a.DebtRepayment > 0 {
			why = append(why, "repay debt to restore credit")
		}
	}

	if !h.Overheating && snap.InflationRate < economy.HikeThreshold {
		if h.Unpopular {
			a.Stimulus = p.spend(math.Min(p.budget*0.3, 50))
			if a.Stimulus > 0 {
				why = append(why, "stimulus to win back approval")
			}
		}
		if h.Slump {
			a.PublicWorks = p.spend(math.Min(p.budget*0.3, 60))
			if a.PublicWorks > 0 {
				why = append(why, "public works against the slump")
			}
		}
	} else {
		why = append(why, "hold money-creating levers while inflation runs hot")
	}

	if p.budget > 40 {
		a.RnDInvestment = p.spend(20)
		why = append(why, "steady research spending")
	}

	if h.HousingBubble {
		a.HousingSupply = p.spend(20)
		a.LTVDTIStrength = economy.Level(math.Min(100, snap.LTVDTIStrength+10))
		why = append(why, "cool housing")
	}

	if h.WeakCurrency {
		a.CurrencyDefense = p.defend(20)
		if a.CurrencyDefense > 0 {
			why = append(why, "defend the currency")
		}
	}

	switch {
	case snap.Budget < 0 && snap.ApprovalRating > 50 && snap.TaxRate < 20:
		a.TaxRate = economy.Level(math.Min(20, snap.TaxRate+2))
		why = append(why, "raise taxes to close the deficit")
	case h.Unpopular && snap.TaxRate > 8:
		a.TaxRate = economy.Level(math.Max(0, snap.TaxRate-1))
		why = append(why, "trim taxes for approval")
	}

	if len(why) == 0 {
		why = append(why, "economy healthy; no action")
	}
	d.Rationale = fmt.Sprintf("[%s] %s", h.CrisisLevel, strings.Join(why, "; "))
	return d
}
