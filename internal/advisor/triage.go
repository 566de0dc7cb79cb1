package advisor

import "github.com/talgya/macro-sim/internal/economy"

// Crisis levels, most severe first.
const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
	LevelWatch    = "WATCH"
	LevelHealthy  = "HEALTHY"
)

// Health holds diagnostic signals derived from a snapshot.
// Runs before any rule fires; deterministic and free.
type Health struct {
	Overheating   bool // inflation above the pain ceiling
	Slump         bool // growth under 1%
	DebtStress    bool // debt above 90% of GDP, or downgraded
	HousingBubble bool
	WeakCurrency  bool
	Unpopular     bool // approval under 35
	CrisisLevel   string
}

// Triage computes a Health from the snapshot.
func Triage(snap economy.Snapshot) Health {
	h := Health{
		Overheating:   snap.InflationRate > economy.InflationPainCeiling,
		Slump:         snap.GDPGrowthRate < 1,
		DebtStress:    snap.DebtToGDP > 90 || snap.CreditDowngraded,
		HousingBubble: snap.RealEstateIndex > 115,
		WeakCurrency:  snap.ExchangeRate > 1500,
		Unpopular:     snap.ApprovalRating < 35,
	}

	switch {
	case snap.ApprovalRating < 15 || snap.CreditDowngraded:
		h.CrisisLevel = LevelCritical
	case h.Unpopular || h.DebtStress || snap.InflationRate > 6:
		h.CrisisLevel = LevelWarning
	case h.Overheating || h.Slump || h.HousingBubble || h.WeakCurrency:
		h.CrisisLevel = LevelWatch
	default:
		h.CrisisLevel = LevelHealthy
	}
	return h
}
