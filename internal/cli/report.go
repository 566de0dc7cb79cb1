package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/talgya/macro-sim/internal/economy"
)

func money(v float64) string {
	return humanize.FormatFloat("#,###.#", v)
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func signed(v float64) string {
	return fmt.Sprintf("%+.2f", v)
}

// writeReport prints a full quarterly report.
func writeReport(w io.Writer, snap economy.Snapshot) {
	fmt.Fprintf(w, "── Quarter %d ─────────────────────────────\n", snap.Turn)
	fmt.Fprintf(w, "  GDP            %s (growth %s)\n", money(snap.GDP), pct(snap.GDPGrowthRate))
	fmt.Fprintf(w, "  Population     %s\n", humanize.Comma(snap.Population*1000))
	fmt.Fprintf(w, "  Unemployment   %s\n", pct(snap.UnemploymentRate))
	fmt.Fprintf(w, "  Inflation      %s (%s)\n", pct(snap.InflationRate), signed(snap.InflationChange))
	fmt.Fprintf(w, "  Policy rate    %s (%s)\n", pct(snap.InterestRate), signed(snap.InterestChange))
	fmt.Fprintf(w, "  Money supply   %s (×%.2f)\n", money(snap.MoneySupply), snap.MoneyMultiplier)
	fmt.Fprintf(w, "  Budget         %s (tax %s, welfare %s)\n", money(snap.Budget), pct(snap.TaxRate), money(snap.WelfareCost))
	fmt.Fprintf(w, "  National debt  %s (%s of GDP)\n", money(snap.NationalDebt), pct(snap.DebtToGDP))
	fmt.Fprintf(w, "  Exchange rate  %s  reserves %s\n", money(snap.ExchangeRate), money(snap.ForeignReserves))
	fmt.Fprintf(w, "  Trade          exports %s  imports %s\n", money(snap.Exports), money(snap.Imports))
	fmt.Fprintf(w, "  Housing index  %s (LTV/DTI %.0f)\n", money(snap.RealEstateIndex), snap.LTVDTIStrength)
	fmt.Fprintf(w, "  Purchasing pwr %s\n", money(snap.RealPurchasingPower))
	fmt.Fprintf(w, "  Approval       %.1f (%+.1f)\n", snap.ApprovalRating, snap.ApprovalChange)

	var flags []string
	if snap.CreditDowngraded {
		flags = append(flags, "CREDIT DOWNGRADED")
	}
	if snap.InnovationTriggered {
		flags = append(flags, "INNOVATION")
	}
	if snap.IsGameOver {
		flags = append(flags, "GAME OVER")
	}
	if snap.IsVictory {
		flags = append(flags, "VICTORY")
	}
	if len(flags) > 0 {
		fmt.Fprintf(w, "  ** %s **\n", strings.Join(flags, ", "))
	}
}

// writeSummaryLine prints one line per turn for batch runs.
func writeSummaryLine(w io.Writer, snap economy.Snapshot) {
	fmt.Fprintf(w, "Q%-3d gdp %10s  growth %6s  infl %6s  rate %6s  approval %5.1f  budget %9s\n",
		snap.Turn, money(snap.GDP), pct(snap.GDPGrowthRate), pct(snap.InflationRate),
		pct(snap.InterestRate), snap.ApprovalRating, money(snap.Budget))
}

func outcome(snap economy.Snapshot) string {
	switch {
	case snap.IsGameOver:
		return "game over: the government fell"
	case snap.IsVictory:
		return "victory: the government survived"
	default:
		return "in progress"
	}
}
