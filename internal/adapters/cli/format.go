package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/trading-engine-go/internal/application/trading/services"
	"github.com/andrescamacho/trading-engine-go/internal/domain/merchant"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// printBreakdown renders a price breakdown with one line per modifier
func printBreakdown(w io.Writer, b *trading.PriceBreakdown) {
	fmt.Fprintf(w, "%s (%s quality, %s)\n", b.CargoName, b.Quality, b.Season.Title())
	fmt.Fprintf(w, "  Base price:     %s per unit\n", money(b.BasePricePerUnit))
	for _, m := range b.Modifiers {
		sign := ""
		if m.Amount.IsPositive() {
			sign = "+"
		}
		fmt.Fprintf(w, "  %-15s %s%s (%s)\n", string(m.Type)+":", sign, money(m.Amount), m.Description)
	}
	fmt.Fprintf(w, "  Final price:    %s per unit\n", money(b.FinalPricePerUnit))
	fmt.Fprintf(w, "  Quantity:       %d EP (%d units)\n", b.Quantity, b.TotalUnits)
	fmt.Fprintf(w, "  Total:          %s\n", money(b.TotalPrice))
}

func printOffer(w io.Writer, label string, offer *trading.SpecialSaleOffer) {
	if !offer.Available {
		fmt.Fprintf(w, "%s unavailable: %s\n", label, offer.Reason)
		return
	}
	fmt.Fprintf(w, "%s: %s per unit (normal %s), %d units, total %s\n",
		label, money(offer.PricePerUnit), money(offer.NormalPricePerUnit), offer.TotalUnits, money(offer.TotalOffer))
}

func printMerchant(w io.Writer, m *merchant.Merchant) {
	fmt.Fprintf(w, "%s (%s)\n", m.Name, m.ID)
	fmt.Fprintf(w, "  Personality:    %s - %s\n", m.Personality, m.Description)
	fmt.Fprintf(w, "  Haggle skill:   %d (%s, base %d)\n", m.HagglingSkill, m.SkillDescription, m.BaseSkill)
	fmt.Fprintf(w, "  Price variance: %.0f%%, quantity variance %.0f%%\n", m.PriceVariance*100, m.QuantityVariance*100)
	if len(m.SpecialBehaviors) > 0 {
		fmt.Fprintf(w, "  Behaviours:     %s\n", strings.Join(m.SpecialBehaviors, "; "))
	}
}

func printSellResult(w io.Writer, r *services.SellResult) {
	fmt.Fprintf(w, "Sale outcome: %s (%s path)\n", r.Outcome, r.Path)
	if r.Reason != "" {
		fmt.Fprintf(w, "  Reason:         %s\n", r.Reason)
	}
	if r.Restricted {
		fmt.Fprintf(w, "  Village limit:  %d EP\n", r.AllowedQuantity)
	}
	if r.BuyerChance > 0 {
		fmt.Fprintf(w, "  Buyer search:   rolled %d against %d%%\n", r.BuyerRoll, r.BuyerChance)
	}
	if r.PartialSaleOffered {
		fmt.Fprintf(w, "  A buyer will take %d EP if you sell half\n", r.PartialSaleQuantity)
	}
	if r.Merchant != nil {
		printMerchant(w, r.Merchant)
	}
	if r.Breakdown != nil {
		printBreakdown(w, r.Breakdown)
	}
}
