package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

// tradeFlags holds the cargo options shared by price, buy and sell
type tradeFlags struct {
	cargo     string
	quantity  int
	quality   string
	haggle    string
	dealmaker bool
}

func (f *tradeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.cargo, "cargo", "", "Cargo type (required)")
	cmd.Flags().IntVar(&f.quantity, "quantity", 0, "Quantity in EP (required)")
	cmd.Flags().StringVar(&f.quality, "quality", "average", "Quality tier")
	cmd.Flags().StringVar(&f.haggle, "haggle", "", "Haggle test result: success or fail")
	cmd.Flags().BoolVar(&f.dealmaker, "dealmaker", false, "Haggler has the Dealmaker talent")
	cmd.MarkFlagRequired("cargo")
	cmd.MarkFlagRequired("quantity")
}

// haggleOutcome converts --haggle and --dealmaker; no --haggle means no haggle was attempted
func (f *tradeFlags) haggleOutcome() (*trading.HaggleOutcome, error) {
	switch strings.ToLower(strings.TrimSpace(f.haggle)) {
	case "":
		return nil, nil
	case "success", "succeeded", "won":
		return &trading.HaggleOutcome{Success: true, HasDealmakerTalent: f.dealmaker}, nil
	case "fail", "failed", "lost":
		return &trading.HaggleOutcome{Success: false, HasDealmakerTalent: f.dealmaker}, nil
	default:
		return nil, shared.NewValidationError("haggle", fmt.Sprintf("unknown haggle result %q: use success or fail", f.haggle))
	}
}

// rumorFlags describe a rumor passed on the command line
type rumorFlags struct {
	kind        string
	description string
	multiplier  float64
}

func (f *rumorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.kind, "rumor-type", "shortage", "Rumor type")
	cmd.Flags().StringVar(&f.description, "rumor", "", "Rumor description")
	cmd.Flags().Float64Var(&f.multiplier, "multiplier", 0, "Rumor price multiplier")
}

func (f *rumorFlags) set() bool {
	return f.multiplier != 0 || f.description != ""
}

// rumor builds a rumor for the sale being made; the engine binds it to the
// canonical settlement and cargo names
func (f *rumorFlags) rumor() *trading.Rumor {
	return &trading.Rumor{
		Type:        f.kind,
		Description: f.description,
		Multiplier:  f.multiplier,
	}
}
