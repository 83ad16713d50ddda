package trading

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
)

const (
	partialPurchasePercent = 10
	desperateSalePercent   = -50
)

var desperateMultiplier = decimal.RequireFromString("0.5")

// PurchaseModifiers are the optional purchase-side adjustments
type PurchaseModifiers struct {
	PartialPurchase bool
	Haggle          *HaggleOutcome
}

// SpecialSaleOffer is the result of a desperate or rumor sale evaluation.
// Available=false is a business outcome, never an error.
type SpecialSaleOffer struct {
	Available          bool
	Reason             string
	PricePerUnit       decimal.Decimal
	NormalPricePerUnit decimal.Decimal // wealth-adjusted reference consumers compare against
	TotalUnits         int
	TotalOffer         decimal.Decimal
	Breakdown          *PriceBreakdown
}

func unavailable(reason string) *SpecialSaleOffer {
	return &SpecialSaleOffer{Available: false, Reason: reason}
}

// CalculatePurchasePrice prices buying quantity EP of cargo.
// Every purchase modifier is computed against the base price and the amounts are summed.
func CalculatePurchasePrice(cargo *CargoType, quantity int, season shared.Season, quality Quality, mods PurchaseModifiers) (*PriceBreakdown, error) {
	if cargo == nil {
		return nil, ErrCargoRequired
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	base, err := cargo.BasePrice(season, quality)
	if err != nil {
		return nil, err
	}

	line := newPriceLine(base)
	if mods.PartialPurchase {
		line = line.with(percentOf(base, partialPurchasePercent, ModifierPartialPurchase,
			fmt.Sprintf("Partial purchase penalty (+%d%%)", partialPurchasePercent)))
	}
	if pct := mods.Haggle.Percent(); pct > 0 {
		line = line.with(percentOf(base, -pct, ModifierHaggle, mods.Haggle.describe("purchase", -pct)))
	}

	b := line.breakdown(cargo, season, quality, quantity)
	return &b, nil
}

// CalculateSalePrice prices selling quantity EP of cargo at a settlement of the given wealth.
// Sale modifiers chain: wealth adjusts the base price, then haggle adjusts the wealth-adjusted price.
func CalculateSalePrice(cargo *CargoType, quantity int, season shared.Season, quality Quality, wealthRank int, haggle *HaggleOutcome) (*PriceBreakdown, error) {
	if cargo == nil {
		return nil, ErrCargoRequired
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	base, err := cargo.BasePrice(season, quality)
	if err != nil {
		return nil, err
	}
	wealthMod, err := WealthModifier(wealthRank)
	if err != nil {
		return nil, err
	}

	adjusted := roundMoney(base.Mul(wealthMod))
	line := newPriceLine(base).with(towards(base, adjusted, percentageOfMultiplier(wealthMod), ModifierWealth,
		fmt.Sprintf("%s settlement wealth (x%s)", WealthLabel(wealthRank), wealthMod.StringFixed(2))))

	if pct := haggle.Percent(); pct > 0 {
		haggled := roundMoney(adjusted.Mul(decimal.NewFromInt(int64(100 + pct))).Div(decimal.NewFromInt(100)))
		line = line.with(towards(adjusted, haggled, pct, ModifierHaggle, haggle.describe("sale", pct)))
	}

	b := line.breakdown(cargo, season, quality, quantity)
	return &b, nil
}

// EvaluateDesperateSale offers half the base price per unit, ignoring settlement wealth.
// Only Trade settlements take desperate sales.
func EvaluateDesperateSale(settlement *Settlement, cargo *CargoType, quantity int, season shared.Season, quality Quality) (*SpecialSaleOffer, error) {
	if err := validateSpecialSale(settlement, cargo, quantity, season); err != nil {
		return nil, err
	}
	if !settlement.IsTrade() {
		return unavailable(fmt.Sprintf("%s is %s", settlement.Name, ReasonNotTradeSettlement)), nil
	}

	base, err := cargo.BasePrice(season, quality)
	if err != nil {
		return nil, err
	}
	normal, err := wealthAdjusted(base, settlement.WealthRank)
	if err != nil {
		return nil, err
	}

	line := newPriceLine(base).with(towards(base, base.Mul(desperateMultiplier), desperateSalePercent,
		ModifierDesperateSale, "Desperate sale (half base price)"))
	b := line.breakdown(cargo, season, quality, quantity)
	return offerFrom(&b, normal), nil
}

// EvaluateRumorSale offers base x rumor multiplier when the rumor names this settlement and cargo.
// The premium bypasses the wealth modifier; the normal reference price does not.
func EvaluateRumorSale(settlement *Settlement, cargo *CargoType, quantity int, season shared.Season, quality Quality, rumor *Rumor) (*SpecialSaleOffer, error) {
	if err := validateSpecialSale(settlement, cargo, quantity, season); err != nil {
		return nil, err
	}
	if reason := rumor.unavailableReason(settlement.Name, cargo.Name); reason != "" {
		return unavailable(reason), nil
	}

	base, err := cargo.BasePrice(season, quality)
	if err != nil {
		return nil, err
	}
	normal, err := wealthAdjusted(base, settlement.WealthRank)
	if err != nil {
		return nil, err
	}

	mult := decimal.NewFromFloat(rumor.Multiplier)
	line := newPriceLine(base).with(towards(base, base.Mul(mult), percentageOfMultiplier(mult),
		ModifierRumorPremium, fmt.Sprintf("Rumor premium: %s (x%s)", rumor.Description, mult.String())))
	b := line.breakdown(cargo, season, quality, quantity)
	return offerFrom(&b, normal), nil
}

func offerFrom(b *PriceBreakdown, normal decimal.Decimal) *SpecialSaleOffer {
	return &SpecialSaleOffer{
		Available:          true,
		PricePerUnit:       b.FinalPricePerUnit,
		NormalPricePerUnit: normal,
		TotalUnits:         b.TotalUnits,
		TotalOffer:         b.TotalPrice,
		Breakdown:          b,
	}
}

func wealthAdjusted(base decimal.Decimal, wealthRank int) (decimal.Decimal, error) {
	mod, err := WealthModifier(wealthRank)
	if err != nil {
		return decimal.Zero, err
	}
	return roundMoney(base.Mul(mod)), nil
}

func validateSpecialSale(settlement *Settlement, cargo *CargoType, quantity int, season shared.Season) error {
	if settlement == nil {
		return ErrSettlementRequired
	}
	if cargo == nil {
		return ErrCargoRequired
	}
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	return validateSeason(season)
}
