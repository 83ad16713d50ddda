package trading

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
)

// ModifierType identifies the rule that produced a price modifier
type ModifierType string

const (
	ModifierPartialPurchase ModifierType = "partial_purchase"
	ModifierHaggle          ModifierType = "haggle"
	ModifierWealth          ModifierType = "wealth"
	ModifierDesperateSale   ModifierType = "desperate_sale"
	ModifierRumorPremium    ModifierType = "rumor_premium"
)

// Modifier is one line of a price breakdown
type Modifier struct {
	Type        ModifierType
	Description string
	Amount      decimal.Decimal // per unit, signed
	Percentage  int             // signed percentage relative to the price it was computed on
}

// PriceBreakdown is the full, auditable result of a price calculation.
//
// Invariant: FinalPricePerUnit == BasePricePerUnit + sum(Modifiers[i].Amount)
type PriceBreakdown struct {
	CargoName         string
	Season            shared.Season
	Quality           Quality
	Quantity          int // EP
	TotalUnits        int // ceil(Quantity / 10)
	BasePricePerUnit  decimal.Decimal
	FinalPricePerUnit decimal.Decimal
	TotalPrice        decimal.Decimal
	Modifiers         []Modifier
}

// ModifierTotal sums all modifier amounts
func (b *PriceBreakdown) ModifierTotal() decimal.Decimal {
	total := decimal.Zero
	for _, m := range b.Modifiers {
		total = total.Add(m.Amount)
	}
	return total
}

// Modifier returns the first modifier of the given type
func (b *PriceBreakdown) Modifier(t ModifierType) (Modifier, bool) {
	for _, m := range b.Modifiers {
		if m.Type == t {
			return m, true
		}
	}
	return Modifier{}, false
}

// TotalUnits converts EP into priced units: prices are quoted per 10 EP
func TotalUnits(quantity int) int {
	if quantity <= 0 {
		return 0
	}
	return (quantity + 9) / 10
}

// priceLine is an immutable, append-only accumulation of modifiers on top of a base price
type priceLine struct {
	base      decimal.Decimal
	current   decimal.Decimal
	modifiers []Modifier
}

func newPriceLine(base decimal.Decimal) priceLine {
	return priceLine{base: base, current: base}
}

// with returns a new line with m appended; the receiver is left untouched
func (l priceLine) with(m Modifier) priceLine {
	mods := make([]Modifier, len(l.modifiers), len(l.modifiers)+1)
	copy(mods, l.modifiers)
	return priceLine{
		base:      l.base,
		current:   roundMoney(l.current.Add(m.Amount)),
		modifiers: append(mods, m),
	}
}

// percentOf computes a modifier as pct percent of the given reference price
func percentOf(reference decimal.Decimal, pct int, t ModifierType, description string) Modifier {
	return Modifier{
		Type:        t,
		Description: description,
		Amount:      roundMoney(reference.Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100))),
		Percentage:  pct,
	}
}

// towards computes the modifier that moves from a reference price to a target price
func towards(reference, target decimal.Decimal, pct int, t ModifierType, description string) Modifier {
	return Modifier{
		Type:        t,
		Description: description,
		Amount:      roundMoney(target).Sub(reference),
		Percentage:  pct,
	}
}

func (l priceLine) breakdown(cargo *CargoType, season shared.Season, quality Quality, quantity int) PriceBreakdown {
	units := TotalUnits(quantity)
	return PriceBreakdown{
		CargoName:         cargo.Name,
		Season:            season,
		Quality:           ParseQuality(string(quality)),
		Quantity:          quantity,
		TotalUnits:        units,
		BasePricePerUnit:  l.base,
		FinalPricePerUnit: l.current,
		TotalPrice:        roundMoney(l.current.Mul(decimal.NewFromInt(int64(units)))),
		Modifiers:         l.modifiers,
	}
}

func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// percentageOfMultiplier turns 1.05 into +5, 0.5 into -50
func percentageOfMultiplier(mult decimal.Decimal) int {
	return int(mult.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}
