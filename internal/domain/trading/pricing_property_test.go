package trading_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

func seasonGen() gopter.Gen {
	return gen.OneConstOf(shared.SeasonSpring, shared.SeasonSummer, shared.SeasonAutumn, shared.SeasonWinter)
}

// TestAvailabilityChanceProperty verifies chance = min((size+wealth) x 10, 100) over every rank pair
func TestAvailabilityChanceProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("availability chance is capped linear in ranks", prop.ForAll(
		func(size, wealth int) bool {
			expected := (size + wealth) * 10
			if expected > 100 {
				expected = 100
			}
			return trading.AvailabilityChance(size, wealth) == expected
		},
		gen.IntRange(1, 5),
		gen.IntRange(1, 5),
	))

	properties.TestingRun(t)
}

// TestBreakdownInvariantProperty verifies final = base + sum(modifiers) for every price path
func TestBreakdownInvariantProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("purchase breakdown is additive", prop.ForAll(
		func(quantity int, season shared.Season, partial, success, dealmaker bool) bool {
			mods := trading.PurchaseModifiers{
				PartialPurchase: partial,
				Haggle:          &trading.HaggleOutcome{Success: success, HasDealmakerTalent: dealmaker},
			}
			b, err := trading.CalculatePurchasePrice(wine(), quantity, season, "", mods)
			if err != nil {
				return false
			}
			return b.BasePricePerUnit.Add(b.ModifierTotal()).Equal(b.FinalPricePerUnit) &&
				b.TotalUnits == (quantity+9)/10
		},
		gen.IntRange(1, 500),
		seasonGen(),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.Property("sale breakdown is additive", prop.ForAll(
		func(quantity, wealth int, season shared.Season, success, dealmaker bool) bool {
			haggle := &trading.HaggleOutcome{Success: success, HasDealmakerTalent: dealmaker}
			b, err := trading.CalculateSalePrice(wine(), quantity, season, "fine", wealth, haggle)
			if err != nil {
				return false
			}
			return b.BasePricePerUnit.Add(b.ModifierTotal()).Equal(b.FinalPricePerUnit)
		},
		gen.IntRange(1, 500),
		gen.IntRange(1, 5),
		seasonGen(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// TestFailedHaggleProperty verifies an unsuccessful haggle never moves the price
func TestFailedHaggleProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("failed haggle equals no haggle", prop.ForAll(
		func(quantity, wealth int, season shared.Season, dealmaker bool) bool {
			failed := &trading.HaggleOutcome{Success: false, HasDealmakerTalent: dealmaker}

			saleA, errA := trading.CalculateSalePrice(wine(), quantity, season, "", wealth, nil)
			saleB, errB := trading.CalculateSalePrice(wine(), quantity, season, "", wealth, failed)
			buyA, errC := trading.CalculatePurchasePrice(wine(), quantity, season, "", trading.PurchaseModifiers{})
			buyB, errD := trading.CalculatePurchasePrice(wine(), quantity, season, "", trading.PurchaseModifiers{Haggle: failed})
			if errA != nil || errB != nil || errC != nil || errD != nil {
				return false
			}
			return saleA.FinalPricePerUnit.Equal(saleB.FinalPricePerUnit) &&
				buyA.FinalPricePerUnit.Equal(buyB.FinalPricePerUnit)
		},
		gen.IntRange(1, 500),
		gen.IntRange(1, 5),
		seasonGen(),
		gen.Bool(),
	))

	properties.Property("dealmaker doubles the haggle percentage", prop.ForAll(
		func(wealth int, season shared.Season) bool {
			plain, err := trading.CalculateSalePrice(wine(), 10, season, "", wealth, &trading.HaggleOutcome{Success: true})
			if err != nil {
				return false
			}
			deal, err := trading.CalculateSalePrice(wine(), 10, season, "", wealth, &trading.HaggleOutcome{Success: true, HasDealmakerTalent: true})
			if err != nil {
				return false
			}
			p, _ := plain.Modifier(trading.ModifierHaggle)
			d, _ := deal.Modifier(trading.ModifierHaggle)
			return d.Percentage == 2*p.Percentage
		},
		gen.IntRange(1, 5),
		seasonGen(),
	))

	properties.TestingRun(t)
}
