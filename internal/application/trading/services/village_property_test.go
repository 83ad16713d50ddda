package services_test

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/andrescamacho/trading-engine-go/internal/application/trading/services"
	"github.com/andrescamacho/trading-engine-go/internal/domain/dice"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

// TestVillageRestrictionProperty checks the village rule over every season and d10 outcome
func TestVillageRestrictionProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	seasons := gen.OneConstOf(shared.SeasonSpring, shared.SeasonSummer, shared.SeasonAutumn, shared.SeasonWinter)

	properties.Property("non-grain cargo is restricted, capped at 1..10 only in spring", prop.ForAll(
		func(season shared.Season, roll int) bool {
			wf := services.NewSellingWorkflow(dice.NewSequence(roll), nil)
			r, err := wf.CheckVillageRestriction(context.Background(), village(), "Wine/Brandy", season)
			if err != nil || !r.Restricted {
				return false
			}
			if season == shared.SeasonSpring {
				return r.AllowedQuantity == roll && r.AllowedQuantity >= 1 && r.AllowedQuantity <= 10
			}
			return r.AllowedQuantity == 0
		},
		seasons,
		gen.IntRange(1, 10),
	))

	properties.Property("grain is never restricted", prop.ForAll(
		func(season shared.Season) bool {
			wf := services.NewSellingWorkflow(dice.NewSequence(), nil)
			r, err := wf.CheckVillageRestriction(context.Background(), village(), trading.CargoGrain, season)
			return err == nil && !r.Restricted
		},
		seasons,
	))

	properties.Property("available iff roll <= chance", prop.ForAll(
		func(size, wealth, roll int) bool {
			s := &trading.Settlement{Name: "Prop", SizeRank: size, WealthRank: wealth}
			planner := services.NewAvailabilityPlanner(nil, dice.NewSequence(roll))
			r, err := planner.CheckAvailability(context.Background(), s, shared.SeasonAutumn)
			return err == nil && r.Available == (roll <= trading.AvailabilityChance(size, wealth))
		},
		gen.IntRange(1, 5),
		gen.IntRange(1, 5),
		gen.IntRange(1, 100),
	))

	properties.TestingRun(t)
}
