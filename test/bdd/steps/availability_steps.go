package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

func (ctx *tradingContext) iCheckCargoAvailabilityAt(settlement string) error {
	ctx.availability, ctx.err = ctx.engine.CheckCargoAvailability(context.Background(), settlement)
	return nil
}

func (ctx *tradingContext) iCalculateTheCargoSizeAt(settlement string) error {
	ctx.cargoSize, ctx.err = ctx.engine.CalculateCargoSize(context.Background(), settlement)
	return nil
}

func (ctx *tradingContext) cargoShouldBeAvailableWithAChance(chance int) error {
	if err := ctx.noError(); err != nil {
		return err
	}
	if !ctx.availability.Available {
		return fmt.Errorf("expected cargo, rolled %d against %d%%", ctx.availability.Roll, ctx.availability.Chance)
	}
	if ctx.availability.Chance != chance {
		return fmt.Errorf("expected a %d%% chance, got %d%%", chance, ctx.availability.Chance)
	}
	return nil
}

func (ctx *tradingContext) noCargoShouldBeAvailable() error {
	if err := ctx.noError(); err != nil {
		return err
	}
	if ctx.availability.Available {
		return fmt.Errorf("expected no cargo, rolled %d against %d%%", ctx.availability.Roll, ctx.availability.Chance)
	}
	return nil
}

func (ctx *tradingContext) theCargoSizeShouldBeWithTheTradeBonus(total int) error {
	if err := ctx.noError(); err != nil {
		return err
	}
	if !ctx.cargoSize.TradeBonus {
		return fmt.Errorf("expected the trade bonus to apply")
	}
	if ctx.cargoSize.TotalSize != total {
		return fmt.Errorf("expected %d EP, got %d", total, ctx.cargoSize.TotalSize)
	}
	return nil
}

func registerAvailabilitySteps(sc *godog.ScenarioContext, ctx *tradingContext) {
	sc.Step(`^I check cargo availability at "([^"]*)"$`, ctx.iCheckCargoAvailabilityAt)
	sc.Step(`^I calculate the cargo size at "([^"]*)"$`, ctx.iCalculateTheCargoSizeAt)
	sc.Step(`^cargo should be available with a (\d+)% chance$`, ctx.cargoShouldBeAvailableWithAChance)
	sc.Step(`^no cargo should be available$`, ctx.noCargoShouldBeAvailable)
	sc.Step(`^the cargo size should be (\d+) EP with the trade bonus$`, ctx.theCargoSizeShouldBeWithTheTradeBonus)
}
