package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	appTrading "github.com/andrescamacho/trading-engine-go/internal/application/trading"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

func (ctx *tradingContext) iPriceAPurchase(quantity int, cargo string) error {
	ctx.breakdown, ctx.err = ctx.engine.CalculatePurchasePrice(context.Background(), appTrading.PurchaseQuote{
		CargoName: cargo,
		Quantity:  quantity,
	})
	return nil
}

func (ctx *tradingContext) iPriceAPartialPurchase(quantity int, cargo string) error {
	ctx.breakdown, ctx.err = ctx.engine.CalculatePurchasePrice(context.Background(), appTrading.PurchaseQuote{
		CargoName:       cargo,
		Quantity:        quantity,
		PartialPurchase: true,
	})
	return nil
}

func (ctx *tradingContext) iPriceAPurchaseAfterASuccessfulHaggle(quantity int, cargo string) error {
	ctx.breakdown, ctx.err = ctx.engine.CalculatePurchasePrice(context.Background(), appTrading.PurchaseQuote{
		CargoName: cargo,
		Quantity:  quantity,
		Haggle:    &trading.HaggleOutcome{Success: true},
	})
	return nil
}

func (ctx *tradingContext) iPriceASale(quantity int, cargo, settlement string) error {
	ctx.breakdown, ctx.err = ctx.engine.CalculateSalePrice(context.Background(), appTrading.SaleQuote{
		SettlementName: settlement,
		CargoName:      cargo,
		Quantity:       quantity,
	})
	return nil
}

func (ctx *tradingContext) iAskForADesperateSale(quantity int, cargo, settlement string) error {
	ctx.offer, ctx.err = ctx.engine.DesperateSaleOffer(context.Background(), settlement, cargo, quantity, "")
	return nil
}

func (ctx *tradingContext) theFinalPricePerUnitShouldBe(expected string) error {
	if err := ctx.noError(); err != nil {
		return err
	}
	if got := ctx.breakdown.FinalPricePerUnit.StringFixed(2); got != expected {
		return fmt.Errorf("expected final price %s per unit, got %s", expected, got)
	}
	return nil
}

func (ctx *tradingContext) theTotalPriceShouldBe(expected string) error {
	if err := ctx.noError(); err != nil {
		return err
	}
	if got := ctx.breakdown.TotalPrice.StringFixed(2); got != expected {
		return fmt.Errorf("expected total %s, got %s", expected, got)
	}
	return nil
}

func (ctx *tradingContext) theOfferShouldTotal(expected string) error {
	if err := ctx.noError(); err != nil {
		return err
	}
	if !ctx.offer.Available {
		return fmt.Errorf("expected an offer, got unavailable: %s", ctx.offer.Reason)
	}
	if got := ctx.offer.TotalOffer.StringFixed(2); got != expected {
		return fmt.Errorf("expected offer total %s, got %s", expected, got)
	}
	return nil
}

func (ctx *tradingContext) theOfferShouldBeUnavailableBecause(reason string) error {
	if err := ctx.noError(); err != nil {
		return err
	}
	if ctx.offer.Available {
		return fmt.Errorf("expected no offer, got %s", ctx.offer.TotalOffer.StringFixed(2))
	}
	if !strings.Contains(ctx.offer.Reason, reason) {
		return fmt.Errorf("expected reason stating %q, got %q", reason, ctx.offer.Reason)
	}
	return nil
}

func registerPricingSteps(sc *godog.ScenarioContext, ctx *tradingContext) {
	sc.Step(`^I price a purchase of (\d+) EP of "([^"]*)"$`, ctx.iPriceAPurchase)
	sc.Step(`^I price a partial purchase of (\d+) EP of "([^"]*)"$`, ctx.iPriceAPartialPurchase)
	sc.Step(`^I price a purchase of (\d+) EP of "([^"]*)" after a successful haggle$`, ctx.iPriceAPurchaseAfterASuccessfulHaggle)
	sc.Step(`^I price a sale of (\d+) EP of "([^"]*)" at "([^"]*)"$`, ctx.iPriceASale)
	sc.Step(`^I ask for a desperate sale of (\d+) EP of "([^"]*)" at "([^"]*)"$`, ctx.iAskForADesperateSale)
	sc.Step(`^the final price per unit should be "([^"]*)"$`, ctx.theFinalPricePerUnitShouldBe)
	sc.Step(`^the total price should be "([^"]*)"$`, ctx.theTotalPriceShouldBe)
	sc.Step(`^the offer should total "([^"]*)"$`, ctx.theOfferShouldTotal)
	sc.Step(`^the offer should be unavailable because "([^"]*)"$`, ctx.theOfferShouldBeUnavailableBecause)
}
