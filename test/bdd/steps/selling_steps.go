package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"

	appTrading "github.com/andrescamacho/trading-engine-go/internal/application/trading"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

func (ctx *tradingContext) theCargoWasBoughtAtDaysAgo(settlement string, days int) error {
	bought := ctx.clock.Now().Add(-time.Duration(days) * shared.Day)
	ctx.purchase = &trading.PurchaseRecord{SettlementName: settlement, PurchasedAt: &bought}
	return nil
}

func (ctx *tradingContext) sell(order appTrading.SellOrder) error {
	order.PurchaseHistory = ctx.purchase
	ctx.sale, ctx.err = ctx.engine.ExecuteSellingWorkflow(context.Background(), order)
	return nil
}

func (ctx *tradingContext) iTryToSell(quantity int, cargo, settlement string) error {
	return ctx.sell(appTrading.SellOrder{SettlementName: settlement, CargoName: cargo, Quantity: quantity})
}

func (ctx *tradingContext) iTryToSellWithADealmakerHaggle(quantity int, cargo, settlement string) error {
	return ctx.sell(appTrading.SellOrder{
		SettlementName: settlement,
		CargoName:      cargo,
		Quantity:       quantity,
		Haggle:         &trading.HaggleOutcome{Success: true, HasDealmakerTalent: true},
	})
}

func (ctx *tradingContext) iTryToSellAsASale(quantity int, cargo, settlement, saleType string) error {
	return ctx.sell(appTrading.SellOrder{SettlementName: settlement, CargoName: cargo, Quantity: quantity, SaleType: saleType})
}

func (ctx *tradingContext) theSaleOutcomeShouldBe(outcome string) error {
	if err := ctx.noError(); err != nil {
		return err
	}
	if string(ctx.sale.Outcome) != outcome {
		return fmt.Errorf("expected outcome %q, got %q (%s)", outcome, ctx.sale.Outcome, ctx.sale.Reason)
	}
	return nil
}

func (ctx *tradingContext) theSaleReasonShouldBe(reason string) error {
	if ctx.sale == nil {
		return fmt.Errorf("no sale was attempted")
	}
	if !strings.Contains(ctx.sale.Reason, reason) {
		return fmt.Errorf("expected reason stating %q, got %q", reason, ctx.sale.Reason)
	}
	return nil
}

func (ctx *tradingContext) theSaleTotalShouldBe(expected string) error {
	if ctx.sale == nil || ctx.sale.Breakdown == nil {
		return fmt.Errorf("sale has no price breakdown")
	}
	if got := ctx.sale.Breakdown.TotalPrice.StringFixed(2); got != expected {
		return fmt.Errorf("expected sale total %s, got %s", expected, got)
	}
	return nil
}

func registerSellingSteps(sc *godog.ScenarioContext, ctx *tradingContext) {
	sc.Step(`^the cargo was bought at "([^"]*)" (\d+) days ago$`, ctx.theCargoWasBoughtAtDaysAgo)
	sc.Step(`^I try to sell (\d+) EP of "([^"]*)" at "([^"]*)"$`, ctx.iTryToSell)
	sc.Step(`^I try to sell (\d+) EP of "([^"]*)" at "([^"]*)" with a Dealmaker haggle$`, ctx.iTryToSellWithADealmakerHaggle)
	sc.Step(`^I try to sell (\d+) EP of "([^"]*)" at "([^"]*)" as a "([^"]*)" sale$`, ctx.iTryToSellAsASale)
	sc.Step(`^the sale outcome should be "([^"]*)"$`, ctx.theSaleOutcomeShouldBe)
	sc.Step(`^the sale reason should be "([^"]*)"$`, ctx.theSaleReasonShouldBe)
	sc.Step(`^the sale total should be "([^"]*)"$`, ctx.theSaleTotalShouldBe)
}
