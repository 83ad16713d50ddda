package steps

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	appTrading "github.com/andrescamacho/trading-engine-go/internal/application/trading"
	"github.com/andrescamacho/trading-engine-go/internal/application/trading/services"
	"github.com/andrescamacho/trading-engine-go/internal/domain/dice"
	"github.com/andrescamacho/trading-engine-go/internal/domain/merchant"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
	"github.com/andrescamacho/trading-engine-go/test/helpers"
)

var scenarioNow = time.Date(2512, 4, 10, 9, 0, 0, 0, time.UTC)

type tradingContext struct {
	engine *appTrading.TradingEngine
	dice   *dice.Sequence
	clock  *shared.MockClock

	breakdown    *trading.PriceBreakdown
	offer        *trading.SpecialSaleOffer
	availability *services.AvailabilityResult
	cargoSize    *services.CargoSizeResult
	sale         *services.SellResult
	merchant     *merchant.Merchant
	purchase     *trading.PurchaseRecord
	err          error
}

func (ctx *tradingContext) reset() {
	ctx.dice = dice.NewSequence()
	ctx.clock = shared.NewMockClock(scenarioNow)

	cfg := appTrading.DefaultEngineConfig()
	cfg.Clock = ctx.clock
	engine, err := appTrading.NewTradingEngine(helpers.NewStandardRepository(), ctx.dice, cfg)
	if err != nil {
		panic(fmt.Errorf("failed to build trading engine: %w", err))
	}
	ctx.engine = engine

	ctx.breakdown = nil
	ctx.offer = nil
	ctx.availability = nil
	ctx.cargoSize = nil
	ctx.sale = nil
	ctx.merchant = nil
	ctx.purchase = nil
	ctx.err = nil
}

// Given steps

func (ctx *tradingContext) theSeasonIs(season string) error {
	_, err := ctx.engine.SetSeason(context.Background(), season)
	return err
}

func (ctx *tradingContext) theDiceWillRoll(list string) error {
	for _, raw := range strings.Split(list, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("bad roll %q: %w", raw, err)
		}
		ctx.dice.Push(v)
	}
	return nil
}

// Shared error assertions

func (ctx *tradingContext) theOperationShouldFailWithAnInvalidArgumentError() error {
	if ctx.err == nil {
		return fmt.Errorf("expected an invalid argument error, got success")
	}
	if !shared.IsInvalidArgument(ctx.err) {
		return fmt.Errorf("expected an invalid argument error, got %v", ctx.err)
	}
	return nil
}

func (ctx *tradingContext) theOperationShouldFailWithANotFoundError() error {
	if ctx.err == nil {
		return fmt.Errorf("expected a not found error, got success")
	}
	if !shared.IsNotFound(ctx.err) {
		return fmt.Errorf("expected a not found error, got %v", ctx.err)
	}
	return nil
}

func (ctx *tradingContext) noError() error {
	if ctx.err != nil {
		return fmt.Errorf("unexpected error: %w", ctx.err)
	}
	return nil
}

// InitializeTradingScenario registers every trading step against one scenario context
func InitializeTradingScenario(sc *godog.ScenarioContext) {
	tradeCtx := &tradingContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		tradeCtx.reset()
		return ctx, nil
	})

	sc.Step(`^the season is "([^"]*)"$`, tradeCtx.theSeasonIs)
	sc.Step(`^the dice will roll (.+)$`, tradeCtx.theDiceWillRoll)
	sc.Step(`^the operation should fail with an invalid argument error$`, tradeCtx.theOperationShouldFailWithAnInvalidArgumentError)
	sc.Step(`^the operation should fail with a not found error$`, tradeCtx.theOperationShouldFailWithANotFoundError)

	registerPricingSteps(sc, tradeCtx)
	registerAvailabilitySteps(sc, tradeCtx)
	registerSellingSteps(sc, tradeCtx)
	registerMerchantSteps(sc, tradeCtx)
}
