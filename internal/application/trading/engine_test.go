package trading_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/trading-engine-go/internal/application/common"
	appTrading "github.com/andrescamacho/trading-engine-go/internal/application/trading"
	"github.com/andrescamacho/trading-engine-go/internal/application/trading/services"
	"github.com/andrescamacho/trading-engine-go/internal/domain/dice"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
	"github.com/andrescamacho/trading-engine-go/test/helpers"
)

func newEngine(t *testing.T, cfg appTrading.EngineConfig, rolls ...int) (*appTrading.TradingEngine, *dice.Sequence) {
	t.Helper()
	seq := dice.NewSequence(rolls...)
	engine, err := appTrading.NewTradingEngine(helpers.NewStandardRepository(), seq, cfg)
	require.NoError(t, err)
	return engine, seq
}

func TestEngine_RequiresSeason(t *testing.T) {
	engine, _ := newEngine(t, appTrading.DefaultEngineConfig(), 10)
	ctx := context.Background()

	_, err := engine.CheckCargoAvailability(ctx, "Ubersreik")
	assert.True(t, shared.IsInvalidArgument(err))

	_, err = engine.CalculatePurchasePrice(ctx, appTrading.PurchaseQuote{CargoName: "Grain", Quantity: 10})
	assert.True(t, shared.IsInvalidArgument(err))

	_, ok := engine.Season()
	assert.False(t, ok)
}

func TestEngine_SetSeasonNormalizes(t *testing.T) {
	engine, _ := newEngine(t, appTrading.DefaultEngineConfig())

	season, err := engine.SetSeason(context.Background(), "  WINTER ")
	require.NoError(t, err)
	assert.Equal(t, shared.SeasonWinter, season)

	_, err = engine.SetSeason(context.Background(), "monsoon")
	assert.True(t, shared.IsInvalidArgument(err))

	current, ok := engine.Season()
	assert.True(t, ok)
	assert.Equal(t, shared.SeasonWinter, current)
}

func TestEngine_AvailabilityScenario(t *testing.T) {
	// Arrange
	engine, _ := newEngine(t, appTrading.DefaultEngineConfig(), 45)
	_, err := engine.SetSeason(context.Background(), "spring")
	require.NoError(t, err)

	// Act
	result, err := engine.CheckCargoAvailability(context.Background(), "Ubersreik")

	// Assert
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Equal(t, 60, result.Chance)
}

func TestEngine_UnknownLookups(t *testing.T) {
	engine, _ := newEngine(t, appTrading.DefaultEngineConfig())
	ctx := context.Background()
	_, err := engine.SetSeason(ctx, "spring")
	require.NoError(t, err)

	_, err = engine.CheckCargoAvailability(ctx, "Nuln")
	assert.True(t, shared.IsNotFound(err))

	_, err = engine.CalculatePurchasePrice(ctx, appTrading.PurchaseQuote{CargoName: "Spice", Quantity: 10})
	assert.True(t, shared.IsNotFound(err))

	_, err = engine.CalculateSalePrice(ctx, appTrading.SaleQuote{SettlementName: "Nuln", CargoName: "Grain", Quantity: 10})
	assert.True(t, shared.IsNotFound(err))
}

func TestEngine_CargoSizeUsesRepositoryTradeStatus(t *testing.T) {
	engine, _ := newEngine(t, appTrading.DefaultEngineConfig(), 45, 70)
	_, err := engine.SetSeason(context.Background(), "summer")
	require.NoError(t, err)

	result, err := engine.CalculateCargoSize(context.Background(), "Ubersreik")

	require.NoError(t, err)
	assert.True(t, result.TradeBonus)
	assert.Equal(t, 70, result.SizeMultiplier)
	assert.Equal(t, 420, result.TotalSize)
}

func TestEngine_SalePriceUsesSettlementWealth(t *testing.T) {
	engine, _ := newEngine(t, appTrading.DefaultEngineConfig())
	_, err := engine.SetSeason(context.Background(), "summer")
	require.NoError(t, err)

	b, err := engine.CalculateSalePrice(context.Background(), appTrading.SaleQuote{
		SettlementName: "Kleindorf", CargoName: "wine/brandy", Quantity: 50,
	})

	require.NoError(t, err)
	assert.Equal(t, "5", b.FinalPricePerUnit.String())
	assert.Equal(t, "25", b.TotalPrice.String())
}

func TestEngine_SeasonChangeClearsPlanCache(t *testing.T) {
	// Arrange
	provider := helpers.NewMockPlanGenerator(services.RawPlan{
		"slots": []interface{}{map[string]interface{}{"cargoType": "Luxuries"}},
	})
	cfg := appTrading.DefaultEngineConfig()
	cfg.Pipeline = provider
	engine, _ := newEngine(t, cfg, 10, 10, 10)
	ctx := context.Background()
	_, err := engine.SetSeason(ctx, "spring")
	require.NoError(t, err)

	// Act
	_, err = engine.CheckCargoAvailability(ctx, "Ubersreik")
	require.NoError(t, err)
	_, err = engine.CheckCargoAvailability(ctx, "Ubersreik")
	require.NoError(t, err)
	_, err = engine.SetSeason(ctx, "spring")
	require.NoError(t, err)
	callsBeforeChange := provider.Calls()
	_, err = engine.SetSeason(ctx, "autumn")
	require.NoError(t, err)
	_, err = engine.CheckCargoAvailability(ctx, "Ubersreik")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 1, callsBeforeChange)
	assert.Equal(t, 2, provider.Calls())
	assert.Equal(t, services.PipelineReady, engine.PipelineStatus())
}

func TestEngine_DetermineCargoTypesPrefersCachedPlan(t *testing.T) {
	provider := helpers.NewMockPlanGenerator(services.RawPlan{
		"slots": []interface{}{
			map[string]interface{}{"cargoType": "Luxuries"},
			map[string]interface{}{"cargoType": "Wool"},
		},
	})
	cfg := appTrading.DefaultEngineConfig()
	cfg.Pipeline = provider
	engine, _ := newEngine(t, cfg)
	ctx := context.Background()
	_, err := engine.SetSeason(ctx, "spring")
	require.NoError(t, err)

	src, err := engine.RefreshPlan(ctx, "Ubersreik")
	require.NoError(t, err)
	require.IsType(t, services.PlanReady{}, src)

	result, err := engine.DetermineCargoTypes(ctx, "Ubersreik")

	require.NoError(t, err)
	assert.Equal(t, []string{"Luxuries", "Wool"}, result.CargoTypes)
}

func TestEngine_PipelineFailureIsLoggedNotReturned(t *testing.T) {
	// Arrange
	provider := helpers.NewMockPlanGenerator(nil)
	provider.Err = errors.New("pipeline exploded")
	cfg := appTrading.DefaultEngineConfig()
	cfg.Pipeline = provider
	engine, _ := newEngine(t, cfg, 70)
	logger := helpers.NewMockLogger()
	ctx := common.WithLogger(context.Background(), logger)
	_, err := engine.SetSeason(ctx, "spring")
	require.NoError(t, err)

	// Act
	result, err := engine.CheckCargoAvailability(ctx, "Ubersreik")

	// Assert
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.False(t, result.FromPlan)
	assert.Equal(t, services.PipelineError, engine.PipelineStatus())
	assert.True(t, logger.HasLevel(common.LevelError))
}

func TestEngine_ExecuteSellingWorkflow(t *testing.T) {
	engine, _ := newEngine(t, appTrading.DefaultEngineConfig(), 30, 50, 50, 10, 1, 1)
	ctx := context.Background()
	_, err := engine.SetSeason(ctx, "spring")
	require.NoError(t, err)

	result, err := engine.ExecuteSellingWorkflow(ctx, appTrading.SellOrder{
		SettlementName: "Ubersreik",
		CargoName:      "Wine/Brandy",
		Quantity:       20,
		Haggle:         &trading.HaggleOutcome{Success: true, HasDealmakerTalent: true},
	})

	require.NoError(t, err)
	assert.Equal(t, services.OutcomeCompleted, result.Outcome)
	assert.Equal(t, "36", result.Breakdown.TotalPrice.String())
	require.NotNil(t, result.Merchant)
}

func TestEngine_ExecuteSellingWorkflowRejectsUnknownSaleType(t *testing.T) {
	engine, _ := newEngine(t, appTrading.DefaultEngineConfig())
	ctx := context.Background()
	_, err := engine.SetSeason(ctx, "spring")
	require.NoError(t, err)

	_, err = engine.ExecuteSellingWorkflow(ctx, appTrading.SellOrder{
		SettlementName: "Ubersreik", CargoName: "Grain", Quantity: 5, SaleType: "barter",
	})

	assert.True(t, shared.IsInvalidArgument(err))
}

func TestEngine_SpecialOffers(t *testing.T) {
	engine, _ := newEngine(t, appTrading.DefaultEngineConfig())
	ctx := context.Background()
	_, err := engine.SetSeason(ctx, "spring")
	require.NoError(t, err)

	offer, err := engine.DesperateSaleOffer(ctx, "Ubersreik", "Grain", 100, "")
	require.NoError(t, err)
	assert.True(t, offer.Available)
	assert.Equal(t, "10", offer.TotalOffer.String())

	offer, err = engine.DesperateSaleOffer(ctx, "Grunburg", "Grain", 100, "")
	require.NoError(t, err)
	assert.False(t, offer.Available)

	offer, err = engine.RumorSaleOffer(ctx, "Ubersreik", "Grain", 10, "", &trading.Rumor{
		Multiplier: 2, SettlementName: "Ubersreik", CargoType: "Wool",
	})
	require.NoError(t, err)
	assert.False(t, offer.Available)
}

func TestEngine_RumorWithoutNamesBindsToCanonicalTransaction(t *testing.T) {
	// Arrange
	engine, _ := newEngine(t, appTrading.DefaultEngineConfig())
	ctx := context.Background()
	_, err := engine.SetSeason(ctx, "spring")
	require.NoError(t, err)
	rumor := &trading.Rumor{Type: "shortage", Multiplier: 1.5}

	// Act
	offer, err := engine.RumorSaleOffer(ctx, "altdorf", "wool", 10, "", rumor)
	require.NoError(t, err)
	sale, saleErr := engine.ExecuteSellingWorkflow(ctx, appTrading.SellOrder{
		SettlementName: "Altdorf",
		CargoName:      "wool",
		Quantity:       10,
		SaleType:       "rumor",
		Rumor:          rumor,
	})

	// Assert
	assert.True(t, offer.Available)
	assert.Equal(t, "6", offer.TotalOffer.String())
	require.NoError(t, saleErr)
	assert.Equal(t, services.OutcomeCompleted, sale.Outcome)
	assert.Empty(t, rumor.SettlementName, "caller's rumor is not modified")
}

func TestEngine_FindSettlementIgnoresCase(t *testing.T) {
	engine, _ := newEngine(t, appTrading.DefaultEngineConfig())

	settlement, err := engine.FindSettlement(context.Background(), " ubersreik ")
	require.NoError(t, err)
	assert.Equal(t, "Ubersreik", settlement.Name)

	_, err = engine.FindSettlement(context.Background(), "Atlantis")
	assert.True(t, shared.IsNotFound(err))
}

func TestEngine_GenerateRandomMerchant(t *testing.T) {
	engine, _ := newEngine(t, appTrading.DefaultEngineConfig(), 50, 50, 10, 1, 1)

	m, err := engine.GenerateRandomMerchant(context.Background(), "Altdorf")

	require.NoError(t, err)
	assert.Equal(t, 50, m.BaseSkill)
	assert.Equal(t, 60, m.HagglingSkill)
}

func TestEngine_SeasonalPrice(t *testing.T) {
	engine, _ := newEngine(t, appTrading.DefaultEngineConfig())
	_, err := engine.SetSeason(context.Background(), "winter")
	require.NoError(t, err)

	price, err := engine.SeasonalPrice(context.Background(), "Wine/Brandy", "")

	require.NoError(t, err)
	assert.Equal(t, "18", price.String())
}

func TestEngine_IndependentInstances(t *testing.T) {
	a, _ := newEngine(t, appTrading.DefaultEngineConfig())
	b, _ := newEngine(t, appTrading.DefaultEngineConfig())

	_, err := a.SetSeason(context.Background(), "summer")
	require.NoError(t, err)

	_, ok := b.Season()
	assert.False(t, ok)
}
