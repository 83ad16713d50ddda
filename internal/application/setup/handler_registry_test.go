package setup_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/trading-engine-go/internal/application/mediator"
	"github.com/andrescamacho/trading-engine-go/internal/application/setup"
	appTrading "github.com/andrescamacho/trading-engine-go/internal/application/trading"
	tradingCommands "github.com/andrescamacho/trading-engine-go/internal/application/trading/commands"
	tradingQueries "github.com/andrescamacho/trading-engine-go/internal/application/trading/queries"
	"github.com/andrescamacho/trading-engine-go/internal/application/trading/services"
	"github.com/andrescamacho/trading-engine-go/internal/domain/dice"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
	"github.com/andrescamacho/trading-engine-go/test/helpers"
)

func newMediator(t *testing.T, ledger trading.LedgerAdapter, rolls ...int) mediator.Mediator {
	t.Helper()
	engine, err := appTrading.NewTradingEngine(helpers.NewStandardRepository(), dice.NewSequence(rolls...), appTrading.DefaultEngineConfig())
	require.NoError(t, err)
	m, err := setup.NewHandlerRegistry(engine, ledger, nil).CreateConfiguredMediator()
	require.NoError(t, err)
	return m
}

func TestRegistry_SeasonAndPricingThroughMediator(t *testing.T) {
	// Arrange
	m := newMediator(t, nil)
	ctx := context.Background()

	// Act
	seasonResp, err := m.Send(ctx, &tradingCommands.SetSeasonCommand{Season: "Spring"})
	require.NoError(t, err)
	priceResp, err := m.Send(ctx, &tradingQueries.PurchasePriceQuery{Quote: appTrading.PurchaseQuote{
		CargoName: "Wine/Brandy",
		Quantity:  20,
		Haggle:    &trading.HaggleOutcome{Success: true},
	}})

	// Assert
	require.NoError(t, err)
	season := seasonResp.(*tradingCommands.SetSeasonResponse)
	assert.Equal(t, shared.SeasonSpring, season.Season)
	assert.True(t, season.Changed)
	assert.Equal(t, "27", priceResp.(*trading.PriceBreakdown).TotalPrice.String())
}

func TestRegistry_AvailabilityAndStatus(t *testing.T) {
	m := newMediator(t, nil, 45)
	ctx := context.Background()
	_, err := m.Send(ctx, &tradingCommands.SetSeasonCommand{Season: "spring"})
	require.NoError(t, err)

	resp, err := m.Send(ctx, &tradingQueries.CheckAvailabilityQuery{SettlementName: "Ubersreik"})
	require.NoError(t, err)
	status, err := m.Send(ctx, &tradingQueries.EngineStatusQuery{})
	require.NoError(t, err)

	assert.True(t, resp.(*services.AvailabilityResult).Available)
	engineStatus := status.(*tradingQueries.EngineStatusResponse)
	assert.True(t, engineStatus.SeasonSet)
	assert.Equal(t, services.PipelineDisabled, engineStatus.Pipeline)
}

func TestRegistry_CatalogQueries(t *testing.T) {
	m := newMediator(t, nil)
	ctx := context.Background()
	_, err := m.Send(ctx, &tradingCommands.SetSeasonCommand{Season: "winter"})
	require.NoError(t, err)

	settlements, err := m.Send(ctx, &tradingQueries.ListSettlementsQuery{})
	require.NoError(t, err)
	cargo, err := m.Send(ctx, &tradingQueries.ListCargoTypesQuery{})
	require.NoError(t, err)

	assert.Len(t, settlements.(*tradingQueries.ListSettlementsResponse).Settlements, len(helpers.StandardSettlements()))
	list := cargo.(*tradingQueries.ListCargoTypesResponse)
	assert.Equal(t, shared.SeasonWinter, list.Season)
	require.NotEmpty(t, list.Cargo)
	assert.Equal(t, "Grain", list.Cargo[0].Cargo.Name)
	assert.Equal(t, "3", list.Cargo[0].Price.String())
}

func TestRegistry_SettleCommandsNeedLedger(t *testing.T) {
	m := newMediator(t, nil)

	_, err := m.Send(context.Background(), &tradingCommands.SettlePurchaseCommand{ActorID: "wagon-1"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no handler registered")
}

func TestRegistry_SettlePurchaseWithLedger(t *testing.T) {
	// Arrange
	ledger := helpers.NewMockLedger()
	ledger.Fund("wagon-1", decimal.NewFromInt(100))
	m := newMediator(t, ledger)
	ctx := context.Background()
	_, err := m.Send(ctx, &tradingCommands.SetSeasonCommand{Season: "spring"})
	require.NoError(t, err)
	priced, err := m.Send(ctx, &tradingQueries.PurchasePriceQuery{Quote: appTrading.PurchaseQuote{CargoName: "Metal", Quantity: 10}})
	require.NoError(t, err)

	// Act
	_, err = m.Send(ctx, &tradingCommands.SettlePurchaseCommand{
		ActorID:        "wagon-1",
		SettlementName: "Ubersreik",
		Breakdown:      priced.(*trading.PriceBreakdown),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "92", ledger.Purses["wagon-1"].String())
	assert.Equal(t, 10, ledger.Cargo["wagon-1"]["Metal"])
}
