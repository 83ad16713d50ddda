package setup

import (
	"reflect"

	"github.com/andrescamacho/trading-engine-go/internal/application/mediator"
	appTrading "github.com/andrescamacho/trading-engine-go/internal/application/trading"
	tradingCommands "github.com/andrescamacho/trading-engine-go/internal/application/trading/commands"
	tradingQueries "github.com/andrescamacho/trading-engine-go/internal/application/trading/queries"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	engine *appTrading.TradingEngine
	ledger trading.LedgerAdapter
	clock  shared.Clock
}

// NewHandlerRegistry creates a new handler registry. The ledger is optional;
// without one the settle commands are not registered.
func NewHandlerRegistry(engine *appTrading.TradingEngine, ledger trading.LedgerAdapter, clock shared.Clock) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		engine: engine,
		ledger: ledger,
		clock:  clock,
	}
}

// RegisterTradingHandlers registers the engine-backed commands and queries
//
// This method registers:
//   - SetSeasonCommand, RefreshPlanCommand, SellCargoCommand
//   - availability, pricing, merchant and catalog queries
func (r *HandlerRegistry) RegisterTradingHandlers(m mediator.Mediator) error {
	availability := tradingQueries.NewAvailabilityHandler(r.engine)
	pricing := tradingQueries.NewPricingHandler(r.engine)
	catalog := tradingQueries.NewCatalogHandler(r.engine)

	registrations := []struct {
		request mediator.Request
		handler mediator.RequestHandler
	}{
		{&tradingCommands.SetSeasonCommand{}, tradingCommands.NewSetSeasonHandler(r.engine)},
		{&tradingCommands.RefreshPlanCommand{}, tradingCommands.NewRefreshPlanHandler(r.engine)},
		{&tradingCommands.SellCargoCommand{}, tradingCommands.NewSellCargoHandler(r.engine)},
		{&tradingQueries.CheckAvailabilityQuery{}, availability},
		{&tradingQueries.DetermineCargoTypesQuery{}, availability},
		{&tradingQueries.CalculateCargoSizeQuery{}, availability},
		{&tradingQueries.PurchasePriceQuery{}, pricing},
		{&tradingQueries.SalePriceQuery{}, pricing},
		{&tradingQueries.SpecialSaleQuery{}, pricing},
		{&tradingQueries.GenerateMerchantQuery{}, tradingQueries.NewGenerateMerchantHandler(r.engine)},
		{&tradingQueries.ListSettlementsQuery{}, catalog},
		{&tradingQueries.ListCargoTypesQuery{}, catalog},
		{&tradingQueries.EngineStatusQuery{}, catalog},
	}
	for _, reg := range registrations {
		if err := m.Register(reflect.TypeOf(reg.request), reg.handler); err != nil {
			return err
		}
	}
	return nil
}

// RegisterLedgerHandlers registers the commands that move currency and cargo
//
// This method registers:
//   - SettleSaleCommand → SettleSaleHandler
//   - SettlePurchaseCommand → SettlePurchaseHandler
func (r *HandlerRegistry) RegisterLedgerHandlers(m mediator.Mediator) error {
	if err := m.Register(
		reflect.TypeOf(&tradingCommands.SettleSaleCommand{}),
		tradingCommands.NewSettleSaleHandler(r.ledger),
	); err != nil {
		return err
	}

	if err := m.Register(
		reflect.TypeOf(&tradingCommands.SettlePurchaseCommand{}),
		tradingCommands.NewSettlePurchaseHandler(r.ledger, r.engine, r.clock),
	); err != nil {
		return err
	}

	return nil
}

// CreateConfiguredMediator creates a new mediator with every available handler registered
// and the given middleware installed, outermost first
func (r *HandlerRegistry) CreateConfiguredMediator(middleware ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()
	for _, mw := range middleware {
		m.RegisterMiddleware(mw)
	}

	if err := r.RegisterTradingHandlers(m); err != nil {
		return nil, err
	}

	// Register ledger handlers if a ledger is available
	if r.ledger != nil {
		if err := r.RegisterLedgerHandlers(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}
