package trading

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/trading-engine-go/internal/application/common"
	"github.com/andrescamacho/trading-engine-go/internal/application/trading/services"
	"github.com/andrescamacho/trading-engine-go/internal/domain/dice"
	"github.com/andrescamacho/trading-engine-go/internal/domain/merchant"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	domainTrading "github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

// PurchaseQuote describes a purchase to price
type PurchaseQuote struct {
	CargoName       string
	Quantity        int
	Quality         string
	PartialPurchase bool
	Haggle          *domainTrading.HaggleOutcome
}

// SaleQuote describes a sale to price at a settlement
type SaleQuote struct {
	SettlementName string
	CargoName      string
	Quantity       int
	Quality        string
	Haggle         *domainTrading.HaggleOutcome
}

// SellOrder is the caller-facing input of the selling workflow
type SellOrder struct {
	SettlementName  string
	CargoName       string
	Quantity        int
	Quality         string
	SaleType        string
	PurchaseHistory *domainTrading.PurchaseRecord
	Rumor           *domainTrading.Rumor
	Haggle          *domainTrading.HaggleOutcome
}

// EngineConfig collects the optional collaborators of a TradingEngine
type EngineConfig struct {
	Pipeline           services.PlanGenerator
	Clock              shared.Clock
	Metrics            services.MetricsRecorder
	Merchant           merchant.Config
	ResaleCooldownDays int
}

// DefaultEngineConfig has no pipeline and the standard rule constants
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Clock:              shared.NewRealClock(),
		Metrics:            services.NoopMetrics(),
		Merchant:           merchant.DefaultConfig(),
		ResaleCooldownDays: domainTrading.DefaultResaleCooldownDays,
	}
}

// TradingEngine is the caller-facing facade over the trading rules.
// It reads from the data repository and never writes; every instance owns its own
// season and plan cache.
type TradingEngine struct {
	repo      domainTrading.DataRepository
	source    dice.Source
	season    *SeasonState
	planner   *services.AvailabilityPlanner
	workflow  *services.SellingWorkflow
	merchants *merchant.Generator
	metrics   services.MetricsRecorder
}

// NewTradingEngine wires the planner, workflow and merchant generator around one random source
func NewTradingEngine(repo domainTrading.DataRepository, source dice.Source, cfg EngineConfig) (*TradingEngine, error) {
	if repo == nil {
		return nil, shared.NewValidationError("repository", "data repository is required")
	}
	if source == nil {
		return nil, shared.NewValidationError("source", "random source is required")
	}
	if cfg.Metrics == nil {
		cfg.Metrics = services.NoopMetrics()
	}
	if cfg.Clock == nil {
		cfg.Clock = shared.NewRealClock()
	}

	merchants, err := merchant.NewGenerator(source, cfg.Merchant)
	if err != nil {
		return nil, fmt.Errorf("invalid merchant config: %w", err)
	}

	e := &TradingEngine{
		repo:      repo,
		source:    source,
		season:    NewSeasonState(),
		merchants: merchants,
		metrics:   cfg.Metrics,
		planner:   services.NewAvailabilityPlanner(cfg.Pipeline, source, services.WithPlannerMetrics(cfg.Metrics)),
	}
	e.workflow = services.NewSellingWorkflow(source, merchants,
		services.WithWorkflowClock(cfg.Clock),
		services.WithResaleCooldown(cfg.ResaleCooldownDays),
		services.WithWorkflowMetrics(cfg.Metrics),
	)
	e.season.OnChange(func(previous, current shared.Season) {
		e.planner.Invalidate()
	})
	return e, nil
}

// SetSeason validates and stores the season; a change clears every cached plan
func (e *TradingEngine) SetSeason(ctx context.Context, raw string) (shared.Season, error) {
	previous, _ := e.season.Current()
	season, err := e.season.Set(raw)
	if err != nil {
		return "", err
	}
	if previous != season {
		common.LoggerFromContext(ctx).Log(common.LevelInfo, "Trading season changed", map[string]interface{}{
			"previous": string(previous),
			"current":  string(season),
		})
	}
	return season, nil
}

// Season returns the current season, if set
func (e *TradingEngine) Season() (shared.Season, bool) {
	return e.season.Current()
}

// PipelineStatus reports the planner's pipeline health
func (e *TradingEngine) PipelineStatus() services.PipelineStatus {
	return e.planner.Status()
}

// Settlements lists every settlement in the repository
func (e *TradingEngine) Settlements(ctx context.Context) ([]*domainTrading.Settlement, error) {
	return e.repo.AllSettlements(ctx)
}

// CargoTypes lists every cargo type in the repository
func (e *TradingEngine) CargoTypes(ctx context.Context) ([]*domainTrading.CargoType, error) {
	return e.repo.CargoTypes(ctx)
}

// RefreshPlan forces a new pipeline plan for a settlement in the current season
func (e *TradingEngine) RefreshPlan(ctx context.Context, settlementName string) (services.PlanSource, error) {
	season, settlement, err := e.seasonAndSettlement(ctx, settlementName)
	if err != nil {
		return nil, err
	}
	return e.planner.GeneratePlan(ctx, settlement, season, true), nil
}

// CheckCargoAvailability rolls for cargo availability at a settlement
func (e *TradingEngine) CheckCargoAvailability(ctx context.Context, settlementName string) (*services.AvailabilityResult, error) {
	season, settlement, err := e.seasonAndSettlement(ctx, settlementName)
	if err != nil {
		return nil, err
	}
	return e.planner.CheckAvailability(ctx, settlement, season)
}

// DetermineCargoTypes lists the cargo a settlement offers this season
func (e *TradingEngine) DetermineCargoTypes(ctx context.Context, settlementName string) (*services.CargoTypesResult, error) {
	season, settlement, err := e.seasonAndSettlement(ctx, settlementName)
	if err != nil {
		return nil, err
	}
	return e.planner.DetermineCargoTypes(ctx, settlement, season)
}

// CalculateCargoSize rolls the available cargo size in EP
func (e *TradingEngine) CalculateCargoSize(ctx context.Context, settlementName string) (*services.CargoSizeResult, error) {
	season, settlement, err := e.seasonAndSettlement(ctx, settlementName)
	if err != nil {
		return nil, err
	}
	isTrade, err := e.repo.IsTradeSettlement(ctx, settlement.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve trade status: %w", err)
	}
	return e.planner.CalculateCargoSize(ctx, settlement, season, isTrade)
}

// CalculatePurchasePrice prices a purchase in the current season
func (e *TradingEngine) CalculatePurchasePrice(ctx context.Context, q PurchaseQuote) (*domainTrading.PriceBreakdown, error) {
	season, err := e.season.Require()
	if err != nil {
		return nil, err
	}
	cargo, err := e.findCargo(ctx, q.CargoName)
	if err != nil {
		return nil, err
	}
	b, err := domainTrading.CalculatePurchasePrice(cargo, q.Quantity, season, domainTrading.ParseQuality(q.Quality),
		domainTrading.PurchaseModifiers{PartialPurchase: q.PartialPurchase, Haggle: q.Haggle})
	if err != nil {
		return nil, err
	}
	e.metrics.RecordPriceCalculation("purchase")
	return b, nil
}

// CalculateSalePrice prices a sale at a settlement using its wealth rank
func (e *TradingEngine) CalculateSalePrice(ctx context.Context, q SaleQuote) (*domainTrading.PriceBreakdown, error) {
	season, err := e.season.Require()
	if err != nil {
		return nil, err
	}
	cargo, err := e.findCargo(ctx, q.CargoName)
	if err != nil {
		return nil, err
	}
	props, err := e.repo.SettlementProperties(ctx, q.SettlementName)
	if err != nil {
		return nil, err
	}
	b, err := domainTrading.CalculateSalePrice(cargo, q.Quantity, season, domainTrading.ParseQuality(q.Quality), props.WealthRank, q.Haggle)
	if err != nil {
		return nil, err
	}
	e.metrics.RecordPriceCalculation("sale")
	return b, nil
}

// DesperateSaleOffer evaluates a half-price sale at a Trade settlement
func (e *TradingEngine) DesperateSaleOffer(ctx context.Context, settlementName, cargoName string, quantity int, quality string) (*domainTrading.SpecialSaleOffer, error) {
	season, settlement, err := e.seasonAndSettlement(ctx, settlementName)
	if err != nil {
		return nil, err
	}
	cargo, err := e.findCargo(ctx, cargoName)
	if err != nil {
		return nil, err
	}
	return domainTrading.EvaluateDesperateSale(settlement, cargo, quantity, season, domainTrading.ParseQuality(quality))
}

// RumorSaleOffer evaluates a premium sale unlocked by a rumor
func (e *TradingEngine) RumorSaleOffer(ctx context.Context, settlementName, cargoName string, quantity int, quality string, rumor *domainTrading.Rumor) (*domainTrading.SpecialSaleOffer, error) {
	season, settlement, err := e.seasonAndSettlement(ctx, settlementName)
	if err != nil {
		return nil, err
	}
	cargo, err := e.findCargo(ctx, cargoName)
	if err != nil {
		return nil, err
	}
	return domainTrading.EvaluateRumorSale(settlement, cargo, quantity, season, domainTrading.ParseQuality(quality), rumor.BindTo(settlement.Name, cargo.Name))
}

// ExecuteSellingWorkflow runs the full selling protocol
func (e *TradingEngine) ExecuteSellingWorkflow(ctx context.Context, order SellOrder) (*services.SellResult, error) {
	season, settlement, err := e.seasonAndSettlement(ctx, order.SettlementName)
	if err != nil {
		return nil, err
	}
	cargo, err := e.findCargo(ctx, order.CargoName)
	if err != nil {
		return nil, err
	}
	saleType, err := domainTrading.ParseSaleType(order.SaleType)
	if err != nil {
		return nil, err
	}
	return e.workflow.Execute(ctx, services.SaleRequest{
		Settlement:      settlement,
		Cargo:           cargo,
		Quantity:        order.Quantity,
		Season:          season,
		Quality:         domainTrading.ParseQuality(order.Quality),
		SaleType:        saleType,
		PurchaseHistory: order.PurchaseHistory,
		Rumor:           order.Rumor.BindTo(settlement.Name, cargo.Name),
		Haggle:          order.Haggle,
	})
}

// GenerateRandomMerchant draws a merchant for a settlement's wealth
func (e *TradingEngine) GenerateRandomMerchant(ctx context.Context, settlementName string) (*merchant.Merchant, error) {
	settlement, err := e.findSettlement(ctx, settlementName)
	if err != nil {
		return nil, err
	}
	return e.merchants.Generate(ctx, settlement.WealthRank)
}

// SeasonalPrice returns the repository's base price for cargo in the current season
func (e *TradingEngine) SeasonalPrice(ctx context.Context, cargoName, quality string) (decimal.Decimal, error) {
	season, err := e.season.Require()
	if err != nil {
		return decimal.Zero, err
	}
	return e.repo.SeasonalPrice(ctx, cargoName, season, domainTrading.ParseQuality(quality))
}

func (e *TradingEngine) seasonAndSettlement(ctx context.Context, settlementName string) (shared.Season, *domainTrading.Settlement, error) {
	season, err := e.season.Require()
	if err != nil {
		return "", nil, err
	}
	settlement, err := e.findSettlement(ctx, settlementName)
	if err != nil {
		return "", nil, err
	}
	return season, settlement, nil
}

// FindSettlement resolves a settlement by identifier. An exact match wins; otherwise the
// name is matched ignoring case so that callers always get the canonical record back.
func (e *TradingEngine) FindSettlement(ctx context.Context, name string) (*domainTrading.Settlement, error) {
	return e.findSettlement(ctx, name)
}

func (e *TradingEngine) findSettlement(ctx context.Context, name string) (*domainTrading.Settlement, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainTrading.ErrSettlementRequired
	}
	settlements, err := e.repo.AllSettlements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settlements: %w", err)
	}
	var folded *domainTrading.Settlement
	for _, s := range settlements {
		if s.Identifier() == name {
			return s, nil
		}
		if folded == nil && strings.EqualFold(s.Identifier(), name) {
			folded = s
		}
	}
	if folded != nil {
		return folded, nil
	}
	return nil, shared.NewNotFoundError("settlement", name)
}

func (e *TradingEngine) findCargo(ctx context.Context, name string) (*domainTrading.CargoType, error) {
	if name == "" {
		return nil, domainTrading.ErrCargoRequired
	}
	cargoTypes, err := e.repo.CargoTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cargo types: %w", err)
	}
	for _, c := range cargoTypes {
		if c.Is(name) {
			return c, nil
		}
	}
	return nil, shared.NewNotFoundError("cargo type", name)
}
