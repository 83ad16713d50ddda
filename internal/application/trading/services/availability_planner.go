package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/trading-engine-go/internal/application/common"
	"github.com/andrescamacho/trading-engine-go/internal/domain/dice"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
	"github.com/andrescamacho/trading-engine-go/pkg/utils"
)

// AvailabilityResult is the outcome of an availability check
type AvailabilityResult struct {
	Settlement string
	Season     shared.Season
	Available  bool
	Chance     int
	Roll       int
	// FromPlan is true when a ready pipeline plan took part in the decision
	FromPlan  bool
	SlotCount int
}

// CargoSizeResult is the outcome of a cargo size calculation
type CargoSizeResult struct {
	BaseMultiplier int
	SizeMultiplier int
	TotalSize      int
	TradeBonus     bool
	Rolls          []int
	FromPlan       bool
}

// CargoTypesResult lists the cargo a settlement offers this season
type CargoTypesResult struct {
	CargoTypes     []string
	FromPlan       bool
	TradeGoodsRoll int
}

// AvailabilityPlanner caches pipeline plans per season and settlement and falls back
// to direct rule computation whenever no plan is usable.
//
// The cache lock only protects memory. Concurrent requests for the same key are not
// coalesced; each calls the provider and the last write wins.
type AvailabilityPlanner struct {
	provider PlanGenerator
	source   dice.Source
	metrics  MetricsRecorder

	mu         sync.Mutex
	cache      map[string]*AvailabilityPlan
	lastSeason shared.Season
	status     PipelineStatus
	lastErr    error
}

// PlannerOption configures an AvailabilityPlanner
type PlannerOption func(*AvailabilityPlanner)

// WithPlannerMetrics sets the metrics recorder
func WithPlannerMetrics(m MetricsRecorder) PlannerOption {
	return func(p *AvailabilityPlanner) {
		if m != nil {
			p.metrics = m
		}
	}
}

// NewAvailabilityPlanner creates a planner. A nil provider puts it in disabled mode.
func NewAvailabilityPlanner(provider PlanGenerator, source dice.Source, opts ...PlannerOption) *AvailabilityPlanner {
	p := &AvailabilityPlanner{
		provider: provider,
		source:   source,
		metrics:  NoopMetrics(),
		cache:    make(map[string]*AvailabilityPlan),
		status:   PipelineIdle,
	}
	if provider == nil {
		p.status = PipelineDisabled
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Status returns the pipeline health
func (p *AvailabilityPlanner) Status() PipelineStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// LastError returns the most recent provider failure, if any
func (p *AvailabilityPlanner) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Invalidate drops every cached plan
func (p *AvailabilityPlanner) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.invalidateLocked()
}

func (p *AvailabilityPlanner) invalidateLocked() {
	p.cache = make(map[string]*AvailabilityPlan)
	if p.status == PipelineReady {
		p.status = PipelineIdle
	}
}

// CachedPlan returns the live plan for a key without consulting the provider
func (p *AvailabilityPlanner) CachedPlan(settlement *trading.Settlement, season shared.Season) (*AvailabilityPlan, bool) {
	if settlement == nil {
		return nil, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if season != p.lastSeason {
		return nil, false
	}
	plan, ok := p.cache[planKey(season, settlement)]
	return plan, ok
}

// GeneratePlan returns the plan for a settlement and season.
// Provider failures are logged and reported as PlanFailed, never returned as errors.
func (p *AvailabilityPlanner) GeneratePlan(ctx context.Context, settlement *trading.Settlement, season shared.Season, forceRefresh bool) PlanSource {
	if p.provider == nil {
		p.metrics.RecordPlanRequest(PlanOutcomeDisabled)
		return PlanDisabled{}
	}
	if settlement == nil {
		return PlanFailed{Err: trading.ErrSettlementRequired}
	}

	logger := common.LoggerFromContext(ctx)
	key := planKey(season, settlement)

	p.mu.Lock()
	if forceRefresh || (p.lastSeason != "" && p.lastSeason != season) {
		p.invalidateLocked()
	}
	p.lastSeason = season
	if plan, ok := p.cache[key]; ok {
		p.mu.Unlock()
		p.metrics.RecordPlanRequest(PlanOutcomeCacheHit)
		return PlanReady{Plan: plan}
	}
	p.mu.Unlock()

	req := PlanRequest{Settlement: settlement, Season: season}
	raw, err := p.provider.GeneratePlan(ctx, req)
	if err != nil {
		return p.fail(ctx, key, fmt.Errorf("pipeline provider failed: %w", err))
	}
	if raw == nil {
		logger.Log(common.LevelWarning, "Pipeline returned no plan, using direct rules", map[string]interface{}{
			"plan_key": key,
		})
		p.metrics.RecordPlanRequest(PlanOutcomeUnavailable)
		return PlanUnavailable{Reason: "provider returned no plan"}
	}

	plan, err := NormalizePlan(raw, req)
	if err != nil {
		return p.fail(ctx, key, err)
	}

	p.mu.Lock()
	p.cache[key] = plan
	p.status = PipelineReady
	p.lastErr = nil
	p.mu.Unlock()

	logger.Log(common.LevelDebug, "Availability plan cached", map[string]interface{}{
		"plan_key": key,
		"slots":    len(plan.Slots),
	})
	p.metrics.RecordPlanRequest(PlanOutcomeGenerated)
	return PlanReady{Plan: plan}
}

func (p *AvailabilityPlanner) fail(ctx context.Context, key string, err error) PlanSource {
	p.mu.Lock()
	p.status = PipelineError
	p.lastErr = err
	p.mu.Unlock()

	common.LoggerFromContext(ctx).Log(common.LevelError, "Availability pipeline failed, falling back to direct rules", map[string]interface{}{
		"plan_key": key,
		"error":    err.Error(),
	})
	p.metrics.RecordPlanRequest(PlanOutcomeFailed)
	return PlanFailed{Err: err}
}

// CheckAvailability rolls d100 against min((size + wealth) x 10, 100).
// With a ready plan the plan must also list at least one slot.
func (p *AvailabilityPlanner) CheckAvailability(ctx context.Context, settlement *trading.Settlement, season shared.Season) (*AvailabilityResult, error) {
	if err := validatePlannerArgs(settlement, season); err != nil {
		return nil, err
	}

	source := p.GeneratePlan(ctx, settlement, season, false)
	chance := trading.AvailabilityChance(settlement.SizeRank, settlement.WealthRank)
	roll, err := dice.D100(ctx, p.source)
	if err != nil {
		return nil, fmt.Errorf("availability roll: %w", err)
	}

	result := &AvailabilityResult{
		Settlement: settlement.Name,
		Season:     season,
		Chance:     chance,
		Roll:       roll,
		Available:  roll <= chance,
	}

	switch src := source.(type) {
	case PlanReady:
		result.FromPlan = true
		result.SlotCount = len(src.Plan.Slots)
		result.Available = result.Available && src.Plan.HasSlots()
	case PlanDisabled, PlanUnavailable, PlanFailed:
	}

	origin := "legacy"
	if result.FromPlan {
		origin = "pipeline"
	}
	p.metrics.RecordAvailabilityCheck(origin, result.Available)
	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Cargo availability checked", map[string]interface{}{
		"settlement": settlement.Name,
		"season":     string(season),
		"chance":     chance,
		"roll":       roll,
		"available":  result.Available,
		"source":     origin,
	})
	return result, nil
}

// CalculateCargoSize computes (size + wealth) x ceil(roll/10) x 10.
// Trade settlements roll twice and keep the larger multiplier. Plan sizing hints skip the rolls.
func (p *AvailabilityPlanner) CalculateCargoSize(ctx context.Context, settlement *trading.Settlement, season shared.Season, isTrade bool) (*CargoSizeResult, error) {
	if err := validatePlannerArgs(settlement, season); err != nil {
		return nil, err
	}

	result := &CargoSizeResult{BaseMultiplier: trading.BaseCargoMultiplier(settlement)}

	source := p.GeneratePlan(ctx, settlement, season, false)
	switch src := source.(type) {
	case PlanReady:
		hints := src.Plan.SlotPlan
		if hints.BaseMultiplier != nil {
			result.BaseMultiplier = *hints.BaseMultiplier
		}
		if hints.overridesSize() {
			result.FromPlan = true
			result.TradeBonus = hints.TradeBonus != nil && *hints.TradeBonus
			if hints.SizeMultiplier != nil {
				result.SizeMultiplier = *hints.SizeMultiplier
			}
			if hints.TotalSize != nil {
				result.TotalSize = *hints.TotalSize
			} else {
				result.TotalSize = result.BaseMultiplier * result.SizeMultiplier
			}
			return result, nil
		}
	case PlanDisabled, PlanUnavailable, PlanFailed:
	}

	roll, err := dice.D100(ctx, p.source)
	if err != nil {
		return nil, fmt.Errorf("cargo size roll: %w", err)
	}
	result.Rolls = append(result.Rolls, roll)
	result.SizeMultiplier = dice.TensMultiplier(roll)

	if isTrade {
		second, err := dice.D100(ctx, p.source)
		if err != nil {
			return nil, fmt.Errorf("trade bonus roll: %w", err)
		}
		result.Rolls = append(result.Rolls, second)
		result.SizeMultiplier = utils.Max(result.SizeMultiplier, dice.TensMultiplier(second))
		result.TradeBonus = true
	}

	result.TotalSize = result.BaseMultiplier * result.SizeMultiplier
	return result, nil
}

// DetermineCargoTypes lists the cached plan's cargo, or the settlement's production cargo
// plus one seasonal trade good for Trade settlements
func (p *AvailabilityPlanner) DetermineCargoTypes(ctx context.Context, settlement *trading.Settlement, season shared.Season) (*CargoTypesResult, error) {
	if err := validatePlannerArgs(settlement, season); err != nil {
		return nil, err
	}

	if plan, ok := p.CachedPlan(settlement, season); ok && plan.HasSlots() {
		return &CargoTypesResult{CargoTypes: plan.CargoNames(), FromPlan: true}, nil
	}

	result := &CargoTypesResult{}
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			result.CargoTypes = append(result.CargoTypes, name)
		}
	}

	for _, category := range settlement.ProductionCategories {
		if cargo, ok := trading.ProductionCargo(category); ok {
			add(cargo)
		}
	}

	if settlement.IsTrade() {
		goods := trading.SeasonalTradeGoods(season)
		roll, err := dice.D100(ctx, p.source)
		if err != nil {
			return nil, fmt.Errorf("trade goods roll: %w", err)
		}
		result.TradeGoodsRoll = roll
		add(goods[dice.Pick(roll, len(goods))])
	}

	return result, nil
}

func validatePlannerArgs(settlement *trading.Settlement, season shared.Season) error {
	if settlement == nil {
		return trading.ErrSettlementRequired
	}
	if !season.IsValid() {
		return shared.NewValidationError("season", fmt.Sprintf("invalid season %q", season))
	}
	return nil
}
