package services

import (
	"context"

	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

// PlanSlot is one obtainable cargo slot of an availability plan
type PlanSlot struct {
	CargoType   string
	Tier        string
	Probability *float64
}

// SlotPlan carries optional sizing hints; nil means "not provided"
type SlotPlan struct {
	BaseMultiplier *int
	SizeMultiplier *int
	TradeBonus     *bool
	TotalSize      *int
}

// overridesSize reports whether the plan fixes the cargo size without rolling
func (p SlotPlan) overridesSize() bool {
	return p.TotalSize != nil || p.SizeMultiplier != nil
}

// AvailabilityPlan is the canonical, normalized pipeline plan for one settlement and season
type AvailabilityPlan struct {
	Settlement     string
	Season         shared.Season
	Slots          []PlanSlot
	SlotPlan       SlotPlan
	CandidateTable interface{}
}

// HasSlots reports whether the plan lists any obtainable cargo
func (p *AvailabilityPlan) HasSlots() bool {
	return p != nil && len(p.Slots) > 0
}

// CargoNames returns the distinct slot cargo names in encounter order
func (p *AvailabilityPlan) CargoNames() []string {
	if p == nil {
		return nil
	}
	seen := make(map[string]bool, len(p.Slots))
	names := make([]string, 0, len(p.Slots))
	for _, slot := range p.Slots {
		if seen[slot.CargoType] {
			continue
		}
		seen[slot.CargoType] = true
		names = append(names, slot.CargoType)
	}
	return names
}

// PlanSource is the outcome of asking the planner for a plan.
// It is one of PlanDisabled, PlanUnavailable, PlanReady or PlanFailed.
type PlanSource interface {
	isPlanSource()
}

// PlanDisabled means no pipeline provider is configured
type PlanDisabled struct{}

// PlanUnavailable means the provider answered but had no plan for this request
type PlanUnavailable struct {
	Reason string
}

// PlanReady carries a usable plan
type PlanReady struct {
	Plan *AvailabilityPlan
}

// PlanFailed means the provider errored or returned a malformed plan
type PlanFailed struct {
	Err error
}

func (PlanDisabled) isPlanSource()    {}
func (PlanUnavailable) isPlanSource() {}
func (PlanReady) isPlanSource()       {}
func (PlanFailed) isPlanSource()      {}

// ReadyPlan extracts the plan from a PlanReady source
func ReadyPlan(src PlanSource) (*AvailabilityPlan, bool) {
	switch s := src.(type) {
	case PlanReady:
		return s.Plan, s.Plan != nil
	case PlanDisabled, PlanUnavailable, PlanFailed:
		return nil, false
	default:
		return nil, false
	}
}

// PipelineStatus reports the planner's pipeline health
type PipelineStatus string

const (
	PipelineDisabled PipelineStatus = "disabled"
	PipelineIdle     PipelineStatus = "idle"
	PipelineReady    PipelineStatus = "ready"
	PipelineError    PipelineStatus = "error"
)

// RawPlan is the provider's loosely typed plan document
type RawPlan = map[string]interface{}

// PlanRequest identifies the plan a provider should produce
type PlanRequest struct {
	Settlement *trading.Settlement
	Season     shared.Season
}

// PlanGenerator is the request-object shaped pipeline provider
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, req PlanRequest) (RawPlan, error)
}

// PlanCreator is the positional pipeline provider shape
type PlanCreator interface {
	CreatePlan(ctx context.Context, settlement *trading.Settlement, season shared.Season) (RawPlan, error)
}

// PlanGeneratorFunc adapts a function to PlanGenerator
type PlanGeneratorFunc func(ctx context.Context, req PlanRequest) (RawPlan, error)

func (f PlanGeneratorFunc) GeneratePlan(ctx context.Context, req PlanRequest) (RawPlan, error) {
	return f(ctx, req)
}

// CreatorAdapter exposes a PlanCreator as a PlanGenerator
type CreatorAdapter struct {
	Creator PlanCreator
}

func (a CreatorAdapter) GeneratePlan(ctx context.Context, req PlanRequest) (RawPlan, error) {
	return a.Creator.CreatePlan(ctx, req.Settlement, req.Season)
}

// planKey is the cache key: season::settlementIdentifier
func planKey(season shared.Season, settlement *trading.Settlement) string {
	return string(season) + "::" + settlement.Identifier()
}
