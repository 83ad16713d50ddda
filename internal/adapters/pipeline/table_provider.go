package pipeline

import (
	"context"
	"strings"

	"github.com/andrescamacho/trading-engine-go/internal/adapters/dataset"
	"github.com/andrescamacho/trading-engine-go/internal/application/common"
	"github.com/andrescamacho/trading-engine-go/internal/application/trading/services"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

// TableProvider builds availability plans from a dataset's seasonal plan table.
// It implements services.PlanCreator; wrap it in services.CreatorAdapter for the planner.
type TableProvider struct {
	entries []dataset.PlanEntry
}

// NewTableProvider creates a provider over the dataset's plan entries
func NewTableProvider(ds *dataset.Dataset) *TableProvider {
	return &TableProvider{entries: append([]dataset.PlanEntry(nil), ds.Plans...)}
}

// Generator returns the provider in the shape the planner consumes
func (p *TableProvider) Generator() services.PlanGenerator {
	return services.CreatorAdapter{Creator: p}
}

// CreatePlan merges every entry matching the settlement and season.
// No matching entry yields a nil plan, which the planner treats as unavailable.
func (p *TableProvider) CreatePlan(ctx context.Context, settlement *trading.Settlement, season shared.Season) (services.RawPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, trading.ErrSettlementRequired
	}

	var (
		slots    []interface{}
		slotPlan map[string]interface{}
		matched  []interface{}
	)
	for _, entry := range p.entries {
		if !p.matches(entry, settlement, season) {
			continue
		}
		matched = append(matched, entry.Name)
		for _, slot := range entry.Slots {
			slots = append(slots, copyMap(slot))
		}
		if slotPlan == nil && len(entry.SlotPlan) > 0 {
			slotPlan = copyMap(entry.SlotPlan)
		}
	}
	if len(matched) == 0 {
		return nil, nil
	}

	common.LoggerFromContext(ctx).Log(common.LevelDebug, "Plan table matched", map[string]interface{}{
		"settlement": settlement.Identifier(),
		"season":     season.String(),
		"entries":    len(matched),
		"slots":      len(slots),
	})

	raw := services.RawPlan{
		"settlement":      settlement.Identifier(),
		"season":          season.String(),
		"slots":           slots,
		"candidate_table": matched,
	}
	if slotPlan != nil {
		raw["slot_plan"] = slotPlan
	}
	return raw, nil
}

func (p *TableProvider) matches(entry dataset.PlanEntry, settlement *trading.Settlement, season shared.Season) bool {
	entrySeason, err := shared.ParseSeason(entry.Season)
	if err != nil || entrySeason != season {
		return false
	}
	if entry.Settlement != "" && entry.Settlement != settlement.Identifier() {
		return false
	}
	if entry.Region != "" && !strings.EqualFold(entry.Region, settlement.Region) {
		return false
	}
	if entry.Production != "" && !settlement.HasProduction(entry.Production) {
		return false
	}
	return true
}

func copyMap(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
