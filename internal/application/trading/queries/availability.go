package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/trading-engine-go/internal/application/mediator"
	appTrading "github.com/andrescamacho/trading-engine-go/internal/application/trading"
)

// CheckAvailabilityQuery rolls for cargo availability at a settlement
type CheckAvailabilityQuery struct {
	SettlementName string
}

// DetermineCargoTypesQuery lists the cargo a settlement offers this season
type DetermineCargoTypesQuery struct {
	SettlementName string
}

// CalculateCargoSizeQuery rolls the size of the cargo on offer
type CalculateCargoSizeQuery struct {
	SettlementName string
}

// AvailabilityHandler answers the three availability queries; responses are
// *services.AvailabilityResult, *services.CargoTypesResult and *services.CargoSizeResult
type AvailabilityHandler struct {
	engine *appTrading.TradingEngine
}

// NewAvailabilityHandler creates a new AvailabilityHandler
func NewAvailabilityHandler(engine *appTrading.TradingEngine) *AvailabilityHandler {
	return &AvailabilityHandler{engine: engine}
}

// Handle dispatches on the concrete query type
func (h *AvailabilityHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch q := request.(type) {
	case *CheckAvailabilityQuery:
		return h.engine.CheckCargoAvailability(ctx, q.SettlementName)
	case *DetermineCargoTypesQuery:
		return h.engine.DetermineCargoTypes(ctx, q.SettlementName)
	case *CalculateCargoSizeQuery:
		return h.engine.CalculateCargoSize(ctx, q.SettlementName)
	default:
		return nil, fmt.Errorf("invalid request type: %T", request)
	}
}
