package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/trading-engine-go/internal/application/mediator"
	appTrading "github.com/andrescamacho/trading-engine-go/internal/application/trading"
	"github.com/andrescamacho/trading-engine-go/internal/application/trading/services"
)

// RefreshPlanCommand forces a new availability plan for a settlement
type RefreshPlanCommand struct {
	SettlementName string
}

// RefreshPlanResponse describes the plan source after the refresh
type RefreshPlanResponse struct {
	Source services.PlanSource
	Status services.PipelineStatus
}

// RefreshPlanHandler handles RefreshPlanCommand
type RefreshPlanHandler struct {
	engine *appTrading.TradingEngine
}

// NewRefreshPlanHandler creates a new RefreshPlanHandler
func NewRefreshPlanHandler(engine *appTrading.TradingEngine) *RefreshPlanHandler {
	return &RefreshPlanHandler{engine: engine}
}

// Handle executes the RefreshPlan command
func (h *RefreshPlanHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RefreshPlanCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RefreshPlanCommand")
	}

	src, err := h.engine.RefreshPlan(ctx, cmd.SettlementName)
	if err != nil {
		return nil, err
	}
	return &RefreshPlanResponse{Source: src, Status: h.engine.PipelineStatus()}, nil
}
