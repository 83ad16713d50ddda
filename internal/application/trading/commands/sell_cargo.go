package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/trading-engine-go/internal/application/mediator"
	appTrading "github.com/andrescamacho/trading-engine-go/internal/application/trading"
)

// SellCargoCommand runs the selling workflow
type SellCargoCommand struct {
	Order appTrading.SellOrder
}

// SellCargoHandler handles SellCargoCommand
type SellCargoHandler struct {
	engine *appTrading.TradingEngine
}

// NewSellCargoHandler creates a new SellCargoHandler
func NewSellCargoHandler(engine *appTrading.TradingEngine) *SellCargoHandler {
	return &SellCargoHandler{engine: engine}
}

// Handle executes the SellCargo command; the response is a *services.SellResult
func (h *SellCargoHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SellCargoCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SellCargoCommand")
	}

	result, err := h.engine.ExecuteSellingWorkflow(ctx, cmd.Order)
	if err != nil {
		return nil, err
	}
	return result, nil
}
