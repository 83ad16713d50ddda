package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/trading-engine-go/internal/application/mediator"
	appTrading "github.com/andrescamacho/trading-engine-go/internal/application/trading"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
)

// SetSeasonCommand sets the engine's trading season
type SetSeasonCommand struct {
	Season string
}

// SetSeasonResponse reports the stored season
type SetSeasonResponse struct {
	Previous shared.Season
	Season   shared.Season
	Changed  bool
}

// SetSeasonHandler handles SetSeasonCommand
type SetSeasonHandler struct {
	engine *appTrading.TradingEngine
}

// NewSetSeasonHandler creates a new SetSeasonHandler
func NewSetSeasonHandler(engine *appTrading.TradingEngine) *SetSeasonHandler {
	return &SetSeasonHandler{engine: engine}
}

// Handle executes the SetSeason command
func (h *SetSeasonHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SetSeasonCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SetSeasonCommand")
	}

	previous, _ := h.engine.Season()
	season, err := h.engine.SetSeason(ctx, cmd.Season)
	if err != nil {
		return nil, err
	}

	return &SetSeasonResponse{
		Previous: previous,
		Season:   season,
		Changed:  previous != season,
	}, nil
}
