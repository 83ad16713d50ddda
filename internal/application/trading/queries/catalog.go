package queries

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/trading-engine-go/internal/application/mediator"
	appTrading "github.com/andrescamacho/trading-engine-go/internal/application/trading"
	"github.com/andrescamacho/trading-engine-go/internal/application/trading/services"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

// ListSettlementsQuery lists every known settlement
type ListSettlementsQuery struct{}

// ListSettlementsResponse carries the settlements in repository order
type ListSettlementsResponse struct {
	Settlements []*trading.Settlement
}

// ListCargoTypesQuery lists every cargo with its price in the current season, if one is set
type ListCargoTypesQuery struct{}

// CargoPrice pairs a cargo with its average-quality price this season
type CargoPrice struct {
	Cargo *trading.CargoType
	Price decimal.Decimal
}

// ListCargoTypesResponse carries the cargo catalog
type ListCargoTypesResponse struct {
	Season shared.Season
	Cargo  []CargoPrice
}

// EngineStatusQuery reports the season and plan pipeline state
type EngineStatusQuery struct{}

// EngineStatusResponse describes engine state
type EngineStatusResponse struct {
	Season    shared.Season
	SeasonSet bool
	Pipeline  services.PipelineStatus
}

// CatalogHandler answers catalog and status queries
type CatalogHandler struct {
	engine *appTrading.TradingEngine
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(engine *appTrading.TradingEngine) *CatalogHandler {
	return &CatalogHandler{engine: engine}
}

// Handle dispatches on the concrete query type
func (h *CatalogHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch request.(type) {
	case *ListSettlementsQuery:
		settlements, err := h.engine.Settlements(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list settlements: %w", err)
		}
		return &ListSettlementsResponse{Settlements: settlements}, nil
	case *ListCargoTypesQuery:
		return h.listCargo(ctx)
	case *EngineStatusQuery:
		season, ok := h.engine.Season()
		return &EngineStatusResponse{Season: season, SeasonSet: ok, Pipeline: h.engine.PipelineStatus()}, nil
	default:
		return nil, fmt.Errorf("invalid request type: %T", request)
	}
}

func (h *CatalogHandler) listCargo(ctx context.Context) (*ListCargoTypesResponse, error) {
	cargo, err := h.engine.CargoTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cargo types: %w", err)
	}
	season, ok := h.engine.Season()
	resp := &ListCargoTypesResponse{Season: season, Cargo: make([]CargoPrice, 0, len(cargo))}
	for _, c := range cargo {
		entry := CargoPrice{Cargo: c}
		if ok {
			// Prices come straight from the cargo definition; listing never consults the pipeline
			if price, err := c.BasePrice(season, trading.QualityAverage); err == nil {
				entry.Price = price
			}
		}
		resp.Cargo = append(resp.Cargo, entry)
	}
	return resp, nil
}
