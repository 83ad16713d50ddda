package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/trading-engine-go/internal/application/mediator"
	appTrading "github.com/andrescamacho/trading-engine-go/internal/application/trading"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

// PurchasePriceQuery prices a purchase in the current season
type PurchasePriceQuery struct {
	Quote appTrading.PurchaseQuote
}

// SalePriceQuery prices a normal sale at a settlement
type SalePriceQuery struct {
	Quote appTrading.SaleQuote
}

// SpecialSaleQuery asks for a desperate offer, or a rumor offer when Rumor is set
type SpecialSaleQuery struct {
	SettlementName string
	CargoName      string
	Quantity       int
	Quality        string
	Rumor          *trading.Rumor
}

// PricingHandler answers price queries with *trading.PriceBreakdown or *trading.SpecialSaleOffer
type PricingHandler struct {
	engine *appTrading.TradingEngine
}

// NewPricingHandler creates a new PricingHandler
func NewPricingHandler(engine *appTrading.TradingEngine) *PricingHandler {
	return &PricingHandler{engine: engine}
}

// Handle dispatches on the concrete query type
func (h *PricingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch q := request.(type) {
	case *PurchasePriceQuery:
		return h.engine.CalculatePurchasePrice(ctx, q.Quote)
	case *SalePriceQuery:
		return h.engine.CalculateSalePrice(ctx, q.Quote)
	case *SpecialSaleQuery:
		if q.Rumor != nil {
			return h.engine.RumorSaleOffer(ctx, q.SettlementName, q.CargoName, q.Quantity, q.Quality, q.Rumor)
		}
		return h.engine.DesperateSaleOffer(ctx, q.SettlementName, q.CargoName, q.Quantity, q.Quality)
	default:
		return nil, fmt.Errorf("invalid request type: %T", request)
	}
}
