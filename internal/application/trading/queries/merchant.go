package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/trading-engine-go/internal/application/mediator"
	appTrading "github.com/andrescamacho/trading-engine-go/internal/application/trading"
)

// GenerateMerchantQuery rolls up a merchant for a settlement; the response is a *merchant.Merchant
type GenerateMerchantQuery struct {
	SettlementName string
}

// GenerateMerchantHandler handles GenerateMerchantQuery
type GenerateMerchantHandler struct {
	engine *appTrading.TradingEngine
}

// NewGenerateMerchantHandler creates a new GenerateMerchantHandler
func NewGenerateMerchantHandler(engine *appTrading.TradingEngine) *GenerateMerchantHandler {
	return &GenerateMerchantHandler{engine: engine}
}

// Handle executes the query
func (h *GenerateMerchantHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	q, ok := request.(*GenerateMerchantQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GenerateMerchantQuery")
	}
	return h.engine.GenerateRandomMerchant(ctx, q.SettlementName)
}
