package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/trading-engine-go/internal/application/common"
	"github.com/andrescamacho/trading-engine-go/internal/application/mediator"
	"github.com/andrescamacho/trading-engine-go/internal/application/trading/services"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

// SettleSaleCommand applies a completed sale to an actor: cargo out, currency in
type SettleSaleCommand struct {
	ActorID string
	Result  *services.SellResult
}

// SettlePurchaseCommand applies a priced purchase to an actor: currency out, cargo in
type SettlePurchaseCommand struct {
	ActorID        string
	SettlementName string
	Breakdown      *trading.PriceBreakdown
}

// SettlementFinder resolves a settlement name to its canonical record
type SettlementFinder interface {
	FindSettlement(ctx context.Context, name string) (*trading.Settlement, error)
}

// SettlementResponse reports what moved
type SettlementResponse struct {
	ActorID   string
	CargoName string
	Quantity  int
	Amount    decimal.Decimal
}

// SettleSaleHandler handles SettleSaleCommand
type SettleSaleHandler struct {
	ledger trading.LedgerAdapter
}

// NewSettleSaleHandler creates a new SettleSaleHandler
func NewSettleSaleHandler(ledger trading.LedgerAdapter) *SettleSaleHandler {
	return &SettleSaleHandler{ledger: ledger}
}

// Handle executes the SettleSale command
func (h *SettleSaleHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SettleSaleCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SettleSaleCommand")
	}
	if cmd.ActorID == "" {
		return nil, shared.NewValidationError("actor_id", "actor is required")
	}
	if cmd.Result == nil || !cmd.Result.Success || cmd.Result.Breakdown == nil {
		return nil, shared.NewValidationError("result", "only a completed sale can be settled")
	}

	b := cmd.Result.Breakdown
	if err := h.ledger.RemoveCargoFromInventory(ctx, cmd.ActorID, b.CargoName, b.Quantity); err != nil {
		return nil, fmt.Errorf("failed to remove sold cargo: %w", err)
	}
	if err := h.ledger.AddCurrency(ctx, cmd.ActorID, b.TotalPrice); err != nil {
		return nil, fmt.Errorf("failed to credit sale proceeds: %w", err)
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Sale settled", map[string]interface{}{
		"actor":    cmd.ActorID,
		"cargo":    b.CargoName,
		"quantity": b.Quantity,
		"amount":   b.TotalPrice.String(),
	})
	return &SettlementResponse{ActorID: cmd.ActorID, CargoName: b.CargoName, Quantity: b.Quantity, Amount: b.TotalPrice}, nil
}

// SettlePurchaseHandler handles SettlePurchaseCommand
type SettlePurchaseHandler struct {
	ledger      trading.LedgerAdapter
	settlements SettlementFinder
	clock       shared.Clock
}

// NewSettlePurchaseHandler creates a new SettlePurchaseHandler
func NewSettlePurchaseHandler(ledger trading.LedgerAdapter, settlements SettlementFinder, clock shared.Clock) *SettlePurchaseHandler {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &SettlePurchaseHandler{ledger: ledger, settlements: settlements, clock: clock}
}

// Handle executes the SettlePurchase command
func (h *SettlePurchaseHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SettlePurchaseCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SettlePurchaseCommand")
	}
	if cmd.ActorID == "" {
		return nil, shared.NewValidationError("actor_id", "actor is required")
	}
	if cmd.Breakdown == nil {
		return nil, shared.NewValidationError("breakdown", "a priced purchase is required")
	}

	// The lot carries the canonical name; resale eligibility compares it exactly
	settlement, err := h.settlements.FindSettlement(ctx, cmd.SettlementName)
	if err != nil {
		return nil, err
	}

	b := cmd.Breakdown
	if err := h.ledger.DeductCurrency(ctx, cmd.ActorID, b.TotalPrice); err != nil {
		return nil, fmt.Errorf("failed to charge purchase: %w", err)
	}
	lot := trading.CargoLot{
		CargoName:      b.CargoName,
		Quantity:       b.Quantity,
		Quality:        b.Quality,
		PricePerUnit:   b.FinalPricePerUnit,
		SettlementName: settlement.Name,
		AcquiredAt:     h.clock.Now(),
	}
	if err := h.ledger.AddCargoToInventory(ctx, cmd.ActorID, lot); err != nil {
		return nil, fmt.Errorf("failed to stow purchased cargo: %w", err)
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Purchase settled", map[string]interface{}{
		"actor":      cmd.ActorID,
		"cargo":      b.CargoName,
		"quantity":   b.Quantity,
		"amount":     b.TotalPrice.String(),
		"settlement": settlement.Name,
	})
	return &SettlementResponse{ActorID: cmd.ActorID, CargoName: b.CargoName, Quantity: b.Quantity, Amount: b.TotalPrice}, nil
}
