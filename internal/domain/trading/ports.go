package trading

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
)

// DataRepository is the read-only view of settlements and cargo the engine consumes.
// Implemented in the adapter layer (persistence).
type DataRepository interface {
	// AllSettlements returns every known settlement
	AllSettlements(ctx context.Context) ([]*Settlement, error)

	// CargoTypes returns every known cargo type
	CargoTypes(ctx context.Context) ([]*CargoType, error)

	// SettlementProperties returns rule-relevant properties for a settlement by name
	SettlementProperties(ctx context.Context, settlementName string) (*SettlementProperties, error)

	// SeasonalPrice returns the base price per unit of cargo for a season and quality tier
	SeasonalPrice(ctx context.Context, cargoName string, season shared.Season, quality Quality) (decimal.Decimal, error)

	// IsTradeSettlement reports whether the named settlement produces "Trade"
	IsTradeSettlement(ctx context.Context, settlementName string) (bool, error)
}

// CargoLot is a quantity of cargo moving into an actor's inventory
type CargoLot struct {
	CargoName      string
	Quantity       int
	Quality        Quality
	PricePerUnit   decimal.Decimal
	SettlementName string
	AcquiredAt     time.Time
}

// LedgerAdapter mutates currency and inventory on an external actor record.
// The engine never calls it; application commands use it after a result is final.
type LedgerAdapter interface {
	AddCurrency(ctx context.Context, actorID string, amount decimal.Decimal) error
	DeductCurrency(ctx context.Context, actorID string, amount decimal.Decimal) error
	AddCargoToInventory(ctx context.Context, actorID string, lot CargoLot) error
	RemoveCargoFromInventory(ctx context.Context, actorID string, cargoName string, quantity int) error
}
