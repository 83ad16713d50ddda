package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
	"github.com/andrescamacho/trading-engine-go/pkg/utils"
)

// Ledger transaction kinds
const (
	KindCredit   = "credit"
	KindDebit    = "debit"
	KindCargoIn  = "cargo_in"
	KindCargoOut = "cargo_out"
)

// Actor is a purse holder as seen by the CLI
type Actor struct {
	ID    string
	Name  string
	Purse decimal.Decimal
}

// LedgerEntry is one recorded movement of currency or cargo
type LedgerEntry struct {
	ID           string
	Kind         string
	CargoName    string
	Quantity     int
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	Timestamp    time.Time
}

// GormLedgerAdapter implements trading.LedgerAdapter using GORM.
// Every mutation runs in one database transaction and appends a ledger entry.
type GormLedgerAdapter struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormLedgerAdapter creates a new GORM ledger adapter
func NewGormLedgerAdapter(db *gorm.DB, clock shared.Clock) *GormLedgerAdapter {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormLedgerAdapter{db: db, clock: clock}
}

// EnsureActor creates the actor with an opening purse if it does not exist yet
func (a *GormLedgerAdapter) EnsureActor(ctx context.Context, id, name string, purse decimal.Decimal) (*Actor, error) {
	if strings.TrimSpace(id) == "" {
		return nil, shared.NewValidationError("actor_id", "actor is required")
	}
	if purse.IsNegative() {
		return nil, shared.NewValidationError("purse", "opening purse cannot be negative")
	}

	now := a.clock.Now()
	model := ActorModel{ID: id, Name: name, Purse: purse.Round(2), CreatedAt: now, UpdatedAt: now}
	result := a.db.WithContext(ctx).Where(ActorModel{ID: id}).FirstOrCreate(&model)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to ensure actor: %w", result.Error)
	}
	return &Actor{ID: model.ID, Name: model.Name, Purse: model.Purse}, nil
}

// FindActor loads an actor's purse
func (a *GormLedgerAdapter) FindActor(ctx context.Context, id string) (*Actor, error) {
	model, err := findActor(a.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return &Actor{ID: model.ID, Name: model.Name, Purse: model.Purse}, nil
}

// AddCurrency credits an actor's purse
func (a *GormLedgerAdapter) AddCurrency(ctx context.Context, actorID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("amount", "amount must be positive")
	}
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, err := findActor(tx, actorID)
		if err != nil {
			return err
		}
		actor.Purse = actor.Purse.Add(amount).Round(2)
		if err := a.savePurse(tx, actor); err != nil {
			return err
		}
		return a.record(tx, actor, KindCredit, "", 0, amount)
	})
}

// DeductCurrency debits an actor's purse; the purse never goes negative
func (a *GormLedgerAdapter) DeductCurrency(ctx context.Context, actorID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("amount", "amount must be positive")
	}
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, err := findActor(tx, actorID)
		if err != nil {
			return err
		}
		if actor.Purse.LessThan(amount) {
			return fmt.Errorf("%w: %s holds %s, needs %s", trading.ErrInsufficientFunds, actorID, actor.Purse.StringFixed(2), amount.StringFixed(2))
		}
		actor.Purse = actor.Purse.Sub(amount).Round(2)
		if err := a.savePurse(tx, actor); err != nil {
			return err
		}
		return a.record(tx, actor, KindDebit, "", 0, amount.Neg())
	})
}

// AddCargoToInventory stores a new lot
func (a *GormLedgerAdapter) AddCargoToInventory(ctx context.Context, actorID string, lot trading.CargoLot) error {
	if lot.Quantity <= 0 {
		return shared.NewValidationError("quantity", "quantity must be positive")
	}
	if strings.TrimSpace(lot.CargoName) == "" {
		return trading.ErrCargoRequired
	}
	acquired := lot.AcquiredAt
	if acquired.IsZero() {
		acquired = a.clock.Now()
	}
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, err := findActor(tx, actorID)
		if err != nil {
			return err
		}
		model := &InventoryLotModel{
			ActorID:        actorID,
			CargoName:      lot.CargoName,
			Quality:        string(trading.ParseQuality(string(lot.Quality))),
			Quantity:       lot.Quantity,
			PricePerUnit:   lot.PricePerUnit,
			SettlementName: lot.SettlementName,
			AcquiredAt:     acquired,
		}
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to add cargo: %w", err)
		}
		return a.record(tx, actor, KindCargoIn, lot.CargoName, lot.Quantity, decimal.Zero)
	})
}

// RemoveCargoFromInventory takes quantity EP of a cargo, oldest lots first
func (a *GormLedgerAdapter) RemoveCargoFromInventory(ctx context.Context, actorID string, cargoName string, quantity int) error {
	if quantity <= 0 {
		return shared.NewValidationError("quantity", "quantity must be positive")
	}
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, err := findActor(tx, actorID)
		if err != nil {
			return err
		}

		var lots []InventoryLotModel
		err = tx.Where("actor_id = ? AND LOWER(cargo_name) = ?", actorID, strings.ToLower(strings.TrimSpace(cargoName))).
			Order("acquired_at ASC, id ASC").
			Find(&lots).Error
		if err != nil {
			return fmt.Errorf("failed to load inventory: %w", err)
		}

		held := 0
		for _, lot := range lots {
			held += lot.Quantity
		}
		if held < quantity {
			return fmt.Errorf("%w: %s holds %d EP of %s, needs %d", trading.ErrInsufficientCargo, actorID, held, cargoName, quantity)
		}

		remaining := quantity
		for i := range lots {
			if remaining == 0 {
				break
			}
			lot := &lots[i]
			take := utils.Min(lot.Quantity, remaining)
			remaining -= take
			if take == lot.Quantity {
				if err := tx.Delete(lot).Error; err != nil {
					return fmt.Errorf("failed to remove cargo lot: %w", err)
				}
				continue
			}
			if err := tx.Model(lot).Update("quantity", lot.Quantity-take).Error; err != nil {
				return fmt.Errorf("failed to reduce cargo lot: %w", err)
			}
		}
		return a.record(tx, actor, KindCargoOut, cargoName, quantity, decimal.Zero)
	})
}

// Inventory lists an actor's lots, oldest first
func (a *GormLedgerAdapter) Inventory(ctx context.Context, actorID string) ([]trading.CargoLot, error) {
	var models []InventoryLotModel
	err := a.db.WithContext(ctx).Where("actor_id = ?", actorID).Order("acquired_at ASC, id ASC").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	lots := make([]trading.CargoLot, len(models))
	for i, m := range models {
		lots[i] = trading.CargoLot{
			CargoName:      m.CargoName,
			Quantity:       m.Quantity,
			Quality:        trading.Quality(m.Quality),
			PricePerUnit:   m.PricePerUnit,
			SettlementName: m.SettlementName,
			AcquiredAt:     m.AcquiredAt,
		}
	}
	return lots, nil
}

// LatestPurchase returns where and when the actor last bought a cargo, or nil if it holds none
func (a *GormLedgerAdapter) LatestPurchase(ctx context.Context, actorID, cargoName string) (*trading.PurchaseRecord, error) {
	var model InventoryLotModel
	err := a.db.WithContext(ctx).
		Where("actor_id = ? AND LOWER(cargo_name) = ?", actorID, strings.ToLower(strings.TrimSpace(cargoName))).
		Order("acquired_at DESC, id DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest purchase: %w", err)
	}
	acquired := model.AcquiredAt
	return &trading.PurchaseRecord{SettlementName: model.SettlementName, PurchasedAt: &acquired}, nil
}

// Transactions returns the most recent ledger entries for an actor, newest first
func (a *GormLedgerAdapter) Transactions(ctx context.Context, actorID string, limit int) ([]LedgerEntry, error) {
	query := a.db.WithContext(ctx).Where("actor_id = ?", actorID).Order("timestamp DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var models []TransactionModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}
	entries := make([]LedgerEntry, len(models))
	for i, m := range models {
		entries[i] = LedgerEntry{
			ID:           m.ID,
			Kind:         m.Kind,
			CargoName:    m.CargoName,
			Quantity:     m.Quantity,
			Amount:       m.Amount,
			BalanceAfter: m.BalanceAfter,
			Timestamp:    m.Timestamp,
		}
	}
	return entries, nil
}

func (a *GormLedgerAdapter) savePurse(tx *gorm.DB, actor *ActorModel) error {
	actor.UpdatedAt = a.clock.Now()
	err := tx.Model(actor).Updates(map[string]interface{}{"purse": actor.Purse, "updated_at": actor.UpdatedAt}).Error
	if err != nil {
		return fmt.Errorf("failed to update purse: %w", err)
	}
	return nil
}

func (a *GormLedgerAdapter) record(tx *gorm.DB, actor *ActorModel, kind, cargoName string, quantity int, amount decimal.Decimal) error {
	entry := &TransactionModel{
		ID:           utils.GenerateTransactionID(),
		ActorID:      actor.ID,
		Kind:         kind,
		CargoName:    cargoName,
		Quantity:     quantity,
		Amount:       amount,
		BalanceAfter: actor.Purse,
		Timestamp:    a.clock.Now(),
	}
	if err := tx.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	return nil
}

func findActor(db *gorm.DB, id string) (*ActorModel, error) {
	var model ActorModel
	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("actor", id)
		}
		return nil, fmt.Errorf("failed to find actor: %w", err)
	}
	return &model, nil
}
