package helpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

// MockLedger is an in-memory trading.LedgerAdapter keeping one purse and a cargo count per actor
type MockLedger struct {
	mu     sync.Mutex
	Purses map[string]decimal.Decimal
	Cargo  map[string]map[string]int
	Lots   []trading.CargoLot
	// Calls records the method names in call order
	Calls []string
}

// NewMockLedger creates an empty ledger
func NewMockLedger() *MockLedger {
	return &MockLedger{
		Purses: make(map[string]decimal.Decimal),
		Cargo:  make(map[string]map[string]int),
	}
}

// Fund sets an actor's purse
func (m *MockLedger) Fund(actorID string, amount decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Purses[actorID] = amount
}

// Stock sets how much of a cargo an actor holds
func (m *MockLedger) Stock(actorID, cargoName string, quantity int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Cargo[actorID] == nil {
		m.Cargo[actorID] = make(map[string]int)
	}
	m.Cargo[actorID][cargoName] = quantity
}

func (m *MockLedger) AddCurrency(ctx context.Context, actorID string, amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "AddCurrency")
	m.Purses[actorID] = m.Purses[actorID].Add(amount)
	return nil
}

func (m *MockLedger) DeductCurrency(ctx context.Context, actorID string, amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "DeductCurrency")
	if m.Purses[actorID].LessThan(amount) {
		return fmt.Errorf("%w: %s", trading.ErrInsufficientFunds, actorID)
	}
	m.Purses[actorID] = m.Purses[actorID].Sub(amount)
	return nil
}

func (m *MockLedger) AddCargoToInventory(ctx context.Context, actorID string, lot trading.CargoLot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "AddCargoToInventory")
	if m.Cargo[actorID] == nil {
		m.Cargo[actorID] = make(map[string]int)
	}
	m.Cargo[actorID][lot.CargoName] += lot.Quantity
	m.Lots = append(m.Lots, lot)
	return nil
}

func (m *MockLedger) RemoveCargoFromInventory(ctx context.Context, actorID string, cargoName string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "RemoveCargoFromInventory")
	if m.Cargo[actorID][cargoName] < quantity {
		return fmt.Errorf("%w: %s", trading.ErrInsufficientCargo, actorID)
	}
	m.Cargo[actorID][cargoName] -= quantity
	return nil
}
