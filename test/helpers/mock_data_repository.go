package helpers

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

// MockDataRepository is an in-memory trading.DataRepository
type MockDataRepository struct {
	mu          sync.RWMutex
	settlements []*trading.Settlement
	cargo       []*trading.CargoType
	// Err, when set, is returned by every call
	Err error
}

// NewMockDataRepository creates a repository seeded with the given records
func NewMockDataRepository(settlements []*trading.Settlement, cargo []*trading.CargoType) *MockDataRepository {
	return &MockDataRepository{settlements: settlements, cargo: cargo}
}

// AddSettlement appends a settlement
func (m *MockDataRepository) AddSettlement(s *trading.Settlement) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settlements = append(m.settlements, s)
}

// AddCargoType appends a cargo type
func (m *MockDataRepository) AddCargoType(c *trading.CargoType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cargo = append(m.cargo, c)
}

func (m *MockDataRepository) AllSettlements(ctx context.Context) ([]*trading.Settlement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]*trading.Settlement(nil), m.settlements...), nil
}

func (m *MockDataRepository) CargoTypes(ctx context.Context) ([]*trading.CargoType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]*trading.CargoType(nil), m.cargo...), nil
}

func (m *MockDataRepository) SettlementProperties(ctx context.Context, settlementName string) (*trading.SettlementProperties, error) {
	s, err := m.settlement(settlementName)
	if err != nil {
		return nil, err
	}
	props := s.Properties()
	return &props, nil
}

func (m *MockDataRepository) SeasonalPrice(ctx context.Context, cargoName string, season shared.Season, quality trading.Quality) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return decimal.Zero, m.Err
	}
	for _, c := range m.cargo {
		if c.Is(cargoName) {
			return c.BasePrice(season, quality)
		}
	}
	return decimal.Zero, shared.NewNotFoundError("cargo type", cargoName)
}

func (m *MockDataRepository) IsTradeSettlement(ctx context.Context, settlementName string) (bool, error) {
	s, err := m.settlement(settlementName)
	if err != nil {
		return false, err
	}
	return s.IsTrade(), nil
}

func (m *MockDataRepository) settlement(name string) (*trading.Settlement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, s := range m.settlements {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, shared.NewNotFoundError("settlement", name)
}

// ErrRepositoryOffline is a canned repository failure for tests
var ErrRepositoryOffline = errors.New("repository offline")
