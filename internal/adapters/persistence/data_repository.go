package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

// GormDataRepository implements trading.DataRepository using GORM
type GormDataRepository struct {
	db *gorm.DB
}

// NewGormDataRepository creates a new GORM data repository
func NewGormDataRepository(db *gorm.DB) *GormDataRepository {
	return &GormDataRepository{db: db}
}

// AllSettlements returns every settlement in dataset order
func (r *GormDataRepository) AllSettlements(ctx context.Context) ([]*trading.Settlement, error) {
	var models []SettlementModel
	if err := r.db.WithContext(ctx).Order("position ASC, name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	settlements := make([]*trading.Settlement, len(models))
	for i := range models {
		settlements[i] = modelToSettlement(&models[i])
	}
	return settlements, nil
}

// CargoTypes returns every cargo type in dataset order
func (r *GormDataRepository) CargoTypes(ctx context.Context) ([]*trading.CargoType, error) {
	var models []CargoTypeModel
	if err := r.db.WithContext(ctx).Order("position ASC, name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list cargo types: %w", err)
	}

	cargo := make([]*trading.CargoType, len(models))
	for i := range models {
		cargo[i] = modelToCargoType(&models[i])
	}
	return cargo, nil
}

// SettlementProperties looks up a settlement by its exact name
func (r *GormDataRepository) SettlementProperties(ctx context.Context, settlementName string) (*trading.SettlementProperties, error) {
	settlement, err := r.findSettlement(ctx, settlementName)
	if err != nil {
		return nil, err
	}
	props := settlement.Properties()
	return &props, nil
}

// IsTradeSettlement reports whether the named settlement produces Trade
func (r *GormDataRepository) IsTradeSettlement(ctx context.Context, settlementName string) (bool, error) {
	settlement, err := r.findSettlement(ctx, settlementName)
	if err != nil {
		return false, err
	}
	return settlement.IsTrade(), nil
}

// SeasonalPrice returns the cargo's price per unit for a season and quality tier
func (r *GormDataRepository) SeasonalPrice(ctx context.Context, cargoName string, season shared.Season, quality trading.Quality) (decimal.Decimal, error) {
	var model CargoTypeModel
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(cargoName))).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, shared.NewNotFoundError("cargo type", cargoName)
		}
		return decimal.Zero, fmt.Errorf("failed to find cargo type: %w", err)
	}
	return modelToCargoType(&model).BasePrice(season, quality)
}

// SaveSettlement inserts or replaces a settlement
func (r *GormDataRepository) SaveSettlement(ctx context.Context, settlement *trading.Settlement, position int) error {
	if err := settlement.Validate(); err != nil {
		return err
	}
	model := settlementToModel(settlement, position)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save settlement %s: %w", settlement.Name, result.Error)
	}
	return nil
}

// SaveCargoType inserts or replaces a cargo type
func (r *GormDataRepository) SaveCargoType(ctx context.Context, cargo *trading.CargoType, position int) error {
	if err := cargo.Validate(); err != nil {
		return err
	}
	model := cargoTypeToModel(cargo, position)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save cargo type %s: %w", cargo.Name, result.Error)
	}
	return nil
}

func (r *GormDataRepository) findSettlement(ctx context.Context, name string) (*trading.Settlement, error) {
	var model SettlementModel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("settlement", name)
		}
		return nil, fmt.Errorf("failed to find settlement: %w", err)
	}
	return modelToSettlement(&model), nil
}

// Conversion helpers

func settlementToModel(s *trading.Settlement, position int) *SettlementModel {
	return &SettlementModel{
		Name:                 s.Name,
		Region:               s.Region,
		SizeRank:             s.SizeRank,
		WealthRank:           s.WealthRank,
		Population:           s.Population,
		ProductionCategories: append([]string(nil), s.ProductionCategories...),
		Garrison:             s.Garrison,
		Ruler:                s.Ruler,
		Notes:                s.Notes,
		Position:             position,
	}
}

func modelToSettlement(m *SettlementModel) *trading.Settlement {
	return &trading.Settlement{
		Name:                 m.Name,
		Region:               m.Region,
		SizeRank:             m.SizeRank,
		WealthRank:           m.WealthRank,
		Population:           m.Population,
		ProductionCategories: append([]string(nil), m.ProductionCategories...),
		Garrison:             m.Garrison,
		Ruler:                m.Ruler,
		Notes:                m.Notes,
	}
}

func cargoTypeToModel(c *trading.CargoType, position int) *CargoTypeModel {
	multipliers := make(map[string]float64, len(c.QualityMultipliers))
	for tier, mult := range c.QualityMultipliers {
		multipliers[string(tier)] = mult
	}
	return &CargoTypeModel{
		Name:               c.Name,
		Category:           c.Category,
		SpringPrice:        c.BasePrices[shared.SeasonSpring],
		SummerPrice:        c.BasePrices[shared.SeasonSummer],
		AutumnPrice:        c.BasePrices[shared.SeasonAutumn],
		WinterPrice:        c.BasePrices[shared.SeasonWinter],
		QualityMultipliers: multipliers,
		EncumbrancePerUnit: c.EncumbrancePerUnit,
		Position:           position,
	}
}

func modelToCargoType(m *CargoTypeModel) *trading.CargoType {
	multipliers := make(map[trading.Quality]float64, len(m.QualityMultipliers))
	for tier, mult := range m.QualityMultipliers {
		multipliers[trading.ParseQuality(tier)] = mult
	}
	return &trading.CargoType{
		Name:     m.Name,
		Category: m.Category,
		BasePrices: map[shared.Season]float64{
			shared.SeasonSpring: m.SpringPrice,
			shared.SeasonSummer: m.SummerPrice,
			shared.SeasonAutumn: m.AutumnPrice,
			shared.SeasonWinter: m.WinterPrice,
		},
		QualityMultipliers: multipliers,
		EncumbrancePerUnit: m.EncumbrancePerUnit,
	}
}
