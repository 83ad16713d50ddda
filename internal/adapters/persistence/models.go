package persistence

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementModel represents the settlements table
type SettlementModel struct {
	Name                 string   `gorm:"column:name;primaryKey"`
	Region               string   `gorm:"column:region"`
	SizeRank             int      `gorm:"column:size_rank;not null"`
	WealthRank           int      `gorm:"column:wealth_rank;not null"`
	Population           int      `gorm:"column:population;not null;default:0"`
	ProductionCategories []string `gorm:"column:production_categories;type:text;serializer:json"`
	Garrison             string   `gorm:"column:garrison"`
	Ruler                string   `gorm:"column:ruler"`
	Notes                string   `gorm:"column:notes;type:text"`
	Position             int      `gorm:"column:position;not null;default:0"` // dataset order
}

func (SettlementModel) TableName() string {
	return "settlements"
}

// CargoTypeModel represents the cargo_types table
type CargoTypeModel struct {
	Name               string             `gorm:"column:name;primaryKey"`
	Category           string             `gorm:"column:category"`
	SpringPrice        float64            `gorm:"column:spring_price;not null"`
	SummerPrice        float64            `gorm:"column:summer_price;not null"`
	AutumnPrice        float64            `gorm:"column:autumn_price;not null"`
	WinterPrice        float64            `gorm:"column:winter_price;not null"`
	QualityMultipliers map[string]float64 `gorm:"column:quality_multipliers;type:text;serializer:json"`
	EncumbrancePerUnit float64            `gorm:"column:encumbrance_per_unit;not null;default:1"`
	Position           int                `gorm:"column:position;not null;default:0"`
}

func (CargoTypeModel) TableName() string {
	return "cargo_types"
}

// ActorModel represents the actors table: anyone holding a purse and cargo
type ActorModel struct {
	ID        string          `gorm:"column:id;primaryKey"`
	Name      string          `gorm:"column:name"`
	Purse     decimal.Decimal `gorm:"column:purse;type:decimal(14,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;not null"`
	UpdatedAt time.Time       `gorm:"column:updated_at;not null"`
}

func (ActorModel) TableName() string {
	return "actors"
}

// InventoryLotModel represents the inventory_lots table
type InventoryLotModel struct {
	ID             int             `gorm:"column:id;primaryKey;autoIncrement"`
	ActorID        string          `gorm:"column:actor_id;not null;index"`
	Actor          *ActorModel     `gorm:"foreignKey:ActorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CargoName      string          `gorm:"column:cargo_name;not null;index"`
	Quality        string          `gorm:"column:quality;not null;default:'average'"`
	Quantity       int             `gorm:"column:quantity;not null"`
	PricePerUnit   decimal.Decimal `gorm:"column:price_per_unit;type:decimal(14,2);not null"`
	SettlementName string          `gorm:"column:settlement_name"`
	AcquiredAt     time.Time       `gorm:"column:acquired_at;not null"`
}

func (InventoryLotModel) TableName() string {
	return "inventory_lots"
}

// TransactionModel represents the ledger_transactions table
type TransactionModel struct {
	ID           string          `gorm:"column:id;primaryKey"`
	ActorID      string          `gorm:"column:actor_id;not null;index"`
	Kind         string          `gorm:"column:kind;not null"`
	CargoName    string          `gorm:"column:cargo_name"`
	Quantity     int             `gorm:"column:quantity;not null;default:0"`
	Amount       decimal.Decimal `gorm:"column:amount;type:decimal(14,2);not null"`
	BalanceAfter decimal.Decimal `gorm:"column:balance_after;type:decimal(14,2);not null"`
	Timestamp    time.Time       `gorm:"column:timestamp;not null;index"`
}

func (TransactionModel) TableName() string {
	return "ledger_transactions"
}
