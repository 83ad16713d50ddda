package helpers

import (
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

// SeasonalPrices builds a price map in calendar order
func SeasonalPrices(spring, summer, autumn, winter float64) map[shared.Season]float64 {
	return map[shared.Season]float64{
		shared.SeasonSpring: spring,
		shared.SeasonSummer: summer,
		shared.SeasonAutumn: autumn,
		shared.SeasonWinter: winter,
	}
}

// CreateTestCargo builds a cargo type with the given seasonal prices
func CreateTestCargo(name string, prices map[shared.Season]float64) *trading.CargoType {
	return &trading.CargoType{
		Name:               name,
		Category:           "General",
		BasePrices:         prices,
		EncumbrancePerUnit: 1,
	}
}

// CreateTestSettlement builds a settlement with the given ranks and production
func CreateTestSettlement(name string, size, wealth int, production ...string) *trading.Settlement {
	return &trading.Settlement{
		Name:                 name,
		Region:               "Reikland",
		SizeRank:             size,
		WealthRank:           wealth,
		Population:           size * 1000,
		ProductionCategories: production,
	}
}

// StandardCargo is a small catalogue matching the rule examples
func StandardCargo() []*trading.CargoType {
	return []*trading.CargoType{
		CreateTestCargo("Grain", SeasonalPrices(2, 1.5, 1, 3)),
		CreateTestCargo("Wine/Brandy", SeasonalPrices(15, 10, 12, 18)),
		CreateTestCargo("Wool", SeasonalPrices(4, 5, 6, 8)),
		CreateTestCargo("Metal", SeasonalPrices(8, 8, 8, 9)),
		CreateTestCargo("Luxuries", SeasonalPrices(50, 50, 55, 60)),
	}
}

// StandardSettlements covers a trade town, a plain town and a village
func StandardSettlements() []*trading.Settlement {
	return []*trading.Settlement{
		CreateTestSettlement("Ubersreik", 3, 3, "Trade", "Metal"),
		CreateTestSettlement("Grunburg", 3, 3, "Agriculture"),
		CreateTestSettlement("Kleindorf", 1, 1, "Agriculture"),
		CreateTestSettlement("Altdorf", 5, 5, "Trade", "Government"),
	}
}

// NewStandardRepository returns a MockDataRepository seeded with the standard fixtures
func NewStandardRepository() *MockDataRepository {
	return NewMockDataRepository(StandardSettlements(), StandardCargo())
}
