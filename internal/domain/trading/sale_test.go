package trading_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

func TestCheckResaleEligibility(t *testing.T) {
	now := time.Date(2512, 3, 20, 12, 0, 0, 0, time.UTC)
	daysAgo := func(d int) *time.Time {
		ts := now.Add(-time.Duration(d) * shared.Day)
		return &ts
	}

	tests := []struct {
		name       string
		history    *trading.PurchaseRecord
		settlement string
		eligible   bool
	}{
		{"no history", nil, "Ubersreik", true},
		{"bought elsewhere yesterday", &trading.PurchaseRecord{SettlementName: "Altdorf", PurchasedAt: daysAgo(1)}, "Ubersreik", true},
		{"bought elsewhere, date unknown", &trading.PurchaseRecord{SettlementName: "Altdorf"}, "Ubersreik", true},
		{"bought here, date unknown", &trading.PurchaseRecord{SettlementName: "Ubersreik"}, "Ubersreik", false},
		{"bought here six days ago", &trading.PurchaseRecord{SettlementName: "Ubersreik", PurchasedAt: daysAgo(6)}, "Ubersreik", false},
		{"bought here seven days ago", &trading.PurchaseRecord{SettlementName: "Ubersreik", PurchasedAt: daysAgo(7)}, "Ubersreik", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eligible, reason := trading.CheckResaleEligibility(tt.history, tt.settlement, now, trading.DefaultResaleCooldownDays)
			assert.Equal(t, tt.eligible, eligible)
			if tt.eligible {
				assert.Empty(t, reason)
			} else {
				assert.Equal(t, trading.ReasonRecentPurchase, reason)
			}
		})
	}
}

func TestParseSaleType(t *testing.T) {
	st, err := trading.ParseSaleType("")
	require.NoError(t, err)
	assert.Equal(t, trading.SaleTypeNormal, st)

	st, err = trading.ParseSaleType(" Desperate ")
	require.NoError(t, err)
	assert.Equal(t, trading.SaleTypeDesperate, st)

	_, err = trading.ParseSaleType("barter")
	assert.True(t, shared.IsInvalidArgument(err))
}

func TestSettlement_ValidateRanks(t *testing.T) {
	s := tradeTown()
	require.NoError(t, s.Validate())

	s.SizeRank = 0
	assert.True(t, shared.IsInvalidArgument(s.Validate()))

	s = tradeTown()
	s.WealthRank = 6
	assert.True(t, shared.IsInvalidArgument(s.Validate()))
}

func TestSettlement_Labels(t *testing.T) {
	s := tradeTown()
	assert.True(t, s.IsTrade())
	assert.False(t, s.IsVillage())
	assert.Equal(t, "Town", s.SizeLabel())
	assert.Equal(t, "Average", s.WealthLabel())
	assert.False(t, farmingHamlet().IsTrade())
}

func TestAvailabilityChance_Capped(t *testing.T) {
	assert.Equal(t, 60, trading.AvailabilityChance(3, 3))
	assert.Equal(t, 100, trading.AvailabilityChance(5, 5))
	assert.Equal(t, 20, trading.AvailabilityChance(1, 1))
}

func TestBuyerChance(t *testing.T) {
	assert.Equal(t, 60, trading.BuyerChance(tradeTown()))
	assert.Equal(t, 20, trading.BuyerChance(farmingHamlet()))

	capital := tradeTown()
	capital.SizeRank = 5
	assert.Equal(t, 80, trading.BuyerChance(capital))
}

func TestDetermineStaticCargo(t *testing.T) {
	cargo, ok := trading.ProductionCargo("Agriculture")
	require.True(t, ok)
	assert.Equal(t, "Grain", cargo)

	_, ok = trading.ProductionCargo("Trade")
	assert.False(t, ok)

	assert.Len(t, trading.SeasonalTradeGoods(shared.SeasonWinter), 4)
}
