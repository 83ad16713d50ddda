package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/trading-engine-go/internal/application/trading/services"
	"github.com/andrescamacho/trading-engine-go/internal/domain/dice"
	"github.com/andrescamacho/trading-engine-go/internal/domain/merchant"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

var workflowNow = time.Date(2512, 4, 10, 9, 0, 0, 0, time.UTC)

func wineCargo() *trading.CargoType {
	return &trading.CargoType{
		Name: "Wine/Brandy",
		BasePrices: map[shared.Season]float64{
			shared.SeasonSpring: 15,
			shared.SeasonSummer: 10,
			shared.SeasonAutumn: 12,
			shared.SeasonWinter: 18,
		},
		EncumbrancePerUnit: 1,
	}
}

func grainCargo() *trading.CargoType {
	return &trading.CargoType{
		Name: "Grain",
		BasePrices: map[shared.Season]float64{
			shared.SeasonSpring: 2,
			shared.SeasonSummer: 2,
			shared.SeasonAutumn: 1,
			shared.SeasonWinter: 3,
		},
		EncumbrancePerUnit: 1,
	}
}

func village() *trading.Settlement {
	return &trading.Settlement{Name: "Kleindorf", SizeRank: 1, WealthRank: 2, ProductionCategories: []string{"Agriculture"}}
}

func newWorkflow(t *testing.T, rolls ...int) (*services.SellingWorkflow, *dice.Sequence) {
	t.Helper()
	seq := dice.NewSequence(rolls...)
	gen, err := merchant.NewGenerator(seq, merchant.DefaultConfig())
	require.NoError(t, err)
	return services.NewSellingWorkflow(seq, gen, services.WithWorkflowClock(shared.NewMockClock(workflowNow))), seq
}

// merchantRolls are the five draws the merchant generator consumes
var merchantRolls = []int{50, 50, 10, 1, 1}

func withMerchant(rolls ...int) []int {
	return append(rolls, merchantRolls...)
}

func TestExecute_CompletedWithDealmakerHaggle(t *testing.T) {
	// Arrange: buyer roll 30 against a chance of 60
	wf, seq := newWorkflow(t, withMerchant(30)...)
	req := services.SaleRequest{
		Settlement: town(),
		Cargo:      wineCargo(),
		Quantity:   20,
		Season:     shared.SeasonSpring,
		Haggle:     &trading.HaggleOutcome{Success: true, HasDealmakerTalent: true},
	}

	// Act
	result, err := wf.Execute(context.Background(), req)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, services.OutcomeCompleted, result.Outcome)
	assert.True(t, result.Success)
	assert.Equal(t, trading.SaleTypeNormal, result.Path)
	assert.Equal(t, 60, result.BuyerChance)
	require.NotNil(t, result.Merchant)
	assert.Equal(t, "Albrecht Bauer", result.Merchant.Name)
	require.NotNil(t, result.Breakdown)
	assert.Equal(t, "18", result.Breakdown.FinalPricePerUnit.String())
	assert.Equal(t, "36", result.Breakdown.TotalPrice.String())
	assert.Equal(t, []services.SaleState{
		services.StateStart, services.StateEligibilityCheck, services.StateDispatch,
		services.StateNormalPath, services.StateVillageCheck, services.StateBuyerSearch,
		services.StatePriceCalc, services.StateHaggle, services.StateCompleted,
	}, result.Trace)
	assert.Equal(t, 0, seq.Remaining())
}

func TestExecute_BlockedByRecentPurchase(t *testing.T) {
	wf, _ := newWorkflow(t)
	bought := workflowNow.Add(-3 * shared.Day)

	result, err := wf.Execute(context.Background(), services.SaleRequest{
		Settlement:      town(),
		Cargo:           wineCargo(),
		Quantity:        10,
		Season:          shared.SeasonSpring,
		PurchaseHistory: &trading.PurchaseRecord{SettlementName: "Ubersreik", PurchasedAt: &bought},
	})

	require.NoError(t, err)
	assert.Equal(t, services.OutcomeBlocked, result.Outcome)
	assert.False(t, result.Success)
	assert.Equal(t, trading.ReasonRecentPurchase, result.Reason)
	assert.Nil(t, result.Breakdown)
}

func TestExecute_BoughtElsewhereIsEligible(t *testing.T) {
	wf, _ := newWorkflow(t, withMerchant(10)...)
	bought := workflowNow

	result, err := wf.Execute(context.Background(), services.SaleRequest{
		Settlement:      town(),
		Cargo:           wineCargo(),
		Quantity:        10,
		Season:          shared.SeasonSpring,
		PurchaseHistory: &trading.PurchaseRecord{SettlementName: "Altdorf", PurchasedAt: &bought},
	})

	require.NoError(t, err)
	assert.Equal(t, services.OutcomeCompleted, result.Outcome)
}

func TestExecute_NoBuyerOffersPartialSale(t *testing.T) {
	wf, _ := newWorkflow(t, 75)

	result, err := wf.Execute(context.Background(), services.SaleRequest{
		Settlement: town(),
		Cargo:      wineCargo(),
		Quantity:   30,
		Season:     shared.SeasonSpring,
	})

	require.NoError(t, err)
	assert.Equal(t, services.OutcomeNoBuyer, result.Outcome)
	assert.Equal(t, trading.ReasonNoBuyer, result.Reason)
	assert.Equal(t, 75, result.BuyerRoll)
	assert.True(t, result.PartialSaleOffered)
	assert.Equal(t, 15, result.PartialSaleQuantity)
	assert.Nil(t, result.Merchant)
}

func TestExecute_NoBuyerSingleEPHasNoPartialOffer(t *testing.T) {
	wf, _ := newWorkflow(t, 99)

	result, err := wf.Execute(context.Background(), services.SaleRequest{
		Settlement: town(),
		Cargo:      wineCargo(),
		Quantity:   1,
		Season:     shared.SeasonSpring,
	})

	require.NoError(t, err)
	assert.Equal(t, services.OutcomeNoBuyer, result.Outcome)
	assert.False(t, result.PartialSaleOffered)
}

func TestExecute_VillageRules(t *testing.T) {
	t.Run("wine in winter is refused", func(t *testing.T) {
		wf, _ := newWorkflow(t)

		result, err := wf.Execute(context.Background(), services.SaleRequest{
			Settlement: village(), Cargo: wineCargo(), Quantity: 20, Season: shared.SeasonWinter,
		})

		require.NoError(t, err)
		assert.Equal(t, services.OutcomeRestricted, result.Outcome)
		assert.True(t, result.Restricted)
		assert.Equal(t, 0, result.AllowedQuantity)
		assert.Equal(t, trading.ReasonVillageRestriction, result.Reason)
	})

	t.Run("wine in spring is capped by a d10", func(t *testing.T) {
		// d10 = 4, buyer roll 5 against village chance 10
		wf, _ := newWorkflow(t, withMerchant(4, 5)...)

		result, err := wf.Execute(context.Background(), services.SaleRequest{
			Settlement: village(), Cargo: wineCargo(), Quantity: 20, Season: shared.SeasonSpring,
		})

		require.NoError(t, err)
		assert.Equal(t, services.OutcomeCompleted, result.Outcome)
		assert.True(t, result.Restricted)
		assert.Equal(t, 4, result.AllowedQuantity)
		assert.Equal(t, 4, result.Quantity)
		assert.Equal(t, 20, result.RequestedQuantity)
		assert.Equal(t, 1, result.Breakdown.TotalUnits)
	})

	t.Run("grain is never restricted", func(t *testing.T) {
		wf, _ := newWorkflow(t, 90)

		result, err := wf.Execute(context.Background(), services.SaleRequest{
			Settlement: village(), Cargo: grainCargo(), Quantity: 20, Season: shared.SeasonWinter,
		})

		require.NoError(t, err)
		assert.False(t, result.Restricted)
		assert.Equal(t, services.OutcomeNoBuyer, result.Outcome)
	})
}

func TestExecute_DesperateSale(t *testing.T) {
	t.Run("trade settlement", func(t *testing.T) {
		wf, _ := newWorkflow(t)

		result, err := wf.Execute(context.Background(), services.SaleRequest{
			Settlement: town(), Cargo: grainCargo(), Quantity: 100, Season: shared.SeasonSpring,
			SaleType: trading.SaleTypeDesperate,
		})

		require.NoError(t, err)
		assert.Equal(t, services.OutcomeCompleted, result.Outcome)
		assert.Equal(t, trading.SaleTypeDesperate, result.Path)
		require.NotNil(t, result.Offer)
		assert.Equal(t, "1", result.Offer.PricePerUnit.String())
		assert.Equal(t, "10", result.Offer.TotalOffer.String())
	})

	t.Run("non-trade settlement", func(t *testing.T) {
		wf, _ := newWorkflow(t)

		result, err := wf.Execute(context.Background(), services.SaleRequest{
			Settlement: hamlet(), Cargo: grainCargo(), Quantity: 100, Season: shared.SeasonSpring,
			SaleType: trading.SaleTypeDesperate,
		})

		require.NoError(t, err)
		assert.Equal(t, services.OutcomeUnavailable, result.Outcome)
		assert.Contains(t, result.Reason, "not a Trade settlement")
	})
}

func TestExecute_RumorSale(t *testing.T) {
	rumor := &trading.Rumor{Multiplier: 2, SettlementName: "Ubersreik", CargoType: "Wine/Brandy"}

	wf, _ := newWorkflow(t)
	result, err := wf.Execute(context.Background(), services.SaleRequest{
		Settlement: town(), Cargo: wineCargo(), Quantity: 10, Season: shared.SeasonSpring,
		SaleType: trading.SaleTypeRumor, Rumor: rumor,
	})
	require.NoError(t, err)
	assert.Equal(t, services.OutcomeCompleted, result.Outcome)
	assert.Equal(t, "30", result.Breakdown.FinalPricePerUnit.String())

	result, err = wf.Execute(context.Background(), services.SaleRequest{
		Settlement: town(), Cargo: grainCargo(), Quantity: 10, Season: shared.SeasonSpring,
		SaleType: trading.SaleTypeRumor, Rumor: rumor,
	})
	require.NoError(t, err)
	assert.Equal(t, services.OutcomeUnavailable, result.Outcome)
}

func TestExecute_InvalidRequest(t *testing.T) {
	wf, _ := newWorkflow(t)

	_, err := wf.Execute(context.Background(), services.SaleRequest{
		Settlement: town(), Cargo: wineCargo(), Quantity: 0, Season: shared.SeasonSpring,
	})
	assert.True(t, shared.IsInvalidArgument(err))

	_, err = wf.Execute(context.Background(), services.SaleRequest{
		Cargo: wineCargo(), Quantity: 5, Season: shared.SeasonSpring,
	})
	assert.ErrorIs(t, err, trading.ErrSettlementRequired)
}

func TestExecute_RollFailureIsError(t *testing.T) {
	wf, _ := newWorkflow(t)

	_, err := wf.Execute(context.Background(), services.SaleRequest{
		Settlement: town(), Cargo: wineCargo(), Quantity: 5, Season: shared.SeasonSpring,
	})

	assert.ErrorIs(t, err, dice.ErrSequenceExhausted)
}

func TestSaleRequest_HalvedForRetry(t *testing.T) {
	req := services.SaleRequest{Quantity: 9}

	half, ok := req.HalvedForRetry()
	require.True(t, ok)
	assert.Equal(t, 4, half.Quantity)
	assert.Equal(t, 9, req.Quantity)

	_, ok = services.SaleRequest{Quantity: 1}.HalvedForRetry()
	assert.False(t, ok)
}
