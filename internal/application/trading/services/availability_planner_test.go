package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/trading-engine-go/internal/application/trading/services"
	"github.com/andrescamacho/trading-engine-go/internal/domain/dice"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

// stubProvider counts calls and answers with a fixed plan or error
type stubProvider struct {
	calls int
	plan  services.RawPlan
	err   error
	last  services.PlanRequest
}

func (s *stubProvider) GeneratePlan(ctx context.Context, req services.PlanRequest) (services.RawPlan, error) {
	s.calls++
	s.last = req
	return s.plan, s.err
}

type stubCreator struct {
	settlement string
	season     shared.Season
}

func (s *stubCreator) CreatePlan(ctx context.Context, settlement *trading.Settlement, season shared.Season) (services.RawPlan, error) {
	s.settlement = settlement.Name
	s.season = season
	return services.RawPlan{"slots": []interface{}{map[string]interface{}{"cargoType": "Wool"}}}, nil
}

func town() *trading.Settlement {
	return &trading.Settlement{
		Name:                 "Ubersreik",
		SizeRank:             3,
		WealthRank:           3,
		ProductionCategories: []string{"Trade", "Metal", "Agriculture"},
	}
}

func hamlet() *trading.Settlement {
	return &trading.Settlement{
		Name:                 "Grunburg",
		SizeRank:             3,
		WealthRank:           3,
		ProductionCategories: []string{"Sheep", "Timber"},
	}
}

func slotsPlan(cargo ...string) services.RawPlan {
	slots := make([]interface{}, 0, len(cargo))
	for _, c := range cargo {
		slots = append(slots, map[string]interface{}{"cargoType": c, "tier": "common", "probability": 0.5})
	}
	return services.RawPlan{"slots": slots}
}

func TestGeneratePlan_DisabledWithoutProvider(t *testing.T) {
	// Arrange
	planner := services.NewAvailabilityPlanner(nil, dice.NewSequence())

	// Act
	src := planner.GeneratePlan(context.Background(), town(), shared.SeasonSpring, false)

	// Assert
	assert.IsType(t, services.PlanDisabled{}, src)
	assert.Equal(t, services.PipelineDisabled, planner.Status())
}

func TestGeneratePlan_CachesPerKey(t *testing.T) {
	// Arrange
	provider := &stubProvider{plan: slotsPlan("Wine/Brandy")}
	planner := services.NewAvailabilityPlanner(provider, dice.NewSequence())
	ctx := context.Background()

	// Act
	first := planner.GeneratePlan(ctx, town(), shared.SeasonSpring, false)
	second := planner.GeneratePlan(ctx, town(), shared.SeasonSpring, false)

	// Assert
	require.IsType(t, services.PlanReady{}, first)
	plan, ok := services.ReadyPlan(second)
	require.True(t, ok)
	assert.Equal(t, "Ubersreik", plan.Settlement)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, services.PipelineReady, planner.Status())
	assert.Equal(t, shared.SeasonSpring, provider.last.Season)
}

func TestGeneratePlan_ForceRefreshAndSeasonChangeInvalidate(t *testing.T) {
	// Arrange
	provider := &stubProvider{plan: slotsPlan("Grain")}
	planner := services.NewAvailabilityPlanner(provider, dice.NewSequence())
	ctx := context.Background()

	// Act
	planner.GeneratePlan(ctx, town(), shared.SeasonSpring, false)
	planner.GeneratePlan(ctx, hamlet(), shared.SeasonSpring, false)
	planner.GeneratePlan(ctx, town(), shared.SeasonSpring, true)
	planner.GeneratePlan(ctx, town(), shared.SeasonSummer, false)

	// Assert
	assert.Equal(t, 4, provider.calls)
	_, cached := planner.CachedPlan(hamlet(), shared.SeasonSpring)
	assert.False(t, cached, "season change must clear every entry")
	_, cached = planner.CachedPlan(town(), shared.SeasonSummer)
	assert.True(t, cached)
}

func TestGeneratePlan_ProviderFailureFallsBack(t *testing.T) {
	// Arrange
	provider := &stubProvider{err: errors.New("pipeline offline")}
	planner := services.NewAvailabilityPlanner(provider, dice.NewSequence(45))
	ctx := context.Background()

	// Act
	src := planner.GeneratePlan(ctx, town(), shared.SeasonSpring, false)
	result, err := planner.CheckAvailability(ctx, town(), shared.SeasonSpring)

	// Assert
	failed, ok := src.(services.PlanFailed)
	require.True(t, ok)
	assert.ErrorContains(t, failed.Err, "pipeline offline")
	assert.Equal(t, services.PipelineError, planner.Status())
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.False(t, result.FromPlan)
}

func TestGeneratePlan_MalformedPlanFails(t *testing.T) {
	provider := &stubProvider{plan: services.RawPlan{"slots": "not a list"}}
	planner := services.NewAvailabilityPlanner(provider, dice.NewSequence())

	src := planner.GeneratePlan(context.Background(), town(), shared.SeasonSpring, false)

	assert.IsType(t, services.PlanFailed{}, src)
	assert.Error(t, planner.LastError())
}

func TestGeneratePlan_NilPlanIsUnavailable(t *testing.T) {
	provider := &stubProvider{}
	planner := services.NewAvailabilityPlanner(provider, dice.NewSequence())

	src := planner.GeneratePlan(context.Background(), town(), shared.SeasonSpring, false)

	assert.IsType(t, services.PlanUnavailable{}, src)
	assert.Equal(t, services.PipelineIdle, planner.Status())
}

func TestCreatorAdapter(t *testing.T) {
	creator := &stubCreator{}
	planner := services.NewAvailabilityPlanner(services.CreatorAdapter{Creator: creator}, dice.NewSequence())

	src := planner.GeneratePlan(context.Background(), town(), shared.SeasonAutumn, false)

	plan, ok := services.ReadyPlan(src)
	require.True(t, ok)
	assert.Equal(t, []string{"Wool"}, plan.CargoNames())
	assert.Equal(t, "Ubersreik", creator.settlement)
	assert.Equal(t, shared.SeasonAutumn, creator.season)
}

func TestCheckAvailability_Legacy(t *testing.T) {
	tests := []struct {
		name      string
		roll      int
		available bool
	}{
		{"roll under chance", 45, true},
		{"roll equal to chance", 60, true},
		{"roll over chance", 61, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planner := services.NewAvailabilityPlanner(nil, dice.NewSequence(tt.roll))

			result, err := planner.CheckAvailability(context.Background(), town(), shared.SeasonSpring)

			require.NoError(t, err)
			assert.Equal(t, 60, result.Chance)
			assert.Equal(t, tt.roll, result.Roll)
			assert.Equal(t, tt.available, result.Available)
		})
	}
}

func TestCheckAvailability_EmptyPlanBlocksAvailability(t *testing.T) {
	// Arrange
	provider := &stubProvider{plan: services.RawPlan{"slots": []interface{}{}}}
	planner := services.NewAvailabilityPlanner(provider, dice.NewSequence(5))

	// Act
	result, err := planner.CheckAvailability(context.Background(), town(), shared.SeasonSpring)

	// Assert
	require.NoError(t, err)
	assert.True(t, result.FromPlan)
	assert.False(t, result.Available)
}

func TestCheckAvailability_InvalidSeason(t *testing.T) {
	planner := services.NewAvailabilityPlanner(nil, dice.NewSequence(5))

	_, err := planner.CheckAvailability(context.Background(), town(), "monsoon")

	assert.True(t, shared.IsInvalidArgument(err))
}

func TestCalculateCargoSize_NonTrade(t *testing.T) {
	planner := services.NewAvailabilityPlanner(nil, dice.NewSequence(45))

	result, err := planner.CalculateCargoSize(context.Background(), hamlet(), shared.SeasonSpring, false)

	require.NoError(t, err)
	assert.Equal(t, 6, result.BaseMultiplier)
	assert.Equal(t, 50, result.SizeMultiplier)
	assert.Equal(t, 300, result.TotalSize)
	assert.False(t, result.TradeBonus)
	assert.Equal(t, []int{45}, result.Rolls)
}

func TestCalculateCargoSize_TradeBonusTakesMax(t *testing.T) {
	planner := services.NewAvailabilityPlanner(nil, dice.NewSequence(45, 70))

	result, err := planner.CalculateCargoSize(context.Background(), town(), shared.SeasonSpring, true)

	require.NoError(t, err)
	assert.Equal(t, 70, result.SizeMultiplier)
	assert.True(t, result.TradeBonus)
	assert.Equal(t, 420, result.TotalSize)
}

func TestCalculateCargoSize_TradeBonusKeepsFirstWhenHigher(t *testing.T) {
	planner := services.NewAvailabilityPlanner(nil, dice.NewSequence(91, 12))

	result, err := planner.CalculateCargoSize(context.Background(), town(), shared.SeasonSpring, true)

	require.NoError(t, err)
	assert.Equal(t, 100, result.SizeMultiplier)
	assert.True(t, result.TradeBonus)
}

func TestCalculateCargoSize_PlanOverrideSkipsRolls(t *testing.T) {
	// Arrange: an empty sequence fails any roll
	provider := &stubProvider{plan: services.RawPlan{
		"slots":    []interface{}{map[string]interface{}{"cargoType": "Grain"}},
		"slotPlan": map[string]interface{}{"totalSize": 120, "tradeBonus": true},
	}}
	planner := services.NewAvailabilityPlanner(provider, dice.NewSequence())

	// Act
	result, err := planner.CalculateCargoSize(context.Background(), town(), shared.SeasonSpring, false)

	// Assert
	require.NoError(t, err)
	assert.True(t, result.FromPlan)
	assert.Equal(t, 120, result.TotalSize)
	assert.True(t, result.TradeBonus)
	assert.Empty(t, result.Rolls)
}

func TestCalculateCargoSize_PlanMultiplierAndBase(t *testing.T) {
	provider := &stubProvider{plan: services.RawPlan{
		"slots":     []interface{}{},
		"slot_plan": map[string]interface{}{"base_multiplier": 4.0, "size_multiplier": "30"},
	}}
	planner := services.NewAvailabilityPlanner(provider, dice.NewSequence())

	result, err := planner.CalculateCargoSize(context.Background(), town(), shared.SeasonSpring, true)

	require.NoError(t, err)
	assert.Equal(t, 4, result.BaseMultiplier)
	assert.Equal(t, 30, result.SizeMultiplier)
	assert.Equal(t, 120, result.TotalSize)
	assert.False(t, result.TradeBonus)
}

func TestCalculateCargoSize_BaseOnlyHintStillRolls(t *testing.T) {
	provider := &stubProvider{plan: services.RawPlan{
		"slotPlan": map[string]interface{}{"baseMultiplier": 2},
	}}
	planner := services.NewAvailabilityPlanner(provider, dice.NewSequence(45))

	result, err := planner.CalculateCargoSize(context.Background(), hamlet(), shared.SeasonSpring, false)

	require.NoError(t, err)
	assert.False(t, result.FromPlan)
	assert.Equal(t, 100, result.TotalSize)
}

func TestDetermineCargoTypes_StaticMapping(t *testing.T) {
	// Arrange: roll 100 picks the last spring trade good (Luxuries)
	planner := services.NewAvailabilityPlanner(nil, dice.NewSequence(100))

	// Act
	result, err := planner.DetermineCargoTypes(context.Background(), town(), shared.SeasonSpring)

	// Assert
	require.NoError(t, err)
	assert.False(t, result.FromPlan)
	assert.Equal(t, []string{"Metal", "Grain", "Luxuries"}, result.CargoTypes)
	assert.Equal(t, 100, result.TradeGoodsRoll)
}

func TestDetermineCargoTypes_TradeGoodNotDuplicated(t *testing.T) {
	// roll 75 picks Grain in spring, already produced
	planner := services.NewAvailabilityPlanner(nil, dice.NewSequence(75))

	result, err := planner.DetermineCargoTypes(context.Background(), town(), shared.SeasonSpring)

	require.NoError(t, err)
	assert.Equal(t, []string{"Metal", "Grain"}, result.CargoTypes)
}

func TestDetermineCargoTypes_NonTradeDrawsNothing(t *testing.T) {
	planner := services.NewAvailabilityPlanner(nil, dice.NewSequence())

	result, err := planner.DetermineCargoTypes(context.Background(), hamlet(), shared.SeasonWinter)

	require.NoError(t, err)
	assert.Equal(t, []string{"Wool", "Timber"}, result.CargoTypes)
}

func TestDetermineCargoTypes_FromCachedPlan(t *testing.T) {
	// Arrange
	provider := &stubProvider{plan: slotsPlan("Wine/Brandy", "Luxuries", "Wine/Brandy")}
	planner := services.NewAvailabilityPlanner(provider, dice.NewSequence())
	ctx := context.Background()
	planner.GeneratePlan(ctx, town(), shared.SeasonSummer, false)

	// Act
	result, err := planner.DetermineCargoTypes(ctx, town(), shared.SeasonSummer)

	// Assert
	require.NoError(t, err)
	assert.True(t, result.FromPlan)
	assert.Equal(t, []string{"Wine/Brandy", "Luxuries"}, result.CargoTypes)
}

func TestInvalidate_ClearsCache(t *testing.T) {
	provider := &stubProvider{plan: slotsPlan("Grain")}
	planner := services.NewAvailabilityPlanner(provider, dice.NewSequence())
	planner.GeneratePlan(context.Background(), town(), shared.SeasonSpring, false)

	planner.Invalidate()

	_, ok := planner.CachedPlan(town(), shared.SeasonSpring)
	assert.False(t, ok)
	assert.Equal(t, services.PipelineIdle, planner.Status())
}
