package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appTrading "github.com/andrescamacho/trading-engine-go/internal/application/trading"
	"github.com/andrescamacho/trading-engine-go/internal/application/trading/commands"
	"github.com/andrescamacho/trading-engine-go/internal/domain/dice"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/test/helpers"
)

func TestSetSeason_ReportsChange(t *testing.T) {
	engine, err := appTrading.NewTradingEngine(helpers.NewStandardRepository(), dice.NewSequence(), appTrading.DefaultEngineConfig())
	require.NoError(t, err)
	handler := commands.NewSetSeasonHandler(engine)
	ctx := context.Background()

	first, err := handler.Handle(ctx, &commands.SetSeasonCommand{Season: "Summer"})
	require.NoError(t, err)
	again, err := handler.Handle(ctx, &commands.SetSeasonCommand{Season: "summer"})
	require.NoError(t, err)

	assert.True(t, first.(*commands.SetSeasonResponse).Changed)
	assert.Equal(t, shared.SeasonSummer, again.(*commands.SetSeasonResponse).Previous)
	assert.False(t, again.(*commands.SetSeasonResponse).Changed)
}

func TestSetSeason_UnknownSeasonKeepsPrevious(t *testing.T) {
	engine, err := appTrading.NewTradingEngine(helpers.NewStandardRepository(), dice.NewSequence(), appTrading.DefaultEngineConfig())
	require.NoError(t, err)
	handler := commands.NewSetSeasonHandler(engine)
	_, err = handler.Handle(context.Background(), &commands.SetSeasonCommand{Season: "autumn"})
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), &commands.SetSeasonCommand{Season: "monsoon"})

	assert.True(t, shared.IsInvalidArgument(err))
	season, ok := engine.Season()
	assert.True(t, ok)
	assert.Equal(t, shared.SeasonAutumn, season)
}
