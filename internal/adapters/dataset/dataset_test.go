package dataset_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/trading-engine-go/internal/adapters/dataset"
	"github.com/andrescamacho/trading-engine-go/internal/adapters/persistence"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/test/helpers"
)

func TestDefault_LoadsEmbeddedDataset(t *testing.T) {
	// Act
	ds, err := dataset.Default()

	// Assert
	require.NoError(t, err)
	settlements, err := ds.DomainSettlements()
	require.NoError(t, err)
	cargo, err := ds.DomainCargo()
	require.NoError(t, err)
	assert.Equal(t, "Altdorf", settlements[0].Name)
	assert.True(t, settlements[0].IsTrade())
	assert.Len(t, cargo, 7)
	assert.NotEmpty(t, ds.Plans)
}

func TestDefault_EveryProducedCargoIsListed(t *testing.T) {
	// Arrange
	ds, err := dataset.Default()
	require.NoError(t, err)
	cargo, err := ds.DomainCargo()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, c := range cargo {
		names[c.Name] = true
	}

	// Act / Assert
	for _, p := range ds.Plans {
		for _, slot := range p.Slots {
			assert.True(t, names[slot["cargo_type"].(string)], "plan %s references unknown cargo", p.Name)
		}
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	// Arrange
	doc := "settlements:\n  - name: Oddburg\n    size: 2\n    wealth: 2\n    colour: red\n"

	// Act
	_, err := dataset.Load(strings.NewReader(doc))

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestLoad_RejectsMissingSeasonPrice(t *testing.T) {
	// Arrange
	doc := "cargo:\n  - name: Salt\n    prices: {spring: 1, summer: 1, autumn: 1}\n"

	// Act
	_, err := dataset.Load(strings.NewReader(doc))

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "winter")
}

func TestLoad_RejectsBadPlanSeason(t *testing.T) {
	// Arrange
	doc := "plans:\n  - name: odd\n    season: monsoon\n"

	// Act
	_, err := dataset.Load(strings.NewReader(doc))

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "odd")
}

func TestLoad_RejectsEmptyDocument(t *testing.T) {
	// Act
	_, err := dataset.Load(strings.NewReader(""))

	// Assert
	assert.True(t, shared.IsInvalidArgument(err))
}

func TestImport_WritesIntoRepository(t *testing.T) {
	// Arrange
	ds, err := dataset.Default()
	require.NoError(t, err)
	repo := persistence.NewGormDataRepository(helpers.NewTestDB(t))
	ctx := context.Background()

	// Act
	summary, err := dataset.Import(ctx, ds, repo)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, len(ds.Settlements), summary.Settlements)
	assert.Equal(t, len(ds.Cargo), summary.Cargo)

	trade, err := repo.IsTradeSettlement(ctx, "Bögenhafen")
	require.NoError(t, err)
	assert.True(t, trade)

	price, err := repo.SeasonalPrice(ctx, "Wine/Brandy", shared.SeasonWinter, "best")
	require.NoError(t, err)
	assert.Equal(t, "54", price.String())
}

func TestImport_IsRepeatable(t *testing.T) {
	// Arrange
	ds, err := dataset.Default()
	require.NoError(t, err)
	repo := persistence.NewGormDataRepository(helpers.NewTestDB(t))
	ctx := context.Background()
	_, err = dataset.Import(ctx, ds, repo)
	require.NoError(t, err)

	// Act
	_, err = dataset.Import(ctx, ds, repo)

	// Assert
	require.NoError(t, err)
	settlements, err := repo.AllSettlements(ctx)
	require.NoError(t, err)
	assert.Len(t, settlements, len(ds.Settlements))
}
