package dataset

import (
	"context"
	"fmt"

	"github.com/andrescamacho/trading-engine-go/internal/application/common"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

// Store receives imported records; positions preserve dataset order
type Store interface {
	SaveSettlement(ctx context.Context, settlement *trading.Settlement, position int) error
	SaveCargoType(ctx context.Context, cargo *trading.CargoType, position int) error
}

// ImportSummary counts what an import wrote
type ImportSummary struct {
	Settlements int
	Cargo       int
}

// Import writes every cargo type and settlement of the dataset into the store.
// Existing records with the same name are replaced.
func Import(ctx context.Context, ds *Dataset, store Store) (*ImportSummary, error) {
	logger := common.LoggerFromContext(ctx)

	cargo, err := ds.DomainCargo()
	if err != nil {
		return nil, err
	}
	settlements, err := ds.DomainSettlements()
	if err != nil {
		return nil, err
	}

	summary := &ImportSummary{}
	for i, c := range cargo {
		if err := store.SaveCargoType(ctx, c, i); err != nil {
			return summary, fmt.Errorf("failed to import cargo %s: %w", c.Name, err)
		}
		summary.Cargo++
	}
	for i, s := range settlements {
		if err := store.SaveSettlement(ctx, s, i); err != nil {
			return summary, fmt.Errorf("failed to import settlement %s: %w", s.Name, err)
		}
		summary.Settlements++
	}

	logger.Log(common.LevelInfo, "Dataset imported", map[string]interface{}{
		"settlements": summary.Settlements,
		"cargo":       summary.Cargo,
	})
	return summary, nil
}
