package trading

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
)

// wealthModifiers is indexed by wealth rank - 1
var wealthModifiers = [5]decimal.Decimal{
	decimal.RequireFromString("0.50"),
	decimal.RequireFromString("0.80"),
	decimal.RequireFromString("1.00"),
	decimal.RequireFromString("1.05"),
	decimal.RequireFromString("1.10"),
}

// WealthModifier returns the sale price multiplier for a wealth rank (1 Squalid .. 5 Prosperous)
func WealthModifier(rank int) (decimal.Decimal, error) {
	if rank < 1 || rank > 5 {
		return decimal.Zero, shared.NewValidationError("wealth_rank", fmt.Sprintf("wealth rank must be within 1..5, got %d", rank))
	}
	return wealthModifiers[rank-1], nil
}
