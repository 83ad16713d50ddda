package dice

import (
	"context"
	"fmt"
)

// D100 draws a percentile roll in [1, 100]
func D100(ctx context.Context, src Source) (int, error) {
	return roll(ctx, src, 100)
}

// D10 draws a roll in [1, 10]
func D10(ctx context.Context, src Source) (int, error) {
	return roll(ctx, src, 10)
}

func roll(ctx context.Context, src Source, sides int) (int, error) {
	v, err := src.Roll(ctx, sides)
	if err != nil {
		return 0, fmt.Errorf("d%d roll failed: %w", sides, err)
	}
	if v < 1 || v > sides {
		return 0, fmt.Errorf("%w: d%d produced %d", ErrRollOutOfRange, sides, v)
	}
	return v, nil
}

// Pick maps a percentile roll onto an index in [0, n).
// Each index receives an equal share of the 100 faces (up to integer rounding).
func Pick(roll, n int) int {
	if n <= 0 {
		return 0
	}
	idx := (roll - 1) * n / 100
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

// Offset maps a percentile roll onto a signed offset in [-spread, +spread]
func Offset(roll, spread int) int {
	if spread <= 0 {
		return 0
	}
	width := 2*spread + 1
	return Pick(roll, width) - spread
}

// TensMultiplier rounds a percentile roll up to the next multiple of ten (45 -> 50, 70 -> 70)
func TensMultiplier(roll int) int {
	return ((roll + 9) / 10) * 10
}
