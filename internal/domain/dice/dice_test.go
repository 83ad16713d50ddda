package dice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/trading-engine-go/internal/domain/dice"
)

func TestSequence_ReplaysDrawsInOrder(t *testing.T) {
	ctx := context.Background()
	seq := dice.NewSequence(45, 70, 3)

	first, err := dice.D100(ctx, seq)
	require.NoError(t, err)
	second, err := dice.D100(ctx, seq)
	require.NoError(t, err)
	third, err := dice.D10(ctx, seq)
	require.NoError(t, err)

	assert.Equal(t, 45, first)
	assert.Equal(t, 70, second)
	assert.Equal(t, 3, third)
	assert.Equal(t, 0, seq.Remaining())
}

func TestSequence_Exhausted(t *testing.T) {
	seq := dice.NewSequence()

	_, err := dice.D100(context.Background(), seq)

	assert.True(t, errors.Is(err, dice.ErrSequenceExhausted))
}

func TestD10_RejectsOutOfRangeDraw(t *testing.T) {
	seq := dice.NewSequence(11)

	_, err := dice.D10(context.Background(), seq)

	assert.True(t, errors.Is(err, dice.ErrRollOutOfRange))
}

func TestMathSource_StaysInRange(t *testing.T) {
	src := dice.NewMathSource(42)
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		v, err := dice.D100(ctx, src)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 100)
	}
}

func TestMathSource_SameSeedSameDraws(t *testing.T) {
	a := dice.NewMathSource(7)
	b := dice.NewMathSource(7)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		va, _ := a.Roll(ctx, 100)
		vb, _ := b.Roll(ctx, 100)
		assert.Equal(t, va, vb)
	}
}

func TestMathSource_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := dice.NewMathSource(1).Roll(ctx, 100)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSourceFunc_WrapsHostRoller(t *testing.T) {
	calls := 0
	host := dice.SourceFunc(func(ctx context.Context, sides int) (int, error) {
		calls++
		return sides, nil
	})

	v, err := dice.D10(context.Background(), host)

	require.NoError(t, err)
	assert.Equal(t, 10, v)
	assert.Equal(t, 1, calls)
}

func TestTensMultiplier(t *testing.T) {
	cases := map[int]int{1: 10, 10: 10, 11: 20, 45: 50, 70: 70, 91: 100, 100: 100}
	for roll, want := range cases {
		assert.Equal(t, want, dice.TensMultiplier(roll), "roll %d", roll)
	}
}

func TestPick_CoversEveryIndex(t *testing.T) {
	seen := map[int]bool{}
	for roll := 1; roll <= 100; roll++ {
		idx := dice.Pick(roll, 3)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 3)
		seen[idx] = true
	}
	assert.Len(t, seen, 3)
	assert.Equal(t, 0, dice.Pick(1, 3))
	assert.Equal(t, 2, dice.Pick(100, 3))
}

func TestOffset_Bounds(t *testing.T) {
	assert.Equal(t, -10, dice.Offset(1, 10))
	assert.Equal(t, 10, dice.Offset(100, 10))
	assert.Equal(t, 0, dice.Offset(50, 0))
}
