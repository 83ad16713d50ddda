// Package dice provides the randomness abstraction behind every probabilistic trading rule.
//
// Production code rolls through a seeded PRNG (or a host dice roller wrapped in SourceFunc);
// tests inject a Sequence so that availability, cargo size, buyer and merchant draws are
// fully deterministic.
package dice

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

var (
	// ErrSequenceExhausted is returned when a fixed test sequence runs out of draws
	ErrSequenceExhausted = errors.New("dice sequence exhausted")

	// ErrRollOutOfRange is returned when a source produces a value outside [1, sides]
	ErrRollOutOfRange = errors.New("roll out of range")

	// ErrInvalidSides is returned when a roll is requested for a die with fewer than one side
	ErrInvalidSides = errors.New("die must have at least one side")
)

// Source is the randomness provider for dice rolls.
type Source interface {
	// Roll returns a uniformly distributed integer in [1, sides].
	// A host roller may block; ctx bounds the wait.
	Roll(ctx context.Context, sides int) (int, error)
}

// SourceFunc adapts a plain function (e.g. a host dice roller) to Source
type SourceFunc func(ctx context.Context, sides int) (int, error)

// Roll calls f
func (f SourceFunc) Roll(ctx context.Context, sides int) (int, error) {
	return f(ctx, sides)
}

// MathSource rolls with a PCG generator. Safe for concurrent use.
type MathSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMathSource creates a deterministic source for the given seed
func NewMathSource(seed uint64) *MathSource {
	return &MathSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandomSource creates a source seeded from the wall clock
func NewRandomSource() *MathSource {
	return NewMathSource(uint64(time.Now().UnixNano()))
}

// Roll returns an integer in [1, sides]
func (s *MathSource) Roll(ctx context.Context, sides int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if sides < 1 {
		return 0, ErrInvalidSides
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(sides) + 1, nil
}

// Sequence replays a fixed list of draws in order, ignoring the number of sides.
type Sequence struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewSequence creates a sequence source from the given draws
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: append([]int(nil), values...)}
}

// Roll returns the next queued draw
func (s *Sequence) Roll(ctx context.Context, sides int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.values) {
		return 0, fmt.Errorf("%w after %d draws", ErrSequenceExhausted, len(s.values))
	}
	v := s.values[s.next]
	s.next++
	return v, nil
}

// Remaining returns how many queued draws have not been consumed
func (s *Sequence) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values) - s.next
}

// Push appends further draws to the end of the sequence
func (s *Sequence) Push(values ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = append(s.values, values...)
}
