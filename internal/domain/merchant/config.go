package merchant

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
)

// Weight is one bucket of the personality distribution
type Weight struct {
	Personality Personality `validate:"required"`
	Weight      int         `validate:"min=0"`
}

// Config tunes merchant generation
type Config struct {
	BaseSkill      int      `validate:"min=0,max=100"`
	WealthModifier int      `validate:"min=0,max=20"`
	Variance       int      `validate:"min=0,max=50"`
	MinSkill       int      `validate:"min=1,max=100"`
	MaxSkill       int      `validate:"min=1,max=100,gtefield=MinSkill"`
	Distribution   []Weight `validate:"required,min=1,dive"`
}

// DefaultConfig returns the standard generation parameters
func DefaultConfig() Config {
	return Config{
		BaseSkill:      25,
		WealthModifier: 5,
		Variance:       10,
		MinSkill:       5,
		MaxSkill:       95,
		Distribution:   DefaultDistribution(),
	}
}

// DefaultDistribution weights the personalities; the weights sum to 100
func DefaultDistribution() []Weight {
	return []Weight{
		{PersonalityShrewd, 20},
		{PersonalityGreedy, 15},
		{PersonalityFriendly, 20},
		{PersonalityPragmatic, 25},
		{PersonalityCautious, 15},
		{PersonalityDesperate, 5},
	}
}

// TotalWeight sums the distribution
func (c Config) TotalWeight() int {
	total := 0
	for _, w := range c.Distribution {
		total += w.Weight
	}
	return total
}

var validate = validator.New()

// Validate checks ranges and that the distribution is usable
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return shared.NewValidationError(strings.ToLower(fe.Field()),
				fmt.Sprintf("merchant config failed %s validation (value: '%v')", fe.Tag(), fe.Value()))
		}
		return shared.NewValidationError("merchant", err.Error())
	}
	if c.TotalWeight() <= 0 {
		return shared.NewValidationError("distribution", "personality weights must sum to a positive total")
	}
	for _, w := range c.Distribution {
		if _, ok := LookupProfile(w.Personality); !ok {
			return shared.NewValidationError("distribution", fmt.Sprintf("unknown personality %q", w.Personality))
		}
	}
	return nil
}
