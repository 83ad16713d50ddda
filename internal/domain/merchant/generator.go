package merchant

import (
	"context"
	"fmt"

	"github.com/andrescamacho/trading-engine-go/internal/domain/dice"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/pkg/utils"
)

const (
	minHagglingSkill = 5
	maxHagglingSkill = 95
)

// Merchant is a generated negotiation counterpart
type Merchant struct {
	ID               string
	Name             string
	BaseSkill        int
	Personality      Personality
	Description      string
	HagglingSkill    int
	PriceVariance    float64
	QuantityVariance float64
	SpecialBehaviors []string
	SkillDescription string
}

// Generator produces merchants from percentile draws
type Generator struct {
	source dice.Source
	config Config
}

// NewGenerator validates the config and binds it to a random source
func NewGenerator(source dice.Source, config Config) (*Generator, error) {
	if source == nil {
		return nil, shared.NewValidationError("source", "random source is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Generator{source: source, config: config}, nil
}

// Config returns the generation parameters in use
func (g *Generator) Config() Config {
	return g.config
}

// Generate draws a merchant for a settlement of the given wealth.
// Draw order: skill percentile, skill variance, personality, first name, last name.
func (g *Generator) Generate(ctx context.Context, wealthRank int) (*Merchant, error) {
	if wealthRank < 1 || wealthRank > 5 {
		return nil, shared.NewValidationError("wealth_rank", fmt.Sprintf("wealth rank must be within 1..5, got %d", wealthRank))
	}

	percentile, err := dice.D100(ctx, g.source)
	if err != nil {
		return nil, fmt.Errorf("merchant skill: %w", err)
	}
	varianceRoll, err := dice.D100(ctx, g.source)
	if err != nil {
		return nil, fmt.Errorf("merchant variance: %w", err)
	}

	baseSkill := g.config.BaseSkill +
		wealthRank*g.config.WealthModifier +
		PercentileAdjustment(percentile) +
		dice.Offset(varianceRoll, g.config.Variance)
	baseSkill = utils.Clamp(baseSkill, g.config.MinSkill, g.config.MaxSkill)

	personalityRoll, err := dice.D100(ctx, g.source)
	if err != nil {
		return nil, fmt.Errorf("merchant personality: %w", err)
	}
	profile := g.selectProfile(personalityRoll)

	name, err := g.drawName(ctx, profile.NamePool)
	if err != nil {
		return nil, err
	}

	haggling := utils.Clamp(baseSkill+profile.SkillModifier, minHagglingSkill, maxHagglingSkill)
	behaviors := make([]string, len(profile.SpecialBehaviors))
	copy(behaviors, profile.SpecialBehaviors)

	return &Merchant{
		ID:               utils.GenerateID("merchant", name),
		Name:             name,
		BaseSkill:        baseSkill,
		Personality:      profile.Personality,
		Description:      profile.Description,
		HagglingSkill:    haggling,
		PriceVariance:    profile.PriceVariance,
		QuantityVariance: profile.QuantityVariance,
		SpecialBehaviors: behaviors,
		SkillDescription: SkillDescription(haggling),
	}, nil
}

// selectProfile walks the cumulative distribution; the first bucket whose
// cumulative weight reaches roll/100 of the total wins
func (g *Generator) selectProfile(roll int) Profile {
	total := g.config.TotalWeight()
	target := float64(roll) / 100 * float64(total)

	cumulative := 0
	for _, w := range g.config.Distribution {
		cumulative += w.Weight
		if w.Weight > 0 && float64(cumulative) >= target {
			if profile, ok := LookupProfile(w.Personality); ok {
				return profile
			}
			break
		}
	}
	return DefaultProfile()
}

func (g *Generator) drawName(ctx context.Context, pool NamePool) (string, error) {
	names := LookupNames(pool)

	first, err := dice.D100(ctx, g.source)
	if err != nil {
		return "", fmt.Errorf("merchant first name: %w", err)
	}
	last, err := dice.D100(ctx, g.source)
	if err != nil {
		return "", fmt.Errorf("merchant last name: %w", err)
	}
	return names.First[dice.Pick(first, len(names.First))] + " " + names.Last[dice.Pick(last, len(names.Last))], nil
}
