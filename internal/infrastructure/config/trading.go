package config

import (
	"fmt"

	"github.com/andrescamacho/trading-engine-go/internal/domain/merchant"
)

// TradingConfig holds the rules-engine settings
type TradingConfig struct {
	// Season applied at startup; empty means the caller must set one
	Season string `mapstructure:"season" validate:"omitempty,season"`

	// DatasetPath points at a YAML dataset; empty uses the embedded default
	DatasetPath string `mapstructure:"dataset_path"`

	// Seed for the random source; 0 seeds from the system
	Seed uint64 `mapstructure:"seed"`

	// ResaleCooldownDays is how long bought cargo cannot be resold at the same settlement
	ResaleCooldownDays int `mapstructure:"resale_cooldown_days" validate:"min=0"`

	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Merchant MerchantConfig `mapstructure:"merchant"`
}

// PipelineConfig controls the optional availability-plan provider
type PipelineConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// MerchantConfig holds merchant generation knobs
type MerchantConfig struct {
	BaseSkill      int `mapstructure:"base_skill" validate:"min=0,max=100"`
	WealthModifier int `mapstructure:"wealth_modifier" validate:"min=0"`
	Variance       int `mapstructure:"variance" validate:"min=0"`
	MinSkill       int `mapstructure:"min_skill" validate:"min=0,max=100"`
	MaxSkill       int `mapstructure:"max_skill" validate:"min=0,max=100,gtefield=MinSkill"`

	// Distribution maps personality name to relative weight; empty uses the default
	Distribution map[string]int `mapstructure:"distribution"`
}

// MerchantDomainConfig converts the knobs into generator settings. Distribution
// buckets follow the canonical personality order so selection stays deterministic.
func (t TradingConfig) MerchantDomainConfig() (merchant.Config, error) {
	cfg := merchant.Config{
		BaseSkill:      t.Merchant.BaseSkill,
		WealthModifier: t.Merchant.WealthModifier,
		Variance:       t.Merchant.Variance,
		MinSkill:       t.Merchant.MinSkill,
		MaxSkill:       t.Merchant.MaxSkill,
		Distribution:   merchant.DefaultDistribution(),
	}
	if len(t.Merchant.Distribution) > 0 {
		weights := make(map[merchant.Personality]int, len(t.Merchant.Distribution))
		for name, weight := range t.Merchant.Distribution {
			p, ok := merchant.ParsePersonality(name)
			if !ok {
				return merchant.Config{}, fmt.Errorf("unknown personality %q in merchant distribution", name)
			}
			weights[p] = weight
		}
		cfg.Distribution = cfg.Distribution[:0:0]
		for _, p := range merchant.AllPersonalities {
			if w, ok := weights[p]; ok {
				cfg.Distribution = append(cfg.Distribution, merchant.Weight{Personality: p, Weight: w})
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return merchant.Config{}, err
	}
	return cfg, nil
}
