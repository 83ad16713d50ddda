package trading

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
)

// Quality is a cargo quality tier. Tiers are per-cargo; "average" is always implied.
type Quality string

// QualityAverage is the default tier with an implicit multiplier of 1.0
const QualityAverage Quality = "average"

// ParseQuality normalizes a tier name; an empty value selects the average tier
func ParseQuality(raw string) Quality {
	q := Quality(strings.ToLower(strings.TrimSpace(raw)))
	if q == "" {
		return QualityAverage
	}
	return q
}

// CargoType describes a tradeable cargo. Immutable from the engine's point of view.
type CargoType struct {
	Name               string `validate:"required"`
	Category           string
	BasePrices         map[shared.Season]float64
	QualityMultipliers map[Quality]float64
	EncumbrancePerUnit float64 `validate:"gt=0"`
}

// Validate checks that every season carries a positive price and every tier a positive multiplier
func (c *CargoType) Validate() error {
	if c == nil {
		return ErrCargoRequired
	}
	if err := validateStruct("cargo type", c); err != nil {
		return err
	}
	for _, season := range shared.AllSeasons {
		price, ok := c.BasePrices[season]
		if !ok {
			return shared.NewValidationError("base_prices", fmt.Sprintf("cargo %s has no %s price", c.Name, season))
		}
		if price <= 0 {
			return shared.NewValidationError("base_prices", fmt.Sprintf("cargo %s %s price must be positive", c.Name, season))
		}
	}
	for tier, mult := range c.QualityMultipliers {
		if mult <= 0 {
			return shared.NewValidationError("quality_multipliers", fmt.Sprintf("cargo %s tier %s multiplier must be positive", c.Name, tier))
		}
	}
	return nil
}

// Is compares cargo names case-insensitively
func (c *CargoType) Is(name string) bool {
	return strings.EqualFold(c.Name, strings.TrimSpace(name))
}

// QualityMultiplier resolves the multiplier for a tier.
// The average tier defaults to 1.0 when the cargo does not list it; any other
// undefined tier is a caller error.
func (c *CargoType) QualityMultiplier(quality Quality) (decimal.Decimal, error) {
	quality = ParseQuality(string(quality))
	if mult, ok := c.QualityMultipliers[quality]; ok {
		return decimal.NewFromFloat(mult), nil
	}
	if quality == QualityAverage {
		return decimal.NewFromInt(1), nil
	}
	return decimal.Zero, shared.NewValidationError("quality",
		fmt.Sprintf("quality tier %q is not defined for cargo %s", quality, c.Name))
}

// BasePrice is the seasonal price per unit times the quality multiplier, rounded to 2 dp
func (c *CargoType) BasePrice(season shared.Season, quality Quality) (decimal.Decimal, error) {
	if err := validateSeason(season); err != nil {
		return decimal.Zero, err
	}
	price, ok := c.BasePrices[season]
	if !ok || price <= 0 {
		return decimal.Zero, shared.NewValidationError("season",
			fmt.Sprintf("cargo %s has no price for %s", c.Name, season))
	}
	mult, err := c.QualityMultiplier(quality)
	if err != nil {
		return decimal.Zero, err
	}
	return roundMoney(decimal.NewFromFloat(price).Mul(mult)), nil
}
