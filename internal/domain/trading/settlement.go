package trading

import (
	"strings"
)

// ProductionTrade is the production category that marks a Trade settlement
const ProductionTrade = "Trade"

// Settlement is a read-only snapshot of a settlement owned by the data repository
type Settlement struct {
	Name                 string `validate:"required"`
	Region               string
	SizeRank             int `validate:"min=1,max=5"`
	WealthRank           int `validate:"min=1,max=5"`
	Population           int `validate:"min=0"`
	ProductionCategories []string
	Garrison             string
	Ruler                string
	Notes                string
}

// Validate checks rank bounds and required fields
func (s *Settlement) Validate() error {
	if s == nil {
		return ErrSettlementRequired
	}
	return validateStruct("settlement", s)
}

// Identifier is the settlement's cache and lookup key
func (s *Settlement) Identifier() string {
	return s.Name
}

// IsTrade reports whether productionCategories contains "Trade"
func (s *Settlement) IsTrade() bool {
	return s.HasProduction(ProductionTrade)
}

// IsVillage reports whether the settlement is the smallest size tier
func (s *Settlement) IsVillage() bool {
	return s.SizeRank == 1
}

// HasProduction checks for a production category, ignoring case
func (s *Settlement) HasProduction(category string) bool {
	for _, c := range s.ProductionCategories {
		if strings.EqualFold(strings.TrimSpace(c), category) {
			return true
		}
	}
	return false
}

// SizeLabel returns the display name for the settlement's size rank
func (s *Settlement) SizeLabel() string {
	return SizeLabel(s.SizeRank)
}

// WealthLabel returns the display name for the settlement's wealth rank
func (s *Settlement) WealthLabel() string {
	return WealthLabel(s.WealthRank)
}

// SettlementProperties is the subset of settlement data the rules engine consumes
type SettlementProperties struct {
	SizeRank             int
	WealthRank           int
	WealthModifier       float64
	ProductionCategories []string
	IsTrade              bool
}

// Properties derives the rule-relevant properties of the settlement
func (s *Settlement) Properties() SettlementProperties {
	modifier, _ := WealthModifier(s.WealthRank)
	f, _ := modifier.Float64()
	return SettlementProperties{
		SizeRank:             s.SizeRank,
		WealthRank:           s.WealthRank,
		WealthModifier:       f,
		ProductionCategories: append([]string(nil), s.ProductionCategories...),
		IsTrade:              s.IsTrade(),
	}
}

// SizeLabel maps a size rank to its name (Village < Small Town < Town < City < Capital)
func SizeLabel(rank int) string {
	switch rank {
	case 1:
		return "Village"
	case 2:
		return "Small Town"
	case 3:
		return "Town"
	case 4:
		return "City"
	case 5:
		return "Capital"
	default:
		return "Unknown"
	}
}

// WealthLabel maps a wealth rank to its name
func WealthLabel(rank int) string {
	switch rank {
	case 1:
		return "Squalid"
	case 2:
		return "Poor"
	case 3:
		return "Average"
	case 4:
		return "Bustling"
	case 5:
		return "Prosperous"
	default:
		return "Unknown"
	}
}
