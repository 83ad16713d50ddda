package trading

import (
	"strings"

	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
)

// Cargo names referenced directly by the rules
const (
	CargoGrain      = "Grain"
	CargoWool       = "Wool"
	CargoMetal      = "Metal"
	CargoArmaments  = "Armaments"
	CargoWineBrandy = "Wine/Brandy"
	CargoTimber     = "Timber"
	CargoLuxuries   = "Luxuries"
)

// ProductionCargo maps a settlement production category to the cargo it produces.
// Categories without cargo (e.g. "Trade", "Subsistence") return false.
func ProductionCargo(category string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "agriculture":
		return CargoGrain, true
	case "sheep":
		return CargoWool, true
	case "metal":
		return CargoMetal, true
	case "government":
		return CargoArmaments, true
	case "wine":
		return CargoWineBrandy, true
	case "timber":
		return CargoTimber, true
	default:
		return "", false
	}
}

// SeasonalTradeGoods lists the trade goods a Trade settlement may offer in a season
func SeasonalTradeGoods(season shared.Season) []string {
	switch season {
	case shared.SeasonSpring:
		return []string{CargoWool, CargoTimber, CargoGrain, CargoLuxuries}
	case shared.SeasonSummer:
		return []string{CargoWineBrandy, CargoLuxuries, CargoGrain, CargoMetal}
	case shared.SeasonAutumn:
		return []string{CargoGrain, CargoWineBrandy, CargoMetal, CargoTimber}
	case shared.SeasonWinter:
		return []string{CargoLuxuries, CargoArmaments, CargoMetal, CargoWool}
	default:
		return nil
	}
}

// IsGrain reports whether a cargo name is Grain, which villages always buy
func IsGrain(cargoName string) bool {
	return strings.EqualFold(strings.TrimSpace(cargoName), CargoGrain)
}
