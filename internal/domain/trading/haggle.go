package trading

import "fmt"

const (
	haggleSuccessPercent   = 10
	haggleDealmakerPercent = 20
)

// HaggleOutcome is the result of an external opposed haggle test
type HaggleOutcome struct {
	Success            bool
	HasDealmakerTalent bool
}

// Percent returns the magnitude of the price swing the outcome earns.
// A failed (or absent) haggle earns nothing; Dealmaker doubles the swing.
func (h *HaggleOutcome) Percent() int {
	if h == nil || !h.Success {
		return 0
	}
	if h.HasDealmakerTalent {
		return haggleDealmakerPercent
	}
	return haggleSuccessPercent
}

func (h *HaggleOutcome) describe(side string, pct int) string {
	if h.HasDealmakerTalent {
		return fmt.Sprintf("Dealmaker haggle on %s (%+d%%)", side, pct)
	}
	return fmt.Sprintf("Successful haggle on %s (%+d%%)", side, pct)
}
