package shared

import (
	"fmt"
	"strings"
)

// Season is one of the four trading seasons, always held in lowercase canonical form
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// AllSeasons lists the seasons in calendar order
var AllSeasons = []Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}

// ParseSeason normalizes user input ("Spring", " WINTER ") into a canonical Season.
// Anything other than the four seasons is rejected with a ValidationError.
func ParseSeason(raw string) (Season, error) {
	season := Season(strings.ToLower(strings.TrimSpace(raw)))
	if raw == "" {
		return "", NewValidationError("season", "season is required")
	}
	if !season.IsValid() {
		return "", NewValidationError("season", fmt.Sprintf("invalid season %q: must be one of spring, summer, autumn, winter", raw))
	}
	return season, nil
}

// IsValid checks the value is one of the canonical seasons
func (s Season) IsValid() bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter:
		return true
	default:
		return false
	}
}

func (s Season) String() string {
	return string(s)
}

// Title returns the capitalized season name for display
func (s Season) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}
