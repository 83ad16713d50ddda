package merchant

import (
	"strings"
)

// Personality is the closed set of merchant temperaments
type Personality string

const (
	PersonalityShrewd    Personality = "shrewd"
	PersonalityGreedy    Personality = "greedy"
	PersonalityFriendly  Personality = "friendly"
	PersonalityPragmatic Personality = "pragmatic"
	PersonalityCautious  Personality = "cautious"
	PersonalityDesperate Personality = "desperate"
)

// AllPersonalities lists every personality in table order
var AllPersonalities = []Personality{
	PersonalityShrewd,
	PersonalityGreedy,
	PersonalityFriendly,
	PersonalityPragmatic,
	PersonalityCautious,
	PersonalityDesperate,
}

// ParsePersonality normalizes a personality name
func ParsePersonality(raw string) (Personality, bool) {
	p := Personality(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := LookupProfile(p)
	return p, ok
}

func (p Personality) String() string {
	return string(p)
}

// Profile holds everything a personality contributes to a generated merchant
type Profile struct {
	Personality      Personality
	Description      string
	SkillModifier    int
	PriceVariance    float64
	QuantityVariance float64
	SpecialBehaviors []string
	NamePool         NamePool
}

// LookupProfile resolves a personality to its profile
func LookupProfile(p Personality) (Profile, bool) {
	switch p {
	case PersonalityShrewd:
		return Profile{
			Personality:      p,
			Description:      "Calculating and hard to fool",
			SkillModifier:    10,
			PriceVariance:    0.15,
			QuantityVariance: 0.10,
			SpecialBehaviors: []string{"drives a hard bargain", "sees through exaggerated claims"},
			NamePool:         PoolReikland,
		}, true
	case PersonalityGreedy:
		return Profile{
			Personality:      p,
			Description:      "Always angling for a larger cut",
			SkillModifier:    5,
			PriceVariance:    0.20,
			QuantityVariance: 0.05,
			SpecialBehaviors: []string{"inflates opening offers"},
			NamePool:         PoolTilean,
		}, true
	case PersonalityFriendly:
		return Profile{
			Personality:      p,
			Description:      "Open and easy to deal with",
			SkillModifier:    -5,
			PriceVariance:    0.05,
			QuantityVariance: 0.15,
			SpecialBehaviors: []string{"opens with a fair price", "shares local gossip"},
			NamePool:         PoolHalfling,
		}, true
	case PersonalityPragmatic:
		return pragmaticProfile, true
	case PersonalityCautious:
		return Profile{
			Personality:      p,
			Description:      "Wary of strangers and large lots",
			SkillModifier:    0,
			PriceVariance:    0.05,
			QuantityVariance: 0.05,
			SpecialBehaviors: []string{"buys in small lots", "inspects every crate"},
			NamePool:         PoolDwarf,
		}, true
	case PersonalityDesperate:
		return Profile{
			Personality:      p,
			Description:      "Needs the deal more than you do",
			SkillModifier:    -10,
			PriceVariance:    0.25,
			QuantityVariance: 0.25,
			SpecialBehaviors: []string{"accepts low offers to close quickly"},
			NamePool:         PoolBretonnian,
		}, true
	default:
		return Profile{}, false
	}
}

var pragmaticProfile = Profile{
	Personality:      PersonalityPragmatic,
	Description:      "Sensible and businesslike",
	SkillModifier:    0,
	PriceVariance:    0.10,
	QuantityVariance: 0.10,
	SpecialBehaviors: []string{"accepts reasonable counteroffers"},
	NamePool:         PoolReikland,
}

// DefaultProfile is used when a weighted draw matches no bucket
func DefaultProfile() Profile {
	return pragmaticProfile
}
