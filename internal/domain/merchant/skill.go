package merchant

// percentileBand maps an inclusive d100 range to a skill adjustment
type percentileBand struct {
	low, high  int
	adjustment int
}

// percentileTable covers 1..100 without gaps
var percentileTable = [...]percentileBand{
	{1, 10, -10},
	{11, 25, -5},
	{26, 75, 0},
	{76, 90, 5},
	{91, 97, 10},
	{98, 100, 20},
}

// PercentileAdjustment looks up the skill adjustment for a d100 roll.
// Out-of-range rolls take the nearest band.
func PercentileAdjustment(roll int) int {
	if roll < percentileTable[0].low {
		return percentileTable[0].adjustment
	}
	for _, band := range percentileTable {
		if roll >= band.low && roll <= band.high {
			return band.adjustment
		}
	}
	return percentileTable[len(percentileTable)-1].adjustment
}

// SkillDescription is a display label for a haggling skill value
func SkillDescription(skill int) string {
	switch {
	case skill >= 85:
		return "Legendary"
	case skill >= 75:
		return "Master"
	case skill >= 65:
		return "Expert"
	case skill >= 50:
		return "Skilled"
	case skill >= 35:
		return "Competent"
	default:
		return "Novice"
	}
}
