package trading

const (
	// tradeBuyerBonus is added to the buyer chance at Trade settlements
	tradeBuyerBonus = 30
	maxChance       = 100
)

// AvailabilityChance is min((sizeRank + wealthRank) x 10, 100)
func AvailabilityChance(sizeRank, wealthRank int) int {
	return capChance((sizeRank + wealthRank) * 10)
}

// BuyerChance is sizeRank x 10, plus 30 at Trade settlements, capped at 100
func BuyerChance(s *Settlement) int {
	chance := s.SizeRank * 10
	if s.IsTrade() {
		chance += tradeBuyerBonus
	}
	return capChance(chance)
}

// BaseCargoMultiplier is the settlement part of the cargo size formula
func BaseCargoMultiplier(s *Settlement) int {
	return s.SizeRank + s.WealthRank
}

func capChance(chance int) int {
	if chance > maxChance {
		return maxChance
	}
	if chance < 0 {
		return 0
	}
	return chance
}
