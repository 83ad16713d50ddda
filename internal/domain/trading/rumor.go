package trading

// Rumor is an externally sourced hint unlocking a premium sale for one settlement/cargo pair
type Rumor struct {
	Type           string
	Description    string
	Multiplier     float64
	SettlementName string
	CargoType      string
}

// Matches requires the settlement and cargo names to match exactly
func (r *Rumor) Matches(settlementName, cargoName string) bool {
	return r.SettlementName == settlementName && r.CargoType == cargoName
}

// BindTo returns a copy of the rumor with a missing settlement or cargo filled in from
// the transaction it is offered for. Names the caller set are kept as given.
func (r *Rumor) BindTo(settlementName, cargoName string) *Rumor {
	if r == nil {
		return nil
	}
	bound := *r
	if bound.SettlementName == "" {
		bound.SettlementName = settlementName
	}
	if bound.CargoType == "" {
		bound.CargoType = cargoName
	}
	return &bound
}

// unavailableReason returns why the rumor cannot be used here, or "" when it can
func (r *Rumor) unavailableReason(settlementName, cargoName string) string {
	switch {
	case r == nil:
		return ReasonNoRumor
	case r.Multiplier <= 0:
		return ReasonRumorInvalid
	case !r.Matches(settlementName, cargoName):
		return ReasonRumorMismatch
	default:
		return ""
	}
}
