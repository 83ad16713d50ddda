package services

import (
	"github.com/andrescamacho/trading-engine-go/internal/domain/merchant"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

// SaleState is a node of the selling state machine
type SaleState string

const (
	StateStart            SaleState = "start"
	StateEligibilityCheck SaleState = "eligibility_check"
	StateBlocked          SaleState = "blocked"
	StateDispatch         SaleState = "dispatch"
	StateDesperatePath    SaleState = "desperate_path"
	StateRumorPath        SaleState = "rumor_path"
	StateNormalPath       SaleState = "normal_path"
	StateVillageCheck     SaleState = "village_check"
	StateRestricted       SaleState = "restricted"
	StateBuyerSearch      SaleState = "buyer_search"
	StateNoBuyer          SaleState = "no_buyer"
	StatePriceCalc        SaleState = "price_calc"
	StateHaggle           SaleState = "haggle"
	StateUnavailable      SaleState = "unavailable"
	StateCompleted        SaleState = "completed"
)

// SaleOutcome is the terminal classification of a sale
type SaleOutcome string

const (
	OutcomeBlocked     SaleOutcome = "blocked"
	OutcomeNoBuyer     SaleOutcome = "no_buyer"
	OutcomeRestricted  SaleOutcome = "restricted"
	OutcomeUnavailable SaleOutcome = "unavailable"
	OutcomeCompleted   SaleOutcome = "completed"
)

// SaleRequest is everything the workflow needs to resolve one sale
type SaleRequest struct {
	Settlement      *trading.Settlement
	Cargo           *trading.CargoType
	Quantity        int
	Season          shared.Season
	Quality         trading.Quality
	SaleType        trading.SaleType
	PurchaseHistory *trading.PurchaseRecord
	Rumor           *trading.Rumor
	Haggle          *trading.HaggleOutcome
}

// HalvedForRetry returns the request with half the quantity for the
// "sell half and re-roll" option; false when nothing would be left to sell
func (r SaleRequest) HalvedForRetry() (SaleRequest, bool) {
	half := r.Quantity / 2
	if half < 1 {
		return r, false
	}
	r.Quantity = half
	return r, true
}

// VillageRestriction is the result of the village cargo rule
type VillageRestriction struct {
	Restricted      bool
	AllowedQuantity int
	Roll            int
}

// SellResult is the single result shape for every terminal sale state
type SellResult struct {
	Outcome           SaleOutcome
	Path              trading.SaleType
	Success           bool
	Reason            string
	RequestedQuantity int
	Quantity          int

	Breakdown *trading.PriceBreakdown
	Offer     *trading.SpecialSaleOffer
	Merchant  *merchant.Merchant

	Restricted      bool
	AllowedQuantity int

	BuyerChance         int
	BuyerRoll           int
	PartialSaleOffered  bool
	PartialSaleQuantity int

	Trace []SaleState
}

// IsTerminal reports whether a state ends the workflow
func (s SaleState) IsTerminal() bool {
	switch s {
	case StateBlocked, StateRestricted, StateNoBuyer, StateUnavailable, StateCompleted:
		return true
	default:
		return false
	}
}

// outcomeFor maps a terminal state to its outcome
func outcomeFor(s SaleState) SaleOutcome {
	switch s {
	case StateBlocked:
		return OutcomeBlocked
	case StateRestricted:
		return OutcomeRestricted
	case StateNoBuyer:
		return OutcomeNoBuyer
	case StateUnavailable:
		return OutcomeUnavailable
	default:
		return OutcomeCompleted
	}
}
