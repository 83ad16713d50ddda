package trading

import (
	"errors"
	"fmt"

	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
)

var (
	// ErrSettlementRequired indicates a rule was evaluated without a settlement
	ErrSettlementRequired = fmt.Errorf("%w: settlement is required", shared.ErrInvalidArgument)

	// ErrCargoRequired indicates a rule was evaluated without a cargo type
	ErrCargoRequired = fmt.Errorf("%w: cargo type is required", shared.ErrInvalidArgument)
)

// Reasons carried by non-available offers and unsuccessful sale results.
// These are business outcomes, not errors.
const (
	ReasonNotTradeSettlement = "not a Trade settlement"
	ReasonNoRumor            = "no rumor supplied"
	ReasonRumorInvalid       = "rumor multiplier must be positive"
	ReasonRumorMismatch      = "rumor does not match this settlement and cargo"
	ReasonRecentPurchase     = "cargo was bought here too recently to resell"
	ReasonVillageRestriction = "village restriction"
	ReasonNoBuyer            = "no buyer found"
)

var (
	// ErrInsufficientFunds indicates a purse cannot cover a deduction
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientCargo indicates an inventory holds less cargo than requested
	ErrInsufficientCargo = errors.New("insufficient cargo")
)
