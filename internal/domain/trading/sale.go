package trading

import (
	"fmt"
	"strings"
	"time"

	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
)

// DefaultResaleCooldownDays is how long cargo must be held before it can be sold where it was bought
const DefaultResaleCooldownDays = 7

// SaleType selects the selling path
type SaleType string

const (
	SaleTypeNormal    SaleType = "normal"
	SaleTypeDesperate SaleType = "desperate"
	SaleTypeRumor     SaleType = "rumor"
)

// ParseSaleType normalizes a sale type; empty selects a normal sale
func ParseSaleType(raw string) (SaleType, error) {
	switch t := SaleType(strings.ToLower(strings.TrimSpace(raw))); t {
	case "":
		return SaleTypeNormal, nil
	case SaleTypeNormal, SaleTypeDesperate, SaleTypeRumor:
		return t, nil
	default:
		return "", shared.NewValidationError("sale_type", fmt.Sprintf("unknown sale type %q", raw))
	}
}

// PurchaseRecord remembers where (and when) the cargo being sold was bought
type PurchaseRecord struct {
	SettlementName string
	PurchasedAt    *time.Time
}

// CheckResaleEligibility blocks selling at the settlement of purchase when the purchase date is
// unknown or fewer than cooldownDays have elapsed. Selling elsewhere is always allowed.
func CheckResaleEligibility(history *PurchaseRecord, settlementName string, now time.Time, cooldownDays int) (bool, string) {
	if history == nil || history.SettlementName != settlementName {
		return true, ""
	}
	if history.PurchasedAt == nil {
		return false, ReasonRecentPurchase
	}
	if shared.DaysBetween(*history.PurchasedAt, now) < cooldownDays {
		return false, ReasonRecentPurchase
	}
	return true, ""
}
