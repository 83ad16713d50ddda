package services

import (
	"context"
	"fmt"

	"github.com/andrescamacho/trading-engine-go/internal/application/common"
	"github.com/andrescamacho/trading-engine-go/internal/domain/dice"
	"github.com/andrescamacho/trading-engine-go/internal/domain/merchant"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
	"github.com/andrescamacho/trading-engine-go/pkg/utils"
)

// SellingWorkflow drives a sale through eligibility, dispatch, village rules,
// buyer search, pricing and haggling
type SellingWorkflow struct {
	source       dice.Source
	merchants    *merchant.Generator
	clock        shared.Clock
	cooldownDays int
	metrics      MetricsRecorder
}

// WorkflowOption configures a SellingWorkflow
type WorkflowOption func(*SellingWorkflow)

// WithWorkflowClock sets the clock used for purchase age
func WithWorkflowClock(clock shared.Clock) WorkflowOption {
	return func(w *SellingWorkflow) {
		if clock != nil {
			w.clock = clock
		}
	}
}

// WithResaleCooldown overrides the days cargo must be held before resale where it was bought
func WithResaleCooldown(days int) WorkflowOption {
	return func(w *SellingWorkflow) {
		if days >= 0 {
			w.cooldownDays = days
		}
	}
}

// WithWorkflowMetrics sets the metrics recorder
func WithWorkflowMetrics(m MetricsRecorder) WorkflowOption {
	return func(w *SellingWorkflow) {
		if m != nil {
			w.metrics = m
		}
	}
}

// NewSellingWorkflow creates a workflow. A nil merchant generator leaves results without a merchant.
func NewSellingWorkflow(source dice.Source, merchants *merchant.Generator, opts ...WorkflowOption) *SellingWorkflow {
	w := &SellingWorkflow{
		source:       source,
		merchants:    merchants,
		clock:        shared.NewRealClock(),
		cooldownDays: trading.DefaultResaleCooldownDays,
		metrics:      NoopMetrics(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Execute runs the state machine to a terminal state.
// Business refusals come back as a SellResult; only bad input and roll failures are errors.
func (w *SellingWorkflow) Execute(ctx context.Context, req SaleRequest) (*SellResult, error) {
	logger := common.LoggerFromContext(ctx)

	result := &SellResult{
		Path:              req.SaleType,
		RequestedQuantity: req.Quantity,
		Quantity:          req.Quantity,
	}
	if result.Path == "" {
		result.Path = trading.SaleTypeNormal
	}

	state := StateStart
	for {
		result.Trace = append(result.Trace, state)
		if state.IsTerminal() {
			break
		}

		next, err := w.step(ctx, state, &req, result)
		if err != nil {
			return nil, err
		}
		state = next
	}

	result.Outcome = outcomeFor(state)
	result.Success = result.Outcome == OutcomeCompleted
	w.metrics.RecordSale(string(result.Path), string(result.Outcome))

	logger.Log(common.LevelInfo, "Selling workflow finished", map[string]interface{}{
		"settlement": req.Settlement.Name,
		"cargo":      req.Cargo.Name,
		"path":       string(result.Path),
		"outcome":    string(result.Outcome),
		"quantity":   result.Quantity,
		"reason":     result.Reason,
	})
	return result, nil
}

func (w *SellingWorkflow) step(ctx context.Context, state SaleState, req *SaleRequest, result *SellResult) (SaleState, error) {
	switch state {
	case StateStart:
		if err := validateSaleRequest(req); err != nil {
			return "", err
		}
		return StateEligibilityCheck, nil

	case StateEligibilityCheck:
		ok, reason := trading.CheckResaleEligibility(req.PurchaseHistory, req.Settlement.Name, w.clock.Now(), w.cooldownDays)
		if !ok {
			result.Reason = reason
			return StateBlocked, nil
		}
		return StateDispatch, nil

	case StateDispatch:
		switch result.Path {
		case trading.SaleTypeDesperate:
			return StateDesperatePath, nil
		case trading.SaleTypeRumor:
			return StateRumorPath, nil
		case trading.SaleTypeNormal:
			return StateNormalPath, nil
		default:
			return "", shared.NewValidationError("sale_type", fmt.Sprintf("unknown sale type %q", result.Path))
		}

	case StateDesperatePath:
		offer, err := trading.EvaluateDesperateSale(req.Settlement, req.Cargo, req.Quantity, req.Season, req.Quality)
		if err != nil {
			return "", err
		}
		return w.settleOffer(offer, result), nil

	case StateRumorPath:
		offer, err := trading.EvaluateRumorSale(req.Settlement, req.Cargo, req.Quantity, req.Season, req.Quality, req.Rumor)
		if err != nil {
			return "", err
		}
		return w.settleOffer(offer, result), nil

	case StateNormalPath:
		return StateVillageCheck, nil

	case StateVillageCheck:
		restriction, err := w.CheckVillageRestriction(ctx, req.Settlement, req.Cargo.Name, req.Season)
		if err != nil {
			return "", err
		}
		if !restriction.Restricted {
			return StateBuyerSearch, nil
		}
		result.Restricted = true
		result.AllowedQuantity = restriction.AllowedQuantity
		if restriction.AllowedQuantity == 0 {
			result.Quantity = 0
			result.Reason = trading.ReasonVillageRestriction
			return StateRestricted, nil
		}
		req.Quantity = utils.Min(req.Quantity, restriction.AllowedQuantity)
		result.Quantity = req.Quantity
		return StateBuyerSearch, nil

	case StateBuyerSearch:
		result.BuyerChance = trading.BuyerChance(req.Settlement)
		roll, err := dice.D100(ctx, w.source)
		if err != nil {
			return "", fmt.Errorf("buyer search roll: %w", err)
		}
		result.BuyerRoll = roll
		if roll > result.BuyerChance {
			result.Reason = trading.ReasonNoBuyer
			if half, ok := req.HalvedForRetry(); ok {
				result.PartialSaleOffered = true
				result.PartialSaleQuantity = half.Quantity
			}
			return StateNoBuyer, nil
		}
		if w.merchants != nil {
			m, err := w.merchants.Generate(ctx, req.Settlement.WealthRank)
			if err != nil {
				return "", fmt.Errorf("buyer generation: %w", err)
			}
			result.Merchant = m
		}
		return StatePriceCalc, nil

	case StatePriceCalc:
		breakdown, err := trading.CalculateSalePrice(req.Cargo, req.Quantity, req.Season, req.Quality, req.Settlement.WealthRank, nil)
		if err != nil {
			return "", err
		}
		w.metrics.RecordPriceCalculation("sale")
		result.Breakdown = breakdown
		if req.Haggle == nil {
			return StateCompleted, nil
		}
		return StateHaggle, nil

	case StateHaggle:
		breakdown, err := trading.CalculateSalePrice(req.Cargo, req.Quantity, req.Season, req.Quality, req.Settlement.WealthRank, req.Haggle)
		if err != nil {
			return "", err
		}
		result.Breakdown = breakdown
		return StateCompleted, nil

	case StateBlocked, StateRestricted, StateNoBuyer, StateUnavailable, StateCompleted:
		return state, nil

	default:
		return "", fmt.Errorf("unknown sale state %q", state)
	}
}

func (w *SellingWorkflow) settleOffer(offer *trading.SpecialSaleOffer, result *SellResult) SaleState {
	result.Offer = offer
	if !offer.Available {
		result.Reason = offer.Reason
		return StateUnavailable
	}
	w.metrics.RecordPriceCalculation("sale")
	result.Breakdown = offer.Breakdown
	return StateCompleted
}

// CheckVillageRestriction applies the village rule: Grain is always bought, other cargo
// only in spring and only up to one d10 roll of EP
func (w *SellingWorkflow) CheckVillageRestriction(ctx context.Context, settlement *trading.Settlement, cargoName string, season shared.Season) (*VillageRestriction, error) {
	if settlement == nil {
		return nil, trading.ErrSettlementRequired
	}
	if !settlement.IsVillage() || trading.IsGrain(cargoName) {
		return &VillageRestriction{Restricted: false}, nil
	}
	if season != shared.SeasonSpring {
		return &VillageRestriction{Restricted: true, AllowedQuantity: 0}, nil
	}
	roll, err := dice.D10(ctx, w.source)
	if err != nil {
		return nil, fmt.Errorf("village allowance roll: %w", err)
	}
	return &VillageRestriction{Restricted: true, AllowedQuantity: roll, Roll: roll}, nil
}

func validateSaleRequest(req *SaleRequest) error {
	if req.Settlement == nil {
		return trading.ErrSettlementRequired
	}
	if req.Cargo == nil {
		return trading.ErrCargoRequired
	}
	if req.Quantity <= 0 {
		return shared.NewValidationError("quantity", fmt.Sprintf("quantity must be positive, got %d", req.Quantity))
	}
	if !req.Season.IsValid() {
		return shared.NewValidationError("season", fmt.Sprintf("invalid season %q", req.Season))
	}
	return nil
}
