package services

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
)

type rawSlot struct {
	CargoType   string   `mapstructure:"cargoType"`
	Tier        string   `mapstructure:"tier"`
	Probability *float64 `mapstructure:"probability"`
}

type rawSlotPlan struct {
	BaseMultiplier *int  `mapstructure:"baseMultiplier"`
	SizeMultiplier *int  `mapstructure:"sizeMultiplier"`
	TradeBonus     *bool `mapstructure:"tradeBonus"`
	TotalSize      *int  `mapstructure:"totalSize"`
}

type rawPlanDocument struct {
	Settlement     string      `mapstructure:"settlement"`
	Season         string      `mapstructure:"season"`
	Slots          []rawSlot   `mapstructure:"slots"`
	SlotPlan       rawSlotPlan `mapstructure:"slotPlan"`
	CandidateTable interface{} `mapstructure:"candidateTable"`
}

// matchKey accepts camelCase, snake_case and any letter case for plan keys
func matchKey(mapKey, fieldName string) bool {
	return strings.EqualFold(strings.ReplaceAll(mapKey, "_", ""), strings.ReplaceAll(fieldName, "_", ""))
}

// NormalizePlan converts a provider's raw plan into the canonical shape.
// Missing numeric hints stay nil; structurally wrong input is an error.
func NormalizePlan(raw RawPlan, req PlanRequest) (*AvailabilityPlan, error) {
	if raw == nil {
		return nil, fmt.Errorf("plan document is empty")
	}

	var doc rawPlanDocument
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true,
		MatchName:        matchKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build plan decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("malformed plan: %w", err)
	}

	plan := &AvailabilityPlan{
		Settlement: doc.Settlement,
		Season:     req.Season,
		Slots:      make([]PlanSlot, 0, len(doc.Slots)),
		SlotPlan: SlotPlan{
			BaseMultiplier: doc.SlotPlan.BaseMultiplier,
			SizeMultiplier: doc.SlotPlan.SizeMultiplier,
			TradeBonus:     doc.SlotPlan.TradeBonus,
			TotalSize:      doc.SlotPlan.TotalSize,
		},
		CandidateTable: doc.CandidateTable,
	}
	if plan.Settlement == "" && req.Settlement != nil {
		plan.Settlement = req.Settlement.Identifier()
	}
	if doc.Season != "" {
		season, err := shared.ParseSeason(doc.Season)
		if err != nil {
			return nil, fmt.Errorf("malformed plan: %w", err)
		}
		if season != req.Season {
			return nil, fmt.Errorf("malformed plan: season %s does not match requested %s", season, req.Season)
		}
	}

	for i, slot := range doc.Slots {
		name := strings.TrimSpace(slot.CargoType)
		if name == "" {
			return nil, fmt.Errorf("malformed plan: slot %d has no cargo type", i)
		}
		plan.Slots = append(plan.Slots, PlanSlot{
			CargoType:   name,
			Tier:        slot.Tier,
			Probability: slot.Probability,
		})
	}

	return plan, nil
}
