package dataset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

//go:embed default.yaml
var defaultDataset []byte

// CargoRecord is one cargo entry of a dataset file
type CargoRecord struct {
	Name        string             `yaml:"name"`
	Category    string             `yaml:"category"`
	Encumbrance float64            `yaml:"encumbrance"`
	Prices      map[string]float64 `yaml:"prices"`
	Quality     map[string]float64 `yaml:"quality"`
}

// SettlementRecord is one settlement entry of a dataset file
type SettlementRecord struct {
	Name       string   `yaml:"name"`
	Region     string   `yaml:"region"`
	Size       int      `yaml:"size"`
	Wealth     int      `yaml:"wealth"`
	Population int      `yaml:"population"`
	Production []string `yaml:"production"`
	Garrison   string   `yaml:"garrison"`
	Ruler      string   `yaml:"ruler"`
	Notes      string   `yaml:"notes"`
}

// PlanEntry is one row of the seasonal plan table. Empty selectors match any settlement.
type PlanEntry struct {
	Name       string                   `yaml:"name"`
	Season     string                   `yaml:"season"`
	Settlement string                   `yaml:"settlement"`
	Region     string                   `yaml:"region"`
	Production string                   `yaml:"production"`
	Slots      []map[string]interface{} `yaml:"slots"`
	SlotPlan   map[string]interface{}   `yaml:"slot_plan"`
}

// Dataset is a parsed dataset file
type Dataset struct {
	Cargo       []CargoRecord      `yaml:"cargo"`
	Settlements []SettlementRecord `yaml:"settlements"`
	Plans       []PlanEntry        `yaml:"plans"`
}

// Load parses a dataset and validates every record; unknown keys are rejected
func Load(r io.Reader) (*Dataset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, shared.NewValidationError("dataset", "dataset is empty")
		}
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// LoadFile parses the dataset at path
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the embedded dataset
func Default() (*Dataset, error) {
	return Load(bytes.NewReader(defaultDataset))
}

// LoadOrDefault reads path, or the embedded dataset when path is empty
func LoadOrDefault(path string) (*Dataset, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Validate converts every record and checks names are unique and plan seasons are valid
func (d *Dataset) Validate() error {
	seen := make(map[string]bool)
	for i := range d.Cargo {
		c, err := d.Cargo[i].ToDomain()
		if err != nil {
			return err
		}
		if seen["cargo:"+c.Name] {
			return shared.NewValidationError("cargo", fmt.Sprintf("duplicate cargo %s", c.Name))
		}
		seen["cargo:"+c.Name] = true
	}
	for i := range d.Settlements {
		s, err := d.Settlements[i].ToDomain()
		if err != nil {
			return err
		}
		if seen["settlement:"+s.Name] {
			return shared.NewValidationError("settlements", fmt.Sprintf("duplicate settlement %s", s.Name))
		}
		seen["settlement:"+s.Name] = true
	}
	for _, p := range d.Plans {
		if _, err := shared.ParseSeason(p.Season); err != nil {
			return fmt.Errorf("plan %q: %w", p.Name, err)
		}
	}
	return nil
}

// ToDomain converts the record into a validated cargo type
func (c CargoRecord) ToDomain() (*trading.CargoType, error) {
	prices := make(map[shared.Season]float64, len(c.Prices))
	for raw, price := range c.Prices {
		season, err := shared.ParseSeason(raw)
		if err != nil {
			return nil, fmt.Errorf("cargo %s: %w", c.Name, err)
		}
		prices[season] = price
	}
	tiers := make(map[trading.Quality]float64, len(c.Quality))
	for raw, mult := range c.Quality {
		tiers[trading.ParseQuality(raw)] = mult
	}
	encumbrance := c.Encumbrance
	if encumbrance == 0 {
		encumbrance = 1
	}
	cargo := &trading.CargoType{
		Name:               c.Name,
		Category:           c.Category,
		BasePrices:         prices,
		QualityMultipliers: tiers,
		EncumbrancePerUnit: encumbrance,
	}
	if err := cargo.Validate(); err != nil {
		return nil, err
	}
	return cargo, nil
}

// ToDomain converts the record into a validated settlement
func (s SettlementRecord) ToDomain() (*trading.Settlement, error) {
	settlement := &trading.Settlement{
		Name:                 s.Name,
		Region:               s.Region,
		SizeRank:             s.Size,
		WealthRank:           s.Wealth,
		Population:           s.Population,
		ProductionCategories: append([]string(nil), s.Production...),
		Garrison:             s.Garrison,
		Ruler:                s.Ruler,
		Notes:                s.Notes,
	}
	if err := settlement.Validate(); err != nil {
		return nil, err
	}
	return settlement, nil
}

// DomainCargo converts every cargo record
func (d *Dataset) DomainCargo() ([]*trading.CargoType, error) {
	out := make([]*trading.CargoType, 0, len(d.Cargo))
	for _, rec := range d.Cargo {
		c, err := rec.ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// DomainSettlements converts every settlement record
func (d *Dataset) DomainSettlements() ([]*trading.Settlement, error) {
	out := make([]*trading.Settlement, 0, len(d.Settlements))
	for _, rec := range d.Settlements {
		s, err := rec.ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
