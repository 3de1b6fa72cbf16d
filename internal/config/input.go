package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rpgo/financial-planner/internal/domain"
	"github.com/rpgo/financial-planner/pkg/money"
)

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile reads a YAML (or JSON) scenario file into a raw document.
// Typed coercion is left to the simulation engine.
func (ip *InputParser) LoadFromFile(filename string) (domain.RawConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("configuration file %s not found: %w", filename, err)
		}
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes a YAML document. An empty document yields an empty map.
func (ip *InputParser) Parse(data []byte) (domain.RawConfig, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.RawConfig{}, nil
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc == nil {
		return domain.RawConfig{}, nil
	}
	m, ok := domain.AsMap(doc)
	if !ok {
		return nil, fmt.Errorf("failed to parse YAML: top level must be a mapping, got %T", doc)
	}
	return domain.RawConfig(m), nil
}

// ValidateConfiguration checks the structure of a raw scenario ahead of a
// load, so a UI can report problems before anything is simulated.
func (ip *InputParser) ValidateConfiguration(raw domain.RawConfig) error {
	m := map[string]any(raw)

	if _, err := domain.RequireInt(m, "", "start_year"); err != nil {
		return err
	}
	if _, err := domain.RequireInt(m, "", "end_year"); err != nil {
		return err
	}

	hh, err := domain.RequireMap(m, "", "household")
	if err != nil {
		return err
	}
	if _, err := domain.RequireDecimal(hh, "household", "living_costs"); err != nil {
		return err
	}
	if _, err := domain.RequireDecimal(hh, "household", "housing_costs"); err != nil {
		return err
	}
	members, err := domain.RequireList(hh, "household", "members")
	if err != nil {
		return err
	}
	if len(members) == 0 {
		return domain.InvalidField("household.members", members, errors.New("at least one member is required"))
	}
	for i, rm := range members {
		if err := validateMember(rm, fmt.Sprintf("household.members[%d]", i)); err != nil {
			return err
		}
	}

	events, err := domain.OptionalList(m, "", "events")
	if err != nil {
		return err
	}
	_, err = domain.ParseEvents(events)
	return err
}

func validateMember(raw any, path string) error {
	mm, ok := domain.AsMap(raw)
	if !ok {
		return domain.InvalidField(path, raw, errors.New("member must be a mapping"))
	}
	name, err := domain.RequireString(mm, path, "name")
	if err != nil {
		return err
	}
	if name == "" {
		return domain.InvalidField(path+".name", name, errors.New("member name is required"))
	}
	income, err := domain.RequireDecimal(mm, path, "income")
	if err != nil {
		return err
	}
	if income.IsNegative() {
		return domain.InvalidField(path+".income", mm["income"], errors.New("cannot be negative"))
	}
	rate, err := domain.RequireDecimal(mm, path, "tax_rate")
	if err != nil {
		return err
	}
	if rate.IsNegative() || rate.GreaterThan(money.One) {
		return domain.InvalidField(path+".tax_rate", mm["tax_rate"], errors.New("must be between 0 and 1"))
	}
	return nil
}

// CreateExampleConfiguration returns a two-earner scenario exercising every
// event type.
func (ip *InputParser) CreateExampleConfiguration() domain.RawConfig {
	return domain.RawConfig{
		"name":           "Example household",
		"start_year":     2025,
		"end_year":       2035,
		"inflation_rate": 0.02,
		"time_frequency": string(domain.FrequencyYear),
		"household": map[string]any{
			"living_costs":  50000.00,
			"housing_costs": 20000.00,
			"members": []any{
				map[string]any{"name": "Jason", "income": 80000.00, "tax_rate": 0.25, "savings": 15000.00},
				map[string]any{"name": "Linda", "income": 60000.00, "tax_rate": 0.20, "savings": 10000.00},
			},
		},
		"events": []any{
			domain.HousePurchase{Year: 2026, Principal: decimal.NewFromInt(300000), InterestRate: decimal.New(4, -2)}.ToRaw(),
			domain.NewChild{Year: 2027}.ToRaw(),
			domain.JobChange{Year: 2028, MemberName: "Jason", NewIncome: decimal.NewFromInt(95000)}.ToRaw(),
			domain.Windfall{Year: 2030, Amount: decimal.NewFromInt(25000)}.ToRaw(),
		},
	}
}

// WriteExampleConfiguration writes the example scenario as YAML.
func (ip *InputParser) WriteExampleConfiguration(filename string) error {
	data, err := yaml.Marshal(map[string]any(ip.CreateExampleConfiguration()))
	if err != nil {
		return fmt.Errorf("failed to encode example configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
