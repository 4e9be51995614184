package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rpgo/portfolio-simulator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.ScenarioFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates scenario file contents.
func (ip *InputParser) Parse(data []byte) (*domain.ScenarioFile, error) {
	var sf domain.ScenarioFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&sf); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &sf, nil
}

// ValidateConfiguration normalises the mode and checks the parameters.
func (ip *InputParser) ValidateConfiguration(sf *domain.ScenarioFile) error {
	if sf == nil {
		return fmt.Errorf("%w: no scenario provided", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(sf.Name) == "" {
		return fmt.Errorf("%w: scenario name is required", domain.ErrInvalidInput)
	}

	mode, err := domain.ParseMode(string(sf.Mode))
	if err != nil {
		return err
	}
	sf.Mode = mode

	if err := sf.Params.WithDefaults().Validate(); err != nil {
		return fmt.Errorf("params: %w", err)
	}
	for _, m := range sf.Sensitivity {
		if m <= -1 {
			return fmt.Errorf("%w: sensitivity multiplier %v must be greater than -1", domain.ErrInvalidInput, m)
		}
	}
	return nil
}

// Marshal renders a scenario file as YAML.
func (ip *InputParser) Marshal(sf *domain.ScenarioFile) ([]byte, error) {
	data, err := yaml.Marshal(sf)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scenario: %w", err)
	}
	return data, nil
}

// SaveToFile writes a scenario file as YAML.
func (ip *InputParser) SaveToFile(sf *domain.ScenarioFile, filename string) error {
	data, err := ip.Marshal(sf)
	if err != nil {
		return fmt.Errorf("failed to save scenario %s: %w", filename, err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to save scenario %s: %w", filename, err)
	}
	return nil
}

// CreateExampleConfiguration creates an example scenario
func (ip *InputParser) CreateExampleConfiguration() *domain.ScenarioFile {
	basis := decimal.NewFromInt(350000)
	goal := decimal.NewFromInt(1500000)

	return &domain.ScenarioFile{
		Name:        "Mid-career brokerage account",
		Description: "Monthly contributions into a taxable account until retirement",
		Mode:        domain.ModeGrowth,
		Seed:        "20240601",
		Params: domain.SimulationParams{
			InitialValue:      decimal.NewFromInt(500000),
			StartingCostBasis: &basis,
			ExpectedReturn:    decimal.NewFromFloat(0.065),
			Volatility:        decimal.NewFromFloat(0.15),
			DurationYears:     20,
			CashFlow:          decimal.NewFromInt(1500),
			CashFlowFrequency: domain.Monthly,
			InflationRate:     decimal.NewFromFloat(0.025),
			NumPaths:          5000,
			Goal:              &goal,
			Tax: domain.TaxConfig{
				Enabled: true,
				Rate:    decimal.NewFromFloat(0.15),
				Type:    domain.TaxCapitalGains,
			},
			RateMode:     domain.RateEffective,
			StepsPerYear: 12,
		},
		Sensitivity: domain.DefaultSensitivityMultipliers,
	}
}
