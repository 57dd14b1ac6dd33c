// Package config defines the data structures related to configuration and
// includes functions for loading and resolving scenario parameters.
package config

import (
	"fmt"
	"io"

	"github.com/lendforge/lending-forecast/pkg/constants"
	"github.com/lendforge/lending-forecast/pkg/datetime"
	"github.com/lendforge/lending-forecast/pkg/validation"
	"github.com/spf13/viper"
)

// DateTimeLayout is the format expected for the optional startMonth setting
// and is also the output date format.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for lending-forecast.
type Configuration struct {
	Defaults  ParameterSpec `yaml:"defaults,omitempty"`
	Scenarios []Scenario
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, xlsx
	File   string `yaml:"file,omitempty"`   // destination for xlsx output
}

// Scenario pairs a named scenario with its parameter overrides. Any field
// left unset falls back to the top-level defaults.
type Scenario struct {
	Name       string
	Active     bool
	Parameters ParameterSpec
}

// ParameterSpec is the overlay form of the forecast parameters: nil fields
// inherit from the defaults section, then from the built-in defaults.
type ParameterSpec struct {
	StartingVolume     *float64 `yaml:"startingVolume,omitempty"`
	GrowthRate         *float64 `yaml:"growthRate,omitempty"`
	LoanSize           *float64 `yaml:"loanSize,omitempty"` // shorthand for min = max
	MinLoanSize        *float64 `yaml:"minLoanSize,omitempty"`
	MaxLoanSize        *float64 `yaml:"maxLoanSize,omitempty"`
	LoanTermMonths     *int     `yaml:"loanTermMonths,omitempty"`
	FixedCost          *float64 `yaml:"fixedCost,omitempty"`
	VariableCostRate   *float64 `yaml:"variableCostRate,omitempty"`
	DefaultRate        *float64 `yaml:"defaultRate,omitempty"`
	RecoveryRate       *float64 `yaml:"recoveryRate,omitempty"`
	HorizonMonths      *int     `yaml:"horizonMonths,omitempty"`
	CostPerFundedLoan  *float64 `yaml:"costPerFundedLoan,omitempty"`
	BaseRevenuePerLoan *float64 `yaml:"baseRevenuePerLoan,omitempty"`
	StartMonth         *string  `yaml:"startMonth,omitempty"`
}

// Parameters is the fully resolved, immutable input to the forecast engine.
type Parameters struct {
	StartingVolume     float64 `json:"startingVolume"`
	GrowthRate         float64 `json:"growthRate"`
	MinLoanSize        float64 `json:"minLoanSize"`
	MaxLoanSize        float64 `json:"maxLoanSize"`
	LoanTermMonths     int     `json:"loanTermMonths"`
	FixedCost          float64 `json:"fixedCost"`
	VariableCostRate   float64 `json:"variableCostRate"`
	DefaultRate        float64 `json:"defaultRate"`
	RecoveryRate       float64 `json:"recoveryRate"`
	HorizonMonths      int     `json:"horizonMonths"`
	CostPerFundedLoan  float64 `json:"costPerFundedLoan"`
	BaseRevenuePerLoan float64 `json:"baseRevenuePerLoan"`
	StartMonth         string  `json:"startMonth,omitempty"`
}

// ResolvedScenario is a scenario with its parameters fully resolved.
type ResolvedScenario struct {
	Name       string
	Parameters Parameters
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// in-memory reader, e.g. an uploaded file or request body.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// DefaultParameters returns the built-in parameter defaults, matching the
// tool's reference assumptions.
func DefaultParameters() Parameters {
	return Parameters{
		StartingVolume:     2_000_000,
		GrowthRate:         0,
		MinLoanSize:        constants.BaselineLoanSize,
		MaxLoanSize:        constants.BaselineLoanSize,
		LoanTermMonths:     int(constants.BaselineTermMonths),
		FixedCost:          25_000,
		VariableCostRate:   0.05,
		DefaultRate:        0.2,
		RecoveryRate:       0,
		HorizonMonths:      12,
		CostPerFundedLoan:  40,
		BaseRevenuePerLoan: constants.DefaultBaseRevenuePerLoan,
	}
}

// Resolve applies the spec's set fields on top of base and returns the result.
func (spec ParameterSpec) Resolve(base Parameters) Parameters {
	p := base

	if spec.StartingVolume != nil {
		p.StartingVolume = *spec.StartingVolume
	}
	if spec.GrowthRate != nil {
		p.GrowthRate = *spec.GrowthRate
	}
	if spec.LoanSize != nil {
		p.MinLoanSize = *spec.LoanSize
		p.MaxLoanSize = *spec.LoanSize
	}
	if spec.MinLoanSize != nil {
		p.MinLoanSize = *spec.MinLoanSize
	}
	if spec.MaxLoanSize != nil {
		p.MaxLoanSize = *spec.MaxLoanSize
	}
	if spec.LoanTermMonths != nil {
		p.LoanTermMonths = *spec.LoanTermMonths
	}
	if spec.FixedCost != nil {
		p.FixedCost = *spec.FixedCost
	}
	if spec.VariableCostRate != nil {
		p.VariableCostRate = *spec.VariableCostRate
	}
	if spec.DefaultRate != nil {
		p.DefaultRate = *spec.DefaultRate
	}
	if spec.RecoveryRate != nil {
		p.RecoveryRate = *spec.RecoveryRate
	}
	if spec.HorizonMonths != nil {
		p.HorizonMonths = *spec.HorizonMonths
	}
	if spec.CostPerFundedLoan != nil {
		p.CostPerFundedLoan = *spec.CostPerFundedLoan
	}
	if spec.BaseRevenuePerLoan != nil {
		p.BaseRevenuePerLoan = *spec.BaseRevenuePerLoan
	}
	if spec.StartMonth != nil {
		p.StartMonth = *spec.StartMonth
	}

	return p
}

// AvgLoanSize returns the midpoint of the configured loan size range.
func (p Parameters) AvgLoanSize() float64 {
	return (p.MinLoanSize + p.MaxLoanSize) / 2
}

// Validate checks every parameter domain. It returns the first violation
// found; computation must not be attempted on an invalid parameter set.
func (p Parameters) Validate() error {
	if err := validation.ValidatePositiveAmount("startingVolume", p.StartingVolume); err != nil {
		return err
	}
	if err := validation.ValidateGrowthRate(p.GrowthRate); err != nil {
		return err
	}
	if err := validation.ValidateLoanSizes(p.MinLoanSize, p.MaxLoanSize); err != nil {
		return err
	}
	if err := validation.ValidateTerm(p.LoanTermMonths); err != nil {
		return err
	}
	if err := validation.ValidateNonNegativeAmount("fixedCost", p.FixedCost); err != nil {
		return err
	}
	if err := validation.ValidateRate("variableCostRate", p.VariableCostRate); err != nil {
		return err
	}
	if err := validation.ValidateRate("defaultRate", p.DefaultRate); err != nil {
		return err
	}
	if err := validation.ValidateRate("recoveryRate", p.RecoveryRate); err != nil {
		return err
	}
	if err := validation.ValidateHorizon(p.HorizonMonths); err != nil {
		return err
	}
	if err := validation.ValidateNonNegativeAmount("costPerFundedLoan", p.CostPerFundedLoan); err != nil {
		return err
	}
	if err := validation.ValidateNonNegativeAmount("baseRevenuePerLoan", p.BaseRevenuePerLoan); err != nil {
		return err
	}
	if p.StartMonth != "" && !datetime.ValidMonth(p.StartMonth) {
		return fmt.Errorf("startMonth %q is not in %s format", p.StartMonth, DateTimeLayout)
	}
	return nil
}

// Warnings returns advisory warnings for this parameter set.
func (p Parameters) Warnings() []string {
	return validation.BusinessWarnings(p.DefaultRate, p.CostPerFundedLoan, p.BaseRevenuePerLoan)
}

// ResolvedScenarios resolves and validates all active scenarios. A
// configuration with no scenarios yields a single "Default" scenario built
// from the defaults section.
func (c *Configuration) ResolvedScenarios() ([]ResolvedScenario, error) {
	base := c.Defaults.Resolve(DefaultParameters())

	if len(c.Scenarios) == 0 {
		if err := base.Validate(); err != nil {
			return nil, fmt.Errorf("invalid defaults: %w", err)
		}
		return []ResolvedScenario{{Name: "Default", Parameters: base}}, nil
	}

	var resolved []ResolvedScenario
	for _, scenario := range c.Scenarios {
		if !scenario.Active {
			continue
		}
		if err := validation.ValidateScenarioName(scenario.Name); err != nil {
			return nil, err
		}
		params := scenario.Parameters.Resolve(base)
		if err := params.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		resolved = append(resolved, ResolvedScenario{Name: scenario.Name, Parameters: params})
	}

	if len(resolved) == 0 {
		return nil, fmt.Errorf("no active scenarios in configuration")
	}
	return resolved, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Hard errors are reported by ResolvedScenarios.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	seen := make(map[string]struct{})
	base := c.Defaults.Resolve(DefaultParameters())

	for _, scenario := range c.Scenarios {
		if _, dup := seen[scenario.Name]; dup {
			warnings = append(warnings, fmt.Sprintf("duplicate scenario name %q - later definition wins", scenario.Name))
		}
		seen[scenario.Name] = struct{}{}

		if !scenario.Active {
			continue
		}
		params := scenario.Parameters.Resolve(base)
		for _, warning := range params.Warnings() {
			warnings = append(warnings, fmt.Sprintf("scenario %q: %s", scenario.Name, warning))
		}
	}

	if len(c.Scenarios) == 0 {
		for _, warning := range base.Warnings() {
			warnings = append(warnings, fmt.Sprintf("defaults: %s", warning))
		}
	}

	return warnings
}
