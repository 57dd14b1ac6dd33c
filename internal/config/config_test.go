package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func float(v float64) *float64 { return &v }
func integer(v int) *int       { return &v }

func TestLoadConfiguration(t *testing.T) {
	content := `
logging:
  level: debug
  format: console
output:
  format: csv
defaults:
  startingVolume: 100000
  growthRate: 0.02
  loanSize: 300
  loanTermMonths: 3
  fixedCost: 5000
  variableCostRate: 0.01
  defaultRate: 0.05
  recoveryRate: 0.2
  horizonMonths: 3
scenarios:
  - name: Base
    active: true
  - name: Aggressive Growth
    active: true
    parameters:
      growthRate: 0.1
  - name: Shelved
    active: false
`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, expected debug", conf.Logging.Level)
	}
	if conf.Output.Format != "csv" {
		t.Errorf("Output.Format = %s, expected csv", conf.Output.Format)
	}
	if len(conf.Scenarios) != 3 {
		t.Fatalf("expected 3 scenarios, got %d", len(conf.Scenarios))
	}

	resolved, err := conf.ResolvedScenarios()
	if err != nil {
		t.Fatalf("ResolvedScenarios() error = %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("expected 2 active scenarios, got %d", len(resolved))
	}

	base := resolved[0].Parameters
	if base.StartingVolume != 100000 {
		t.Errorf("StartingVolume = %v, expected 100000", base.StartingVolume)
	}
	if base.GrowthRate != 0.02 {
		t.Errorf("GrowthRate = %v, expected 0.02", base.GrowthRate)
	}
	if base.AvgLoanSize() != 300 {
		t.Errorf("AvgLoanSize() = %v, expected 300 via loanSize shorthand", base.AvgLoanSize())
	}

	aggressive := resolved[1].Parameters
	if aggressive.GrowthRate != 0.1 {
		t.Errorf("override GrowthRate = %v, expected 0.1", aggressive.GrowthRate)
	}
	if aggressive.StartingVolume != 100000 {
		t.Errorf("inherited StartingVolume = %v, expected 100000", aggressive.StartingVolume)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	content := `
defaults:
  startingVolume: 50000
scenarios:
  - name: Only
    active: true
`
	conf, err := LoadConfigurationFromReader(strings.NewReader(content))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	resolved, err := conf.ResolvedScenarios()
	if err != nil {
		t.Fatalf("ResolvedScenarios() error = %v", err)
	}
	if resolved[0].Parameters.StartingVolume != 50000 {
		t.Errorf("StartingVolume = %v, expected 50000", resolved[0].Parameters.StartingVolume)
	}
	// Unset fields fall through to the built-in defaults.
	if resolved[0].Parameters.FixedCost != 25000 {
		t.Errorf("FixedCost = %v, expected built-in default 25000", resolved[0].Parameters.FixedCost)
	}
}

func TestResolveOverlayPrecedence(t *testing.T) {
	base := DefaultParameters()
	spec := ParameterSpec{
		LoanSize:    float(500),
		MaxLoanSize: float(1500),
	}
	p := spec.Resolve(base)
	// Explicit min/max beats the loanSize shorthand.
	if p.MinLoanSize != 500 || p.MaxLoanSize != 1500 {
		t.Errorf("loan sizes = %v/%v, expected 500/1500", p.MinLoanSize, p.MaxLoanSize)
	}
	if p.AvgLoanSize() != 1000 {
		t.Errorf("AvgLoanSize() = %v, expected 1000", p.AvgLoanSize())
	}
}

func TestParametersValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Parameters)
		wantErr string
	}{
		{
			name:    "Defaults are valid",
			mutate:  func(p *Parameters) {},
			wantErr: "",
		},
		{
			name:    "Zero starting volume",
			mutate:  func(p *Parameters) { p.StartingVolume = 0 },
			wantErr: "startingVolume",
		},
		{
			name:    "Default rate above one",
			mutate:  func(p *Parameters) { p.DefaultRate = 1.2 },
			wantErr: "defaultRate",
		},
		{
			name:    "Recovery rate negative",
			mutate:  func(p *Parameters) { p.RecoveryRate = -0.1 },
			wantErr: "recoveryRate",
		},
		{
			name:    "Zero horizon",
			mutate:  func(p *Parameters) { p.HorizonMonths = 0 },
			wantErr: "horizonMonths",
		},
		{
			name:    "Zero term",
			mutate:  func(p *Parameters) { p.LoanTermMonths = 0 },
			wantErr: "loanTermMonths",
		},
		{
			name:    "Max loan below min",
			mutate:  func(p *Parameters) { p.MinLoanSize = 1500; p.MaxLoanSize = 300 },
			wantErr: "maxLoanSize",
		},
		{
			name:    "Bad start month",
			mutate:  func(p *Parameters) { p.StartMonth = "Aug 2026" },
			wantErr: "startMonth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, expected to mention %s", err, tt.wantErr)
			}
		})
	}
}

func TestResolvedScenariosErrors(t *testing.T) {
	conf := &Configuration{
		Scenarios: []Scenario{
			{Name: "Broken", Active: true, Parameters: ParameterSpec{HorizonMonths: integer(0)}},
		},
	}
	if _, err := conf.ResolvedScenarios(); err == nil {
		t.Error("expected error for invalid scenario parameters")
	}

	conf = &Configuration{
		Scenarios: []Scenario{{Name: "Inactive", Active: false}},
	}
	if _, err := conf.ResolvedScenarios(); err == nil {
		t.Error("expected error when no scenarios are active")
	}

	conf = &Configuration{
		Scenarios: []Scenario{{Name: "", Active: true}},
	}
	if _, err := conf.ResolvedScenarios(); err == nil {
		t.Error("expected error for empty scenario name")
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	conf := &Configuration{
		Scenarios: []Scenario{
			{Name: "A", Active: true, Parameters: ParameterSpec{DefaultRate: float(0.6)}},
			{Name: "A", Active: true},
		},
	}

	warnings := conf.ValidateConfiguration()
	var sawDuplicate, sawBadDebt bool
	for _, warning := range warnings {
		if strings.Contains(warning, "duplicate scenario name") {
			sawDuplicate = true
		}
		if strings.Contains(warning, "bad debt rate") {
			sawBadDebt = true
		}
	}
	if !sawDuplicate {
		t.Errorf("expected duplicate name warning, got %v", warnings)
	}
	if !sawBadDebt {
		t.Errorf("expected bad debt warning, got %v", warnings)
	}
}
