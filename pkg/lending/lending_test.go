package lending

import (
	"math"
	"testing"

	"github.com/lendforge/lending-forecast/pkg/mathutil"
)

func TestScalingFactor(t *testing.T) {
	tests := []struct {
		name        string
		avgLoanSize float64
		termMonths  int
		expected    float64
	}{
		{
			name:        "Baseline loan",
			avgLoanSize: 300,
			termMonths:  3,
			expected:    1.0,
		},
		{
			name:        "Double size and term",
			avgLoanSize: 600,
			termMonths:  6,
			expected:    4.0,
		},
		{
			name:        "Smaller short loan",
			avgLoanSize: 150,
			termMonths:  1,
			expected:    1.0 / 6.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScalingFactor(tt.avgLoanSize, tt.termMonths)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("ScalingFactor(%v, %d) = %v, expected %v", tt.avgLoanSize, tt.termMonths, got, tt.expected)
			}
		})
	}
}

func TestComputeUnitEconomics(t *testing.T) {
	// £900 average loan over 3 months: size factor 3, term factor 1.
	ue := ComputeUnitEconomics(900, 150, 40, 0.2, 0.25, 3)

	if ue.RevenuePerLoan != 450.00 {
		t.Errorf("RevenuePerLoan = %v, expected 450.00", ue.RevenuePerLoan)
	}
	if ue.BadDebtPerLoan != 135.00 {
		t.Errorf("BadDebtPerLoan = %v, expected 135.00", ue.BadDebtPerLoan)
	}
	if ue.NetContributionPerLoan != 275.00 {
		t.Errorf("NetContributionPerLoan = %v, expected 275.00", ue.NetContributionPerLoan)
	}
	expectedMargin := 275.0 / 450.0
	if math.Abs(ue.ContributionMargin-expectedMargin) > 1e-9 {
		t.Errorf("ContributionMargin = %v, expected %v", ue.ContributionMargin, expectedMargin)
	}
}

func TestComputeUnitEconomicsZeroRevenue(t *testing.T) {
	ue := ComputeUnitEconomics(300, 0, 40, 0.1, 0, 3)
	if ue.ContributionMargin != 0 {
		t.Errorf("margin should be 0 when revenue per loan is 0, got %v", ue.ContributionMargin)
	}
}

func TestInstallmentScheduleConservation(t *testing.T) {
	tests := []struct {
		name       string
		advanced   float64
		termMonths int
	}{
		{
			name:       "Even split",
			advanced:   90000,
			termMonths: 3,
		},
		{
			name:       "Indivisible amount",
			advanced:   100000,
			termMonths: 3,
		},
		{
			name:       "Single installment",
			advanced:   2500.75,
			termMonths: 1,
		},
		{
			name:       "Long term with pennies",
			advanced:   123456.78,
			termMonths: 12,
		},
		{
			name:       "Zero volume",
			advanced:   0,
			termMonths: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := InstallmentSchedule(tt.advanced, tt.termMonths)
			if err != nil {
				t.Fatalf("InstallmentSchedule() error = %v", err)
			}
			if len(schedule) != tt.termMonths {
				t.Fatalf("schedule length = %d, expected %d", len(schedule), tt.termMonths)
			}

			sum := 0.0
			for _, installment := range schedule {
				sum += installment
			}
			if !mathutil.WithinTolerance(sum, mathutil.Round(tt.advanced), 1e-9) {
				t.Errorf("installments sum to %v, expected %v", sum, tt.advanced)
			}
		})
	}
}

func TestInstallmentScheduleInvalid(t *testing.T) {
	if _, err := InstallmentSchedule(1000, 0); err == nil {
		t.Error("zero term should fail")
	}
	if _, err := InstallmentSchedule(-1, 3); err == nil {
		t.Error("negative volume should fail")
	}
}
