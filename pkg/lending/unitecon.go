// Package lending provides per-loan unit economics and straight-line
// amortization utilities for the forecast engine.
package lending

import (
	"github.com/lendforge/lending-forecast/pkg/constants"
	"github.com/lendforge/lending-forecast/pkg/mathutil"
)

// UnitEconomics describes the economics of a single average loan.
type UnitEconomics struct {
	AvgLoanSize            float64 `json:"avgLoanSize"`
	RevenuePerLoan         float64 `json:"revenuePerLoan"`
	CostPerFundedLoan      float64 `json:"costPerFundedLoan"`
	BadDebtPerLoan         float64 `json:"badDebtPerLoan"`
	NetContributionPerLoan float64 `json:"netContributionPerLoan"`
	ContributionMargin     float64 `json:"contributionMargin"`
}

// ScalingFactor returns the revenue multiplier for a loan relative to the
// £300/3-month baseline, as the product of the size and term ratios.
func ScalingFactor(avgLoanSize float64, termMonths int) float64 {
	return (avgLoanSize / constants.BaselineLoanSize) * (float64(termMonths) / constants.BaselineTermMonths)
}

// ComputeUnitEconomics derives the per-loan figures for an average loan.
// baseRevenuePerLoan is the revenue on one baseline loan; it scales with the
// loan's size and term.
func ComputeUnitEconomics(avgLoanSize, baseRevenuePerLoan, costPerFundedLoan, defaultRate, recoveryRate float64, termMonths int) UnitEconomics {
	revenuePerLoan := baseRevenuePerLoan * ScalingFactor(avgLoanSize, termMonths)
	badDebtPerLoan := avgLoanSize * defaultRate * (1 - recoveryRate)
	netContribution := revenuePerLoan - costPerFundedLoan - badDebtPerLoan

	margin := 0.0
	if revenuePerLoan > 0 {
		margin = netContribution / revenuePerLoan
	}

	return UnitEconomics{
		AvgLoanSize:            avgLoanSize,
		RevenuePerLoan:         mathutil.Round(revenuePerLoan),
		CostPerFundedLoan:      mathutil.Round(costPerFundedLoan),
		BadDebtPerLoan:         mathutil.Round(badDebtPerLoan),
		NetContributionPerLoan: mathutil.Round(netContribution),
		ContributionMargin:     margin,
	}
}
