// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/lendforge/lending-forecast/pkg/constants"
)

// ValidateRate checks that a fractional rate lies in [0, 1].
func ValidateRate(name string, rate float64) error {
	if rate < 0 || rate > 1 {
		return fmt.Errorf("%s must be between 0 and 1, got %v", name, rate)
	}
	return nil
}

// ValidateGrowthRate checks that a monthly growth rate lies in [-1, 1].
// A floor of -1 keeps lending volume non-negative under compounding.
func ValidateGrowthRate(rate float64) error {
	if rate < -1 || rate > 1 {
		return fmt.Errorf("growthRate must be between -1 and 1, got %v", rate)
	}
	return nil
}

// ValidatePositiveAmount checks that a currency amount is strictly positive.
func ValidatePositiveAmount(name string, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%s must be positive, got %v", name, amount)
	}
	return nil
}

// ValidateNonNegativeAmount checks that a currency amount is not negative.
func ValidateNonNegativeAmount(name string, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("%s must not be negative, got %v", name, amount)
	}
	return nil
}

// ValidateTerm checks that a loan term is a positive month count.
func ValidateTerm(termMonths int) error {
	if termMonths < 1 {
		return fmt.Errorf("loanTermMonths must be at least 1, got %d", termMonths)
	}
	return nil
}

// ValidateHorizon checks that a forecast horizon is positive and within the cap.
func ValidateHorizon(horizonMonths int) error {
	if horizonMonths < 1 {
		return fmt.Errorf("horizonMonths must be at least 1, got %d", horizonMonths)
	}
	if horizonMonths > constants.MaxHorizonMonths {
		return fmt.Errorf("horizonMonths must not exceed %d, got %d",
			constants.MaxHorizonMonths, horizonMonths)
	}
	return nil
}

// ValidateLoanSizes checks the min/max loan amount pair.
func ValidateLoanSizes(minSize, maxSize float64) error {
	if minSize <= 0 {
		return fmt.Errorf("minLoanSize must be positive, got %v", minSize)
	}
	if maxSize < minSize {
		return fmt.Errorf("maxLoanSize (%v) must not be less than minLoanSize (%v)", maxSize, minSize)
	}
	return nil
}

// ValidateScenarioName checks a user-supplied scenario name before a save.
func ValidateScenarioName(name string) error {
	if name == "" {
		return fmt.Errorf("scenario name must not be empty")
	}
	return nil
}

// BusinessWarnings returns advisory warnings for parameter combinations that
// are valid but usually indicate a mistake.
func BusinessWarnings(badDebtRate, costPerFundedLoan, baseRevenuePerLoan float64) []string {
	var warnings []string

	if badDebtRate > constants.BadDebtWarningRate {
		warnings = append(warnings, fmt.Sprintf(
			"bad debt rate %.0f%% is above %.0f%% - please verify",
			badDebtRate*constants.PercentageMultiplier,
			constants.BadDebtWarningRate*constants.PercentageMultiplier))
	}

	if baseRevenuePerLoan > 0 && costPerFundedLoan > baseRevenuePerLoan*constants.FundingCostWarningShare {
		warnings = append(warnings, fmt.Sprintf(
			"cost per funded loan (%.2f) exceeds %.0f%% of base revenue per loan (%.2f) - check unit economics",
			costPerFundedLoan,
			constants.FundingCostWarningShare*constants.PercentageMultiplier,
			baseRevenuePerLoan))
	}

	return warnings
}
