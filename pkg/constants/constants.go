// Package constants provides shared constants for the lending-forecast application.
package constants

// DateTimeLayout is the format used for optional calendar month labels in
// config files and output.
const DateTimeLayout = "2006-01"

// Baseline loan used for revenue scaling. Revenue assumptions are quoted
// against a £300 loan repaid over 3 months.
const (
	// BaselineLoanSize is the reference loan amount in pounds
	BaselineLoanSize = 300.0

	// BaselineTermMonths is the reference loan term in months
	BaselineTermMonths = 3.0

	// DefaultBaseRevenuePerLoan is the revenue earned on one baseline loan
	DefaultBaseRevenuePerLoan = 150.0
)

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 penny)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxHorizonMonths caps the forecast horizon (50 years)
	MaxHorizonMonths = 600
)

// Business-rule warning thresholds
const (
	// BadDebtWarningRate is the default rate above which configs get flagged
	BadDebtWarningRate = 0.5

	// FundingCostWarningShare flags cost per funded loan above this share of
	// base revenue
	FundingCostWarningShare = 0.5
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatXLSX is the spreadsheet output format
	OutputFormatXLSX = "xlsx"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024

	// SessionCookieName carries the per-session scenario store identifier
	SessionCookieName = "lf_session"

	// DefaultSessionTTL is how long an idle session's scenarios are retained
	DefaultSessionTTL = "4h"
)
