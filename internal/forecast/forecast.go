// Package forecast defines the data structures related to a given forecast and
// includes functions for computing the forecasts.
package forecast

import (
	"fmt"

	"github.com/lendforge/lending-forecast/internal/config"
	"github.com/lendforge/lending-forecast/pkg/datetime"
	"github.com/lendforge/lending-forecast/pkg/lending"
	"github.com/lendforge/lending-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// Row holds the computed figures for one forecast month. Months are
// 1-indexed; no month-zero row is emitted.
type Row struct {
	Month            int     `json:"month"`
	Label            string  `json:"label,omitempty"`
	LendingVolume    float64 `json:"lendingVolume"`
	LoansFunded      int     `json:"loansFunded"`
	Revenue          float64 `json:"revenue"`
	RepaymentInflow  float64 `json:"repaymentInflow"`
	FixedCost        float64 `json:"fixedCost"`
	VariableCost     float64 `json:"variableCost"`
	BadDebtProvision float64 `json:"badDebtProvision"`
	NetCashflow      float64 `json:"netCashflow"`
	CumulativeProfit float64 `json:"cumulativeProfit"`
}

// CashflowPoint is one month of the repayment-based cashflow projection,
// which extends past the horizon to cover the amortization tail of the final
// cohorts.
type CashflowPoint struct {
	Month        int     `json:"month"`
	Repayment    float64 `json:"repayment"`
	NetRepayment float64 `json:"netRepayment"`
}

// Totals aggregates a scenario's rows.
type Totals struct {
	LendingVolume    float64 `json:"lendingVolume"`
	LoansFunded      int     `json:"loansFunded"`
	Revenue          float64 `json:"revenue"`
	RepaymentInflow  float64 `json:"repaymentInflow"`
	FixedCost        float64 `json:"fixedCost"`
	VariableCost     float64 `json:"variableCost"`
	BadDebtProvision float64 `json:"badDebtProvision"`
	NetCashflow      float64 `json:"netCashflow"`
	FinalCumulative  float64 `json:"finalCumulativeProfit"`
}

// Result holds all information related to a specific forecast.
type Result struct {
	Name          string                `json:"name"`
	Parameters    config.Parameters     `json:"parameters"`
	Rows          []Row                 `json:"rows"`
	Totals        Totals                `json:"totals"`
	UnitEconomics lending.UnitEconomics `json:"unitEconomics"`
	Projection    []CashflowPoint       `json:"projection"`
}

// Compute produces the forecast for one validated parameter set. Parameters
// are validated before any computation; on validation failure no partial
// result is returned.
func Compute(logger *zap.Logger, name string, params config.Parameters) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	horizon := params.HorizonMonths
	term := params.LoanTermMonths
	avgLoanSize := params.AvgLoanSize()
	scaling := lending.ScalingFactor(avgLoanSize, term)
	provisionRate := params.DefaultRate * (1 - params.RecoveryRate)

	// Repayments and spread outflows land in months after the advance, so
	// the schedule arrays run past the horizon by one full term.
	span := horizon + term
	repayments := make([]float64, span+1)
	outflowSpread := make([]float64, span+1)

	volumes := make([]float64, horizon+1)
	volume := params.StartingVolume
	for m := 1; m <= horizon; m++ {
		volume *= 1 + params.GrowthRate
		volumes[m] = volume

		schedule, err := lending.InstallmentSchedule(volume, term)
		if err != nil {
			return nil, err
		}
		for i, installment := range schedule {
			repayments[m+1+i] += installment
		}

		outflow := params.FixedCost + volume*params.VariableCostRate + volume*provisionRate
		perMonth := outflow / float64(term)
		for i := 0; i < term; i++ {
			outflowSpread[m+1+i] += perMonth
		}
	}

	rows := make([]Row, 0, horizon)
	var totals Totals
	cumulative := 0.0
	for m := 1; m <= horizon; m++ {
		v := volumes[m]
		revenue := v * scaling
		variableCost := v * params.VariableCostRate
		provision := v * provisionRate
		net := revenue + repayments[m] - params.FixedCost - variableCost - provision
		cumulative += net

		row := Row{
			Month:            m,
			LendingVolume:    mathutil.Round(v),
			LoansFunded:      int(v / avgLoanSize),
			Revenue:          mathutil.Round(revenue),
			RepaymentInflow:  mathutil.Round(repayments[m]),
			FixedCost:        mathutil.Round(params.FixedCost),
			VariableCost:     mathutil.Round(variableCost),
			BadDebtProvision: mathutil.Round(provision),
			NetCashflow:      mathutil.Round(net),
			CumulativeProfit: mathutil.Round(cumulative),
		}

		if params.StartMonth != "" {
			label, err := datetime.OffsetDate(params.StartMonth, config.DateTimeLayout, m-1)
			if err != nil {
				return nil, fmt.Errorf("failed to label month %d: %w", m, err)
			}
			row.Label = label
		}

		totals.LendingVolume += row.LendingVolume
		totals.LoansFunded += row.LoansFunded
		totals.Revenue += row.Revenue
		totals.RepaymentInflow += row.RepaymentInflow
		totals.FixedCost += row.FixedCost
		totals.VariableCost += row.VariableCost
		totals.BadDebtProvision += row.BadDebtProvision
		totals.NetCashflow += row.NetCashflow

		rows = append(rows, row)
	}

	totals.LendingVolume = mathutil.Round(totals.LendingVolume)
	totals.Revenue = mathutil.Round(totals.Revenue)
	totals.RepaymentInflow = mathutil.Round(totals.RepaymentInflow)
	totals.FixedCost = mathutil.Round(totals.FixedCost)
	totals.VariableCost = mathutil.Round(totals.VariableCost)
	totals.BadDebtProvision = mathutil.Round(totals.BadDebtProvision)
	totals.NetCashflow = mathutil.Round(totals.NetCashflow)
	if len(rows) > 0 {
		totals.FinalCumulative = rows[len(rows)-1].CumulativeProfit
	}

	projection := make([]CashflowPoint, 0, span)
	for m := 1; m <= span; m++ {
		projection = append(projection, CashflowPoint{
			Month:        m,
			Repayment:    mathutil.Round(repayments[m]),
			NetRepayment: mathutil.Round(repayments[m] - outflowSpread[m]),
		})
	}

	logger.Debug("forecast computed",
		zap.String("op", "forecast.Compute"),
		zap.String("scenario", name),
		zap.Int("months", horizon),
		zap.Float64("finalCumulativeProfit", totals.FinalCumulative),
	)

	return &Result{
		Name:       name,
		Parameters: params,
		Rows:       rows,
		Totals:     totals,
		UnitEconomics: lending.ComputeUnitEconomics(
			avgLoanSize,
			params.BaseRevenuePerLoan,
			params.CostPerFundedLoan,
			params.DefaultRate,
			params.RecoveryRate,
			term,
		),
		Projection: projection,
	}, nil
}

// GetForecast processes the forecasts for all active scenarios in the
// configuration.
func GetForecast(logger *zap.Logger, conf config.Configuration) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	scenarios, err := conf.ResolvedScenarios()
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(scenarios))
	for _, scenario := range scenarios {
		result, err := Compute(logger, scenario.Name, scenario.Parameters)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		results = append(results, *result)
	}

	return results, nil
}
