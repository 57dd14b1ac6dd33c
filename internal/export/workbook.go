// Package export serializes computed forecasts into a multi-sheet
// spreadsheet: one sheet per scenario plus Summary, Cashflow, and Parameters
// sheets.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lendforge/lending-forecast/internal/forecast"
	"github.com/xuri/excelize/v2"
)

// RowHeaders is the column order for per-scenario sheets; it matches the
// fields of forecast.Row.
var RowHeaders = []string{
	"Month",
	"Month Label",
	"Lending Volume (£)",
	"Loans Funded",
	"Revenue (£)",
	"Repayment Inflow (£)",
	"Fixed Costs (£)",
	"Variable Costs (£)",
	"Bad Debt Provision (£)",
	"Net Cashflow (£)",
	"Cumulative Profit (£)",
}

var summaryHeaders = []string{
	"Scenario",
	"Months",
	"Total Lending Volume (£)",
	"Total Loans Funded",
	"Total Revenue (£)",
	"Total Repayments (£)",
	"Total Fixed Costs (£)",
	"Total Variable Costs (£)",
	"Total Provision (£)",
	"Total Net Cashflow (£)",
	"Final Cumulative Profit (£)",
	"Revenue per Loan (£)",
	"Net Contribution per Loan (£)",
	"Contribution Margin",
}

// Workbook builds the spreadsheet for the given scenarios. The caller owns
// the returned file and should Close it when done.
func Workbook(results []*forecast.Result) (*excelize.File, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("nothing to export: no scenarios")
	}

	f := excelize.NewFile()

	// Reserve the aggregate sheet names so a scenario called "Summary",
	// "Cashflow", or "Parameters" gets a deduplicated sheet instead of
	// having its rows overwritten later.
	used := map[string]struct{}{
		"Summary":    {},
		"Cashflow":   {},
		"Parameters": {},
	}
	sheetNames := make([]string, len(results))
	for i, result := range results {
		sheetNames[i] = sheetName(result.Name, used)
	}

	for i, result := range results {
		if err := writeScenarioSheet(f, sheetNames[i], result); err != nil {
			closeDiscard(f)
			return nil, err
		}
	}
	if err := writeSummarySheet(f, results); err != nil {
		closeDiscard(f)
		return nil, err
	}
	if err := writeCashflowSheet(f, results); err != nil {
		closeDiscard(f)
		return nil, err
	}
	if err := writeParametersSheet(f, results); err != nil {
		closeDiscard(f)
		return nil, err
	}

	// Drop the default sheet and land on the first scenario.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		closeDiscard(f)
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(sheetNames[0])
	if err == nil {
		f.SetActiveSheet(index)
	}

	return f, nil
}

// Write serializes the workbook for the given scenarios to w.
func Write(w io.Writer, results []*forecast.Result) error {
	f, err := Workbook(results)
	if err != nil {
		return err
	}
	defer closeDiscard(f)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteFile serializes the workbook for the given scenarios to a file at
// path.
func WriteFile(path string, results []*forecast.Result) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := Write(out, results); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func writeScenarioSheet(f *excelize.File, name string, result *forecast.Result) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	header := make([]interface{}, len(RowHeaders))
	for i, h := range RowHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}

	for i, row := range result.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.Month,
			row.Label,
			row.LendingVolume,
			row.LoansFunded,
			row.Revenue,
			row.RepaymentInflow,
			row.FixedCost,
			row.VariableCost,
			row.BadDebtProvision,
			row.NetCashflow,
			row.CumulativeProfit,
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, results []*forecast.Result) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	header := make([]interface{}, len(summaryHeaders))
	for i, h := range summaryHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, result := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			result.Name,
			result.Parameters.HorizonMonths,
			result.Totals.LendingVolume,
			result.Totals.LoansFunded,
			result.Totals.Revenue,
			result.Totals.RepaymentInflow,
			result.Totals.FixedCost,
			result.Totals.VariableCost,
			result.Totals.BadDebtProvision,
			result.Totals.NetCashflow,
			result.Totals.FinalCumulative,
			result.UnitEconomics.RevenuePerLoan,
			result.UnitEconomics.NetContributionPerLoan,
			result.UnitEconomics.ContributionMargin,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func writeCashflowSheet(f *excelize.File, results []*forecast.Result) error {
	const sheet = "Cashflow"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create cashflow sheet: %w", err)
	}

	header := []interface{}{"Month"}
	span := 0
	for _, result := range results {
		header = append(header,
			fmt.Sprintf("Repayment (£) - %s", result.Name),
			fmt.Sprintf("Net Repayment (£) - %s", result.Name),
		)
		if len(result.Projection) > span {
			span = len(result.Projection)
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for m := 1; m <= span; m++ {
		values := []interface{}{m}
		for _, result := range results {
			if m <= len(result.Projection) {
				point := result.Projection[m-1]
				values = append(values, point.Repayment, point.NetRepayment)
			} else {
				values = append(values, nil, nil)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, m+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func writeParametersSheet(f *excelize.File, results []*forecast.Result) error {
	const sheet = "Parameters"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create parameters sheet: %w", err)
	}

	header := []interface{}{"Parameter"}
	for _, result := range results {
		header = append(header, result.Name)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	rows := []struct {
		label string
		value func(*forecast.Result) interface{}
	}{
		{"Starting Volume (£)", func(r *forecast.Result) interface{} { return r.Parameters.StartingVolume }},
		{"Monthly Growth Rate", func(r *forecast.Result) interface{} { return r.Parameters.GrowthRate }},
		{"Min Loan Size (£)", func(r *forecast.Result) interface{} { return r.Parameters.MinLoanSize }},
		{"Max Loan Size (£)", func(r *forecast.Result) interface{} { return r.Parameters.MaxLoanSize }},
		{"Average Loan Size (£)", func(r *forecast.Result) interface{} { return r.Parameters.AvgLoanSize() }},
		{"Loan Term (Months)", func(r *forecast.Result) interface{} { return r.Parameters.LoanTermMonths }},
		{"Fixed Costs (£/Month)", func(r *forecast.Result) interface{} { return r.Parameters.FixedCost }},
		{"Variable Cost Rate", func(r *forecast.Result) interface{} { return r.Parameters.VariableCostRate }},
		{"Default Rate", func(r *forecast.Result) interface{} { return r.Parameters.DefaultRate }},
		{"Recovery Rate", func(r *forecast.Result) interface{} { return r.Parameters.RecoveryRate }},
		{"Forecast Horizon (Months)", func(r *forecast.Result) interface{} { return r.Parameters.HorizonMonths }},
		{"Cost per Funded Loan (£)", func(r *forecast.Result) interface{} { return r.Parameters.CostPerFundedLoan }},
		{"Base Revenue per Loan (£)", func(r *forecast.Result) interface{} { return r.Parameters.BaseRevenuePerLoan }},
		{"Start Month", func(r *forecast.Result) interface{} { return r.Parameters.StartMonth }},
	}

	for i, row := range rows {
		values := []interface{}{row.label}
		for _, result := range results {
			values = append(values, row.value(result))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// sheetName sanitizes a scenario name into a legal, unique sheet name.
func sheetName(name string, used map[string]struct{}) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if cleaned == "" {
		cleaned = "Scenario"
	}
	// Excel's 31-character sheet name limit counts characters, so truncate
	// on rune boundaries to keep multibyte names valid UTF-8.
	runes := []rune(cleaned)
	if len(runes) > 31 {
		runes = runes[:31]
	}

	candidate := string(runes)
	for n := 2; ; n++ {
		if _, taken := used[candidate]; !taken {
			break
		}
		suffix := fmt.Sprintf(" %d", n)
		trimmed := runes
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		candidate = string(trimmed) + suffix
	}
	used[candidate] = struct{}{}
	return candidate
}

func closeDiscard(f *excelize.File) {
	_ = f.Close()
}
