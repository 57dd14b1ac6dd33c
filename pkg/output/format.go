// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"fmt"
	"strings"

	"github.com/lendforge/lending-forecast/internal/forecast"
	"github.com/lendforge/lending-forecast/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []forecast.Result) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		fmt.Printf("--- Results for scenario %s ---\n", result.Name)
		fmt.Printf("Month | Volume          | Revenue         | Repayments      | Net Cashflow    | Cumulative\n")
		fmt.Printf("_____ | ______          | _______         | __________      | ____________    | __________\n")
		for _, row := range result.Rows {
			label := fmt.Sprintf("%5d", row.Month)
			if row.Label != "" {
				label = fmt.Sprintf("%5s", row.Label)
			}
			_, _ = p.Printf("%s | £%14.2f | £%14.2f | £%14.2f | £%14.2f | £%14.2f\n",
				label, row.LendingVolume, row.Revenue, row.RepaymentInflow, row.NetCashflow, row.CumulativeProfit)
		}
		_, _ = p.Printf("TOTAL | £%14.2f | £%14.2f | £%14.2f | £%14.2f | £%14.2f\n",
			result.Totals.LendingVolume, result.Totals.Revenue, result.Totals.RepaymentInflow,
			result.Totals.NetCashflow, result.Totals.FinalCumulative)

		ue := result.UnitEconomics
		fmt.Printf("Per-loan economics: revenue %s, funding cost %s, bad debt %s, net contribution %s (margin %s)\n",
			format.Currency(ue.RevenuePerLoan),
			format.Currency(ue.CostPerFundedLoan),
			format.Currency(ue.BadDebtPerLoan),
			format.Currency(ue.NetContributionPerLoan),
			format.Percent(ue.ContributionMargin),
		)
		if i < len(results)-1 {
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []forecast.Result) {
	fmt.Print(CsvString(results))
}

// CsvString renders the results as a CSV document with one column group per
// scenario, aligned by month index.
func CsvString(results []forecast.Result) string {
	var b strings.Builder

	maxMonths := 0
	for _, result := range results {
		if len(result.Rows) > maxMonths {
			maxMonths = len(result.Rows)
		}
	}

	b.WriteString(`"month"`)
	for _, result := range results {
		// Quotes inside scenario names must be doubled to stay valid CSV.
		name := strings.ReplaceAll(result.Name, `"`, `""`)
		for _, column := range []string{"volume", "loans", "revenue", "repayments", "fixed", "variable", "provision", "net", "cumulative"} {
			fmt.Fprintf(&b, `,"%s (%s)"`, column, name)
		}
	}
	b.WriteString("\n")

	for m := 1; m <= maxMonths; m++ {
		fmt.Fprintf(&b, `"%d"`, m)
		for _, result := range results {
			if m > len(result.Rows) {
				b.WriteString(strings.Repeat(`,""`, 9))
				continue
			}
			row := result.Rows[m-1]
			fmt.Fprintf(&b, `,"%.2f","%d","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f"`,
				row.LendingVolume, row.LoansFunded, row.Revenue, row.RepaymentInflow,
				row.FixedCost, row.VariableCost, row.BadDebtProvision, row.NetCashflow, row.CumulativeProfit)
		}
		b.WriteString("\n")
	}

	return b.String()
}
