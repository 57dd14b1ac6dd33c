package lending

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InstallmentSchedule splits a cohort's advanced volume into termMonths equal
// repayment installments. Installments are rounded to pennies and the final
// installment absorbs the remainder, so the schedule always sums back to the
// advanced amount exactly.
func InstallmentSchedule(advanced float64, termMonths int) ([]float64, error) {
	if termMonths < 1 {
		return nil, fmt.Errorf("termMonths must be at least 1, got %d", termMonths)
	}
	if advanced < 0 {
		return nil, fmt.Errorf("advanced volume must not be negative, got %v", advanced)
	}

	total := decimal.NewFromFloat(advanced).Round(2)
	installment := total.Div(decimal.NewFromInt(int64(termMonths))).Round(2)

	schedule := make([]float64, termMonths)
	paid := decimal.Zero
	for i := 0; i < termMonths-1; i++ {
		schedule[i], _ = installment.Float64()
		paid = paid.Add(installment)
	}
	schedule[termMonths-1], _ = total.Sub(paid).Float64()

	return schedule, nil
}
