package scenario

import (
	"fmt"

	"github.com/lendforge/lending-forecast/internal/forecast"
)

// Comparison metrics selectable for the per-month table.
const (
	MetricVolume           = "lendingVolume"
	MetricRevenue          = "revenue"
	MetricRepayment        = "repaymentInflow"
	MetricNetCashflow      = "netCashflow"
	MetricCumulativeProfit = "cumulativeProfit"
)

// DefaultMetric is used when a comparison request names no metric.
const DefaultMetric = MetricNetCashflow

// ComparisonRow aligns one metric across all compared scenarios for a single
// month index. Scenarios whose horizon is shorter than the month carry a nil
// value.
type ComparisonRow struct {
	Month  int        `json:"month"`
	Values []*float64 `json:"values"`
}

// Comparison is an aligned side-by-side view of saved scenarios.
type Comparison struct {
	Metric    string          `json:"metric"`
	Scenarios []string        `json:"scenarios"`
	Rows      []ComparisonRow `json:"rows"`
	Summaries []Summary       `json:"summaries"`
}

func metricValue(row forecast.Row, metric string) (float64, error) {
	switch metric {
	case MetricVolume:
		return row.LendingVolume, nil
	case MetricRevenue:
		return row.Revenue, nil
	case MetricRepayment:
		return row.RepaymentInflow, nil
	case MetricNetCashflow:
		return row.NetCashflow, nil
	case MetricCumulativeProfit:
		return row.CumulativeProfit, nil
	}
	return 0, fmt.Errorf("unknown comparison metric %q", metric)
}

// Compare builds the aligned comparison table for all scenarios saved in the
// store. At least two saved scenarios are required for a comparison to be
// meaningful.
func (s *Store) Compare(metric string) (*Comparison, error) {
	if metric == "" {
		metric = DefaultMetric
	}

	results := s.All()
	if len(results) < 2 {
		return nil, fmt.Errorf("comparison requires at least 2 saved scenarios, have %d", len(results))
	}

	maxMonths := 0
	names := make([]string, 0, len(results))
	for _, result := range results {
		names = append(names, result.Name)
		if len(result.Rows) > maxMonths {
			maxMonths = len(result.Rows)
		}
	}

	rows := make([]ComparisonRow, 0, maxMonths)
	for m := 1; m <= maxMonths; m++ {
		row := ComparisonRow{Month: m, Values: make([]*float64, len(results))}
		for i, result := range results {
			if m > len(result.Rows) {
				continue
			}
			value, err := metricValue(result.Rows[m-1], metric)
			if err != nil {
				return nil, err
			}
			row.Values[i] = &value
		}
		rows = append(rows, row)
	}

	return &Comparison{
		Metric:    metric,
		Scenarios: names,
		Rows:      rows,
		Summaries: s.List(),
	}, nil
}
