package format

import (
	"testing"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{
			name:     "Small amount",
			amount:   42.5,
			expected: "£42.50",
		},
		{
			name:     "Thousands separator",
			amount:   1234567.891,
			expected: "£1,234,567.89",
		},
		{
			name:     "Negative",
			amount:   -1234.56,
			expected: "-£1,234.56",
		},
		{
			name:     "Zero",
			amount:   0,
			expected: "£0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %s, expected %s", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	if got := NumericCurrency(-2000000); got != "-2,000,000.00" {
		t.Errorf("NumericCurrency(-2000000) = %s", got)
	}
	if got := NumericCurrency(999.999); got != "1,000.00" {
		t.Errorf("NumericCurrency(999.999) = %s", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(0.125); got != "12.5%" {
		t.Errorf("Percent(0.125) = %s", got)
	}
	if got := Percent(0); got != "0.0%" {
		t.Errorf("Percent(0) = %s", got)
	}
}
