package mathutil

import (
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{
			name:     "Round to two decimals",
			input:    1234.5678,
			expected: 1234.57,
		},
		{
			name:     "Round down",
			input:    0.004,
			expected: 0.0,
		},
		{
			name:     "Round half up",
			input:    0.005,
			expected: 0.01,
		},
		{
			name:     "Negative value",
			input:    -99.999,
			expected: -100.0,
		},
		{
			name:     "Already two decimals",
			input:    42.42,
			expected: 42.42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round(tt.input); got != tt.expected {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(0.005) {
		t.Error("IsZero(0.005) should be true within penny tolerance")
	}
	if IsZero(0.02) {
		t.Error("IsZero(0.02) should be false")
	}
	if !IsZero(-0.009) {
		t.Error("IsZero(-0.009) should be true within penny tolerance")
	}
}

func TestIsPositiveIsNegative(t *testing.T) {
	if !IsPositive(0.02) {
		t.Error("IsPositive(0.02) should be true")
	}
	if IsPositive(0.005) {
		t.Error("IsPositive(0.005) should be false within tolerance")
	}
	if !IsNegative(-0.02) {
		t.Error("IsNegative(-0.02) should be true")
	}
	if IsNegative(-0.005) {
		t.Error("IsNegative(-0.005) should be false within tolerance")
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(100.00, 100.009, 0.01) {
		t.Error("values a penny apart should be within tolerance")
	}
	if WithinTolerance(100.00, 100.02, 0.01) {
		t.Error("values two pennies apart should not be within tolerance")
	}
}
