package datetime

import (
	"testing"
)

func TestOffsetDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		months   int
		expected string
	}{
		{
			name:     "Forward one month",
			date:     "2026-01",
			months:   1,
			expected: "2026-02",
		},
		{
			name:     "Across year boundary",
			date:     "2025-11",
			months:   3,
			expected: "2026-02",
		},
		{
			name:     "Backward",
			date:     "2026-01",
			months:   -2,
			expected: "2025-11",
		},
		{
			name:     "Zero offset",
			date:     "2026-06",
			months:   0,
			expected: "2026-06",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OffsetDate(tt.date, DateTimeLayout, tt.months)
			if err != nil {
				t.Fatalf("OffsetDate() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("OffsetDate(%s, %d) = %s, expected %s", tt.date, tt.months, got, tt.expected)
			}
		})
	}
}

func TestOffsetDateInvalid(t *testing.T) {
	if _, err := OffsetDate("January 2026", DateTimeLayout, 1); err == nil {
		t.Error("expected error for unparseable date")
	}
}

func TestValidMonth(t *testing.T) {
	if !ValidMonth("2026-08") {
		t.Error("2026-08 should be a valid month label")
	}
	if ValidMonth("2026-13") {
		t.Error("2026-13 should not be a valid month label")
	}
	if ValidMonth("") {
		t.Error("empty string should not be a valid month label")
	}
}
