package pricing

import (
	"testing"
	"time"
)

func TestAdjust(t *testing.T) {
	tests := []struct {
		name       string
		base       float64
		multiplier float64
		want       float64
	}{
		{name: "standard rate", base: 48, multiplier: 1.0, want: 48},
		{name: "premium provider", base: 48, multiplier: 1.2, want: 58},
		{name: "discount provider", base: 48, multiplier: 0.85, want: 41},
		{name: "luxury provider", base: 40, multiplier: 1.5, want: 60},
		{name: "zero base", base: 0, multiplier: 1.2, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Adjust(tt.base, tt.multiplier); got != tt.want {
				t.Errorf("Adjust(%v, %v) = %v, want %v", tt.base, tt.multiplier, got, tt.want)
			}
		})
	}
}

func TestEstimate(t *testing.T) {
	start := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want float64
	}{
		{name: "exactly two days", end: start.AddDate(0, 0, 2), want: 1200},
		{name: "partial day rounds up", end: start.Add(36 * time.Hour), want: 1200},
		{name: "under a day counts as one", end: start.Add(3 * time.Hour), want: 600},
		{name: "end equals start", end: start, want: 0},
		{name: "end before start", end: start.Add(-time.Hour), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Estimate(600, start, tt.end); got != tt.want {
				t.Errorf("Estimate(600, start, %v) = %v, want %v", tt.end, got, tt.want)
			}
		})
	}
}
