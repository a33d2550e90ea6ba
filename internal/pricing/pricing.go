// Package pricing computes display-only price estimates. Nothing
// here is authoritative: the backend recomputes totals when a rental
// is booked.
package pricing

import (
	"math"
	"time"
)

// Adjust applies a provider multiplier to a base daily price and
// rounds to whole currency units.
func Adjust(base float64, multiplier float64) float64 {
	return math.Round(base * multiplier)
}

// Estimate returns the estimated total for renting at pricePerDay
// between start and end. Partial days are charged as full days; a
// window shorter than a day counts as one day. A non-positive window
// estimates to zero.
func Estimate(pricePerDay float64, start, end time.Time) float64 {
	if !end.After(start) {
		return 0
	}
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return pricePerDay * float64(days)
}
