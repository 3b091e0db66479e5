// Package indicator computes derived numeric series over candle history.
//
// Every indicator owns its output slices and recomputes them through
// Calculate(history, newPeriods). Values are index-aligned to a suffix of the
// candle history by a fixed warm-up offset: the first lookback periods
// produce no value. Recomputing a series from scratch yields exactly the same
// values as extending it incrementally from the same history, and no value at
// index i ever depends on a period after i.
//
// Calls made before enough history exists simply produce an empty (or
// shorter) series; callers treat a missing value as "no signal", never as an
// error.
package indicator

import "github.com/tradeforge/vela/internal/types"

// SeriesIndicator is the common recompute capability all indicators share.
type SeriesIndicator interface {
	// Calculate refreshes the derived series from the full candle history.
	// newPeriods is the number of periods appended since the previous call;
	// cumulative indicators use it to extend instead of rebuilding.
	Calculate(history []types.Candle, newPeriods int)
}

// Recent returns the value `back` places from the end of a series; back=1 is
// the most recent value. The second return is false when the series is too
// short.
func Recent(values []float64, back int) (float64, bool) {
	if back < 1 || len(values) < back {
		return 0, false
	}

	return values[len(values)-back], true
}

// Closes extracts the close prices of a candle history, oldest first.
func Closes(history []types.Candle) []float64 {
	closes := make([]float64, len(history))
	for i, candle := range history {
		closes[i] = candle.Close
	}

	return closes
}
