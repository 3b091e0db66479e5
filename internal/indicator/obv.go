package indicator

import "github.com/tradeforge/vela/internal/types"

// OBV is On-Balance Volume, a cumulative total gated by the direction of the
// close: volume is added on an up close, subtracted on a down close, and the
// total is unchanged on an equal close. One value per candle; the first is 0.
type OBV struct {
	values []float64
	seen   int
}

// NewOBV creates an on-balance volume indicator.
func NewOBV() *OBV {
	return &OBV{}
}

// Values returns the computed series, oldest first.
func (o *OBV) Values() []float64 {
	return o.values
}

// Calculate implements SeriesIndicator. The running total extends
// incrementally; a recompute from scratch reproduces it exactly.
func (o *OBV) Calculate(history []types.Candle, newPeriods int) {
	start := o.seen
	if len(o.values) == 0 || newPeriods >= len(history) || o.seen+newPeriods != len(history) {
		o.values = o.values[:0]
		start = 0
	}

	for i := start; i < len(history); i++ {
		if i == 0 {
			o.values = append(o.values, 0)

			continue
		}

		total := o.values[len(o.values)-1]

		switch {
		case history[i].Close > history[i-1].Close:
			total += history[i].Volume
		case history[i].Close < history[i-1].Close:
			total -= history[i].Volume
		}

		o.values = append(o.values, total)
	}

	o.seen = len(history)
}
