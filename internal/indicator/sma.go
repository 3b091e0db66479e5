package indicator

import "github.com/tradeforge/vela/internal/types"

// SMASeries computes a simple moving average over values. The first output
// corresponds to input index period-1, so the result has
// len(values)-period+1 entries (empty when there is not enough input).
func SMASeries(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}

	out := make([]float64, 0, len(values)-period+1)

	sum := 0.0
	for i, v := range values {
		sum += v

		if i >= period {
			sum -= values[i-period]
		}

		if i >= period-1 {
			out = append(out, sum/float64(period))
		}
	}

	return out
}

// SMA is a simple moving average over closing prices.
type SMA struct {
	period int
	values []float64
}

// NewSMA creates a simple moving average indicator with the given lookback.
func NewSMA(period int) *SMA {
	return &SMA{period: period}
}

// Values returns the computed series, oldest first.
func (s *SMA) Values() []float64 {
	return s.values
}

// Calculate implements SeriesIndicator.
func (s *SMA) Calculate(history []types.Candle, newPeriods int) {
	s.values = SMASeries(Closes(history), s.period)
}
