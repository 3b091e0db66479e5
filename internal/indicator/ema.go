package indicator

import "github.com/tradeforge/vela/internal/types"

// EMASeries computes an exponential moving average over values. The first
// output is the SMA of the first period inputs (aligned to input index
// period-1); each subsequent value follows
//
//	ema = (v - prevEMA) * (2/(period+1)) + prevEMA
func EMASeries(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}

	out := make([]float64, 0, len(values)-period+1)

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}

	out = append(out, sum/float64(period))

	multiplier := 2.0 / (float64(period) + 1.0)

	for i := period; i < len(values); i++ {
		prev := out[len(out)-1]
		out = append(out, (values[i]-prev)*multiplier+prev)
	}

	return out
}

// extendEMA appends one value to an existing EMA series using the same
// recurrence as EMASeries, so incremental extension reproduces a recompute
// from scratch exactly.
func extendEMA(series []float64, value float64, period int) []float64 {
	multiplier := 2.0 / (float64(period) + 1.0)
	prev := series[len(series)-1]

	return append(series, (value-prev)*multiplier+prev)
}

// EMA is an exponential moving average over closing prices. It extends its
// series incrementally when told how many periods are new.
type EMA struct {
	period int
	values []float64
	seen   int
}

// NewEMA creates an EMA indicator with the given lookback.
func NewEMA(period int) *EMA {
	return &EMA{period: period}
}

// Period returns the configured lookback.
func (e *EMA) Period() int {
	return e.period
}

// Values returns the computed series, oldest first.
func (e *EMA) Values() []float64 {
	return e.values
}

// Calculate implements SeriesIndicator. A full recompute and an incremental
// extension produce identical values for identical history.
func (e *EMA) Calculate(history []types.Candle, newPeriods int) {
	if len(e.values) == 0 || newPeriods >= len(history) || e.seen+newPeriods != len(history) {
		e.values = EMASeries(Closes(history), e.period)
		e.seen = len(history)

		return
	}

	for i := len(history) - newPeriods; i < len(history); i++ {
		e.values = extendEMA(e.values, history[i].Close, e.period)
	}

	e.seen = len(history)
}
