package indicator

import "github.com/tradeforge/vela/internal/types"

// RSI is the Relative Strength Index with Wilder smoothing. Values are
// bounded to [0,100]; the first value corresponds to candle index period
// (one full window of price changes).
type RSI struct {
	period int
	values []float64

	// smoothing state for the hypothetical-price variant
	avgGain float64
	avgLoss float64
}

// NewRSI creates an RSI indicator with the given lookback.
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

// Period returns the configured lookback.
func (r *RSI) Period() int {
	return r.period
}

// Values returns the computed series, oldest first.
func (r *RSI) Values() []float64 {
	return r.values
}

// Calculate implements SeriesIndicator.
func (r *RSI) Calculate(history []types.Candle, newPeriods int) {
	r.values = r.values[:0]
	r.avgGain, r.avgLoss = 0, 0

	if len(history) < r.period+1 {
		return
	}

	gains := make([]float64, 0, len(history)-1)
	losses := make([]float64, 0, len(history)-1)

	for i := 1; i < len(history); i++ {
		change := history[i].Close - history[i-1].Close
		if change > 0 {
			gains = append(gains, change)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, -change)
		}
	}

	avgGain, avgLoss := 0.0, 0.0
	for i := 0; i < r.period; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}

	avgGain /= float64(r.period)
	avgLoss /= float64(r.period)

	r.values = append(r.values, rsiFrom(avgGain, avgLoss))

	// Wilder smoothing for the rest of the history
	for i := r.period; i < len(gains); i++ {
		avgGain = (avgGain*float64(r.period-1) + gains[i]) / float64(r.period)
		avgLoss = (avgLoss*float64(r.period-1) + losses[i]) / float64(r.period)

		r.values = append(r.values, rsiFrom(avgGain, avgLoss))
	}

	r.avgGain, r.avgLoss = avgGain, avgLoss
}

// ValueAt returns the RSI a still-forming period would have if it closed at
// livePrice right now. The stored series is not touched, which lets signal
// checks run against the live price between candle closes.
func (r *RSI) ValueAt(history []types.Candle, livePrice float64) (float64, bool) {
	if len(r.values) == 0 || len(history) == 0 {
		return 0, false
	}

	change := livePrice - history[len(history)-1].Close

	gain, loss := 0.0, 0.0
	if change > 0 {
		gain = change
	} else {
		loss = -change
	}

	avgGain := (r.avgGain*float64(r.period-1) + gain) / float64(r.period)
	avgLoss := (r.avgLoss*float64(r.period-1) + loss) / float64(r.period)

	return rsiFrom(avgGain, avgLoss), true
}

func rsiFrom(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss

	return 100 - (100 / (1 + rs))
}
