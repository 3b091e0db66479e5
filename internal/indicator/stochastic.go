package indicator

import "github.com/tradeforge/vela/internal/types"

// Stochastic is the stochastic oscillator: %K positions each close within
// the high/low range of the preceding kPeriod candles, and %D smooths %K
// with a simple moving average.
//
// A window where high equals low has no defined %K; that period contributes
// no value, so the series is simply shorter and band-exit checks see no new
// signal.
type Stochastic struct {
	kPeriod int
	dPeriod int

	percentK []float64
	percentD []float64
}

// NewStochastic creates a stochastic oscillator with the classic %K window
// and %D smoothing lookbacks.
func NewStochastic(kPeriod, dPeriod int) *Stochastic {
	return &Stochastic{kPeriod: kPeriod, dPeriod: dPeriod}
}

// PercentK returns the raw market rate series, oldest first.
func (s *Stochastic) PercentK() []float64 {
	return s.percentK
}

// PercentD returns the smoothed oscillator series, oldest first.
func (s *Stochastic) PercentD() []float64 {
	return s.percentD
}

// Calculate implements SeriesIndicator.
func (s *Stochastic) Calculate(history []types.Candle, newPeriods int) {
	s.percentK = s.percentK[:0]

	for i := s.kPeriod; i < len(history); i++ {
		high, low := history[i-s.kPeriod].High, history[i-s.kPeriod].Low

		for j := i - s.kPeriod + 1; j < i; j++ {
			if history[j].High > high {
				high = history[j].High
			}

			if history[j].Low < low {
				low = history[j].Low
			}
		}

		if high == low {
			continue
		}

		s.percentK = append(s.percentK, (history[i].Close-low)/(high-low)*100)
	}

	s.percentD = SMASeries(s.percentK, s.dPeriod)
}
