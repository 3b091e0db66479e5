package indicator

import "github.com/tradeforge/vela/internal/types"

// StochRSI applies the stochastic normalization to an RSI series instead of
// raw prices, positioning each RSI value within the min/max range of the
// preceding stochPeriod RSI values. Values are on a 0..1 scale. The result
// reacts faster than RSI at the cost of more noise, so a %D smoothing line is
// kept alongside it.
//
// Windows where RSI never moved have no defined value and are skipped, the
// same policy Stochastic uses for flat price windows.
type StochRSI struct {
	rsi         *RSI
	stochPeriod int
	dPeriod     int

	values   []float64
	percentD []float64
}

// NewStochRSI creates a stochastic RSI over rsiPeriod candles, normalized
// across stochPeriod RSI values and smoothed over dPeriod.
func NewStochRSI(rsiPeriod, stochPeriod, dPeriod int) *StochRSI {
	return &StochRSI{
		rsi:         NewRSI(rsiPeriod),
		stochPeriod: stochPeriod,
		dPeriod:     dPeriod,
	}
}

// Values returns the normalized series on the 0..1 scale, oldest first.
func (s *StochRSI) Values() []float64 {
	return s.values
}

// PercentD returns the smoothed series, oldest first.
func (s *StochRSI) PercentD() []float64 {
	return s.percentD
}

// Calculate implements SeriesIndicator.
func (s *StochRSI) Calculate(history []types.Candle, newPeriods int) {
	s.rsi.Calculate(history, newPeriods)
	rsi := s.rsi.Values()

	s.values = s.values[:0]

	for i := s.stochPeriod; i < len(rsi); i++ {
		lowest, highest := rsi[i-s.stochPeriod], rsi[i-s.stochPeriod]

		for j := i - s.stochPeriod + 1; j < i; j++ {
			if rsi[j] < lowest {
				lowest = rsi[j]
			}

			if rsi[j] > highest {
				highest = rsi[j]
			}
		}

		if highest == lowest {
			continue
		}

		s.values = append(s.values, (rsi[i]-lowest)/(highest-lowest))
	}

	s.percentD = SMASeries(s.values, s.dPeriod)
}
