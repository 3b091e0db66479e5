package indicator

import (
	"math"

	"github.com/tradeforge/vela/internal/types"
)

// cciScale is the conventional Lambert constant.
const cciScale = 0.015

// CCI is the Commodity Channel Index over typical prices. A window with zero
// mean deviation yields a neutral 0 instead of dividing by zero.
type CCI struct {
	period int
	values []float64
}

// NewCCI creates a CCI indicator with the given lookback.
func NewCCI(period int) *CCI {
	return &CCI{period: period}
}

// Values returns the computed series, oldest first.
func (c *CCI) Values() []float64 {
	return c.values
}

// Calculate implements SeriesIndicator.
func (c *CCI) Calculate(history []types.Candle, newPeriods int) {
	c.values = c.values[:0]

	if len(history) < c.period {
		return
	}

	typical := make([]float64, len(history))
	for i, candle := range history {
		typical[i] = (candle.High + candle.Low + candle.Close) / 3
	}

	for i := c.period - 1; i < len(typical); i++ {
		window := typical[i-c.period+1 : i+1]

		mean := 0.0
		for _, v := range window {
			mean += v
		}

		mean /= float64(c.period)

		deviation := 0.0
		for _, v := range window {
			deviation += math.Abs(v - mean)
		}

		deviation /= float64(c.period)

		if deviation == 0 {
			c.values = append(c.values, 0)

			continue
		}

		c.values = append(c.values, (typical[i]-mean)/(cciScale*deviation))
	}
}
