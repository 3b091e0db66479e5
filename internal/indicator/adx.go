package indicator

import (
	"math"

	"github.com/tradeforge/vela/internal/types"
)

// ADX is the Average Directional Index with its two directional movement
// lines. True range and directional movement are Wilder-smoothed over the
// lookback; DX is smoothed again into ADX. A flat market produces zero
// directional indicators rather than a division error.
type ADX struct {
	period int

	adx     []float64
	plusDI  []float64
	minusDI []float64
}

// NewADX creates an ADX indicator with the given lookback.
func NewADX(period int) *ADX {
	return &ADX{period: period}
}

// Values returns the ADX series, oldest first.
func (a *ADX) Values() []float64 {
	return a.adx
}

// PlusDI returns the positive directional indicator series.
func (a *ADX) PlusDI() []float64 {
	return a.plusDI
}

// MinusDI returns the negative directional indicator series.
func (a *ADX) MinusDI() []float64 {
	return a.minusDI
}

// Calculate implements SeriesIndicator.
func (a *ADX) Calculate(history []types.Candle, newPeriods int) {
	a.adx = a.adx[:0]
	a.plusDI = a.plusDI[:0]
	a.minusDI = a.minusDI[:0]

	if len(history) < a.period+1 {
		return
	}

	n := len(history) - 1
	trueRange := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)

	for i := 1; i < len(history); i++ {
		current, previous := history[i], history[i-1]

		trueRange[i-1] = math.Max(current.High-current.Low,
			math.Max(math.Abs(current.High-previous.Close), math.Abs(current.Low-previous.Close)))

		upMove := current.High - previous.High
		downMove := previous.Low - current.Low

		if upMove > downMove && upMove > 0 {
			plusDM[i-1] = upMove
		}

		if downMove > upMove && downMove > 0 {
			minusDM[i-1] = downMove
		}
	}

	// Wilder smoothing: seed with the sum of the first window, then
	// s = s - s/period + current.
	smoothTR, smoothPlus, smoothMinus := 0.0, 0.0, 0.0
	for i := 0; i < a.period; i++ {
		smoothTR += trueRange[i]
		smoothPlus += plusDM[i]
		smoothMinus += minusDM[i]
	}

	dx := make([]float64, 0, n-a.period+1)
	appendDI := func(tr, plus, minus float64) {
		var plusDI, minusDI float64
		if tr > 0 {
			plusDI = 100 * plus / tr
			minusDI = 100 * minus / tr
		}

		a.plusDI = append(a.plusDI, plusDI)
		a.minusDI = append(a.minusDI, minusDI)

		if sum := plusDI + minusDI; sum > 0 {
			dx = append(dx, 100*math.Abs(plusDI-minusDI)/sum)
		} else {
			dx = append(dx, 0)
		}
	}

	appendDI(smoothTR, smoothPlus, smoothMinus)

	for i := a.period; i < n; i++ {
		smoothTR = smoothTR - smoothTR/float64(a.period) + trueRange[i]
		smoothPlus = smoothPlus - smoothPlus/float64(a.period) + plusDM[i]
		smoothMinus = smoothMinus - smoothMinus/float64(a.period) + minusDM[i]

		appendDI(smoothTR, smoothPlus, smoothMinus)
	}

	if len(dx) < a.period {
		return
	}

	sum := 0.0
	for i := 0; i < a.period; i++ {
		sum += dx[i]
	}

	a.adx = append(a.adx, sum/float64(a.period))

	for i := a.period; i < len(dx); i++ {
		prev := a.adx[len(a.adx)-1]
		a.adx = append(a.adx, (prev*float64(a.period-1)+dx[i])/float64(a.period))
	}
}
