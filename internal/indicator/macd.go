package indicator

import "github.com/tradeforge/vela/internal/types"

// MACD computes the moving average convergence/divergence line, its signal
// line, and the histogram between them.
//
// The macd line is emaShort - emaLong, index-aligned by the length
// difference of the two EMA series; the signal line is an EMA of the macd
// line; the histogram spans the overlapping suffix of the two.
type MACD struct {
	shortPeriod  int
	longPeriod   int
	signalPeriod int

	macdLine   []float64
	signalLine []float64
	histogram  []float64
	emaShort   []float64
	emaLong    []float64
}

// NewMACD creates a MACD indicator from the three classic lookbacks.
func NewMACD(shortPeriod, longPeriod, signalPeriod int) *MACD {
	return &MACD{
		shortPeriod:  shortPeriod,
		longPeriod:   longPeriod,
		signalPeriod: signalPeriod,
	}
}

// MacdLine returns the macd line, oldest first.
func (m *MACD) MacdLine() []float64 {
	return m.macdLine
}

// SignalLine returns the signal line, oldest first.
func (m *MACD) SignalLine() []float64 {
	return m.signalLine
}

// Histogram returns macd minus signal over their overlapping suffix.
func (m *MACD) Histogram() []float64 {
	return m.histogram
}

// Calculate implements SeriesIndicator.
func (m *MACD) Calculate(history []types.Candle, newPeriods int) {
	closes := Closes(history)

	m.emaShort = EMASeries(closes, m.shortPeriod)
	m.emaLong = EMASeries(closes, m.longPeriod)

	m.macdLine = macdLine(m.emaShort, m.emaLong)
	m.signalLine = EMASeries(m.macdLine, m.signalPeriod)
	m.histogram = histogram(m.macdLine, m.signalLine)
}

func macdLine(emaShort, emaLong []float64) []float64 {
	if len(emaLong) == 0 || len(emaShort) < len(emaLong) {
		return nil
	}

	difference := len(emaShort) - len(emaLong)

	line := make([]float64, len(emaLong))
	for i := range emaLong {
		line[i] = emaShort[difference+i] - emaLong[i]
	}

	return line
}

func histogram(macdLine, signalLine []float64) []float64 {
	if len(signalLine) == 0 || len(macdLine) < len(signalLine) {
		return nil
	}

	offset := len(macdLine) - len(signalLine)

	hist := make([]float64, len(signalLine))
	for i := range signalLine {
		hist[i] = macdLine[offset+i] - signalLine[i]
	}

	return hist
}
