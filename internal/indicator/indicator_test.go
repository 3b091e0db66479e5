package indicator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/tradeforge/vela/internal/types"
)

type IndicatorTestSuite struct {
	suite.Suite
}

func TestIndicatorSuite(t *testing.T) {
	suite.Run(t, new(IndicatorTestSuite))
}

// candlesFromCloses builds a flat-range candle series where each candle's
// open/high/low track the close, spaced one minute apart.
func candlesFromCloses(closes ...float64) []types.Candle {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]types.Candle, 0, len(closes))

	for i, c := range closes {
		candles = append(candles, types.Candle{
			Time:   base.Add(time.Duration(i) * time.Minute),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 100,
		})
	}

	return candles
}

func (s *IndicatorTestSuite) TestSMASeriesWarmup() {
	values := SMASeries([]float64{1, 2, 3, 4, 5}, 3)

	s.Require().Len(values, 3)
	s.InDelta(2, values[0], 1e-9)
	s.InDelta(3, values[1], 1e-9)
	s.InDelta(4, values[2], 1e-9)
}

func (s *IndicatorTestSuite) TestSMASeriesInsufficientData() {
	s.Empty(SMASeries([]float64{1, 2}, 3))
}

func (s *IndicatorTestSuite) TestEMAIncrementalMatchesScratch() {
	closes := []float64{10, 11, 12, 11.5, 12.5, 13, 12.8, 13.4, 14, 13.7, 14.2, 15}
	history := candlesFromCloses(closes...)

	incremental := NewEMA(5)
	incremental.Calculate(history[:8], 8)

	for i := 8; i < len(history); i++ {
		incremental.Calculate(history[:i+1], 1)
	}

	scratch := NewEMA(5)
	scratch.Calculate(history, len(history))

	s.Require().Len(incremental.Values(), len(scratch.Values()))

	for i := range scratch.Values() {
		s.InDelta(scratch.Values()[i], incremental.Values()[i], 1e-9)
	}
}

func (s *IndicatorTestSuite) TestRSIBounds() {
	closes := []float64{44, 44.3, 44.1, 43.6, 44.3, 44.8, 45.1, 45.4, 45.8, 46.1,
		46, 46.03, 46.41, 46.22, 45.64, 46.21, 46.25, 45.71, 46.45, 45.78}
	rsi := NewRSI(14)
	rsi.Calculate(candlesFromCloses(closes...), len(closes))

	s.Require().NotEmpty(rsi.Values())

	for _, v := range rsi.Values() {
		s.GreaterOrEqual(v, 0.0)
		s.LessOrEqual(v, 100.0)
	}
}

func (s *IndicatorTestSuite) TestRSIValueAtMatchesNextStoredValue() {
	closes := []float64{44, 44.3, 44.1, 43.6, 44.3, 44.8, 45.1, 45.4, 45.8, 46.1,
		46, 46.03, 46.41, 46.22, 45.64, 46.21, 46.25, 45.71, 46.45, 45.78}
	history := candlesFromCloses(closes...)

	// ValueAt over a prefix, pretending the next close is the live price,
	// must agree with the stored series once that candle actually lands.
	for n := 16; n < len(history); n++ {
		partial := NewRSI(14)
		partial.Calculate(history[:n], n)

		live, ok := partial.ValueAt(history[:n], history[n].Close)
		s.Require().True(ok)

		full := NewRSI(14)
		full.Calculate(history[:n+1], n+1)

		stored, ok := Recent(full.Values(), 1)
		s.Require().True(ok)
		s.InDelta(stored, live, 1e-9)

		// The stored series itself is untouched by the peek.
		prev, ok := Recent(partial.Values(), 1)
		s.Require().True(ok)
		fullPrev, ok := Recent(full.Values(), 2)
		s.Require().True(ok)
		s.InDelta(fullPrev, prev, 1e-9)
	}
}

func (s *IndicatorTestSuite) TestRSIValueAtNeedsWarmup() {
	history := candlesFromCloses(44, 44.3, 44.1)

	rsi := NewRSI(14)
	rsi.Calculate(history, len(history))

	_, ok := rsi.ValueAt(history, 44.5)
	s.False(ok)
}

func (s *IndicatorTestSuite) TestRSIMonotonicRiseHitsCeiling() {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	rsi := NewRSI(14)
	rsi.Calculate(candlesFromCloses(closes...), len(closes))

	last, ok := Recent(rsi.Values(), 1)
	s.Require().True(ok)
	s.InDelta(100, last, 1e-9)
}

func (s *IndicatorTestSuite) TestMACDHistogramAlignment() {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i%7)
	}

	macd := NewMACD(12, 26, 9)
	macd.Calculate(candlesFromCloses(closes...), len(closes))

	s.Require().NotEmpty(macd.SignalLine())
	s.Len(macd.Histogram(), len(macd.SignalLine()))

	// Each histogram value is the macd line minus the signal line at the
	// same point from the end of either series.
	for back := 1; back <= len(macd.Histogram()); back++ {
		h, _ := Recent(macd.Histogram(), back)
		m, _ := Recent(macd.MacdLine(), back)
		sig, _ := Recent(macd.SignalLine(), back)
		s.InDelta(m-sig, h, 1e-9)
	}
}

func (s *IndicatorTestSuite) TestStochasticSkipsFlatWindow() {
	history := candlesFromCloses(5, 5, 5, 5, 5, 6, 7, 8)

	st := NewStochastic(3, 2)
	st.Calculate(history, len(history))

	// Windows fully inside the flat stretch produce nothing; later windows
	// with real range do.
	s.NotEmpty(st.PercentK())
	s.Less(len(st.PercentK()), len(history)-3)
}

func (s *IndicatorTestSuite) TestPVIIgnoresQuietVolume() {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	history := []types.Candle{
		{Time: base, Open: 10, High: 10, Low: 10, Close: 10, Volume: 100},
		{Time: base.Add(time.Minute), Open: 10, High: 12, Low: 10, Close: 12, Volume: 90},
		{Time: base.Add(2 * time.Minute), Open: 12, High: 13, Low: 12, Close: 13, Volume: 150},
	}

	pvi := NewPVI(2)
	pvi.Calculate(history, len(history))

	s.Require().Len(pvi.Values(), 3)
	s.InDelta(1000, pvi.Values()[0], 1e-9)
	// Volume fell on the second candle, so its 20% rally is not counted.
	s.InDelta(1000, pvi.Values()[1], 1e-9)
	// Volume rose on the third, so the percent change from 12 to 13 lands.
	s.InDelta(1000+100.0/12, pvi.Values()[2], 1e-9)
}

func (s *IndicatorTestSuite) TestPVIIncrementalMatchesScratch() {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	history := make([]types.Candle, 0, 12)

	for i := 0; i < 12; i++ {
		history = append(history, types.Candle{
			Time:   base.Add(time.Duration(i) * time.Minute),
			Open:   10,
			High:   10 + float64(i),
			Low:    9,
			Close:  10 + float64(i%5),
			Volume: float64(100 + 13*i%40),
		})
	}

	incremental := NewPVI(4)
	incremental.Calculate(history[:6], 6)

	for i := 6; i < len(history); i++ {
		incremental.Calculate(history[:i+1], 1)
	}

	scratch := NewPVI(4)
	scratch.Calculate(history, len(history))

	s.Require().Len(incremental.Values(), len(scratch.Values()))

	for i := range scratch.Values() {
		s.InDelta(scratch.Values()[i], incremental.Values()[i], 1e-9)
	}
}

func (s *IndicatorTestSuite) TestOBVDirection() {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	history := []types.Candle{
		{Time: base, Open: 10, High: 10, Low: 10, Close: 10, Volume: 100},
		{Time: base.Add(time.Minute), Open: 10, High: 11, Low: 10, Close: 11, Volume: 50},
		{Time: base.Add(2 * time.Minute), Open: 11, High: 11, Low: 9, Close: 9, Volume: 30},
		{Time: base.Add(3 * time.Minute), Open: 9, High: 9, Low: 9, Close: 9, Volume: 70},
	}

	obv := NewOBV()
	obv.Calculate(history, len(history))

	s.Require().Len(obv.Values(), 4)
	s.InDelta(0, obv.Values()[0], 1e-9)
	s.InDelta(50, obv.Values()[1], 1e-9)
	s.InDelta(20, obv.Values()[2], 1e-9)
	s.InDelta(20, obv.Values()[3], 1e-9)
}

func (s *IndicatorTestSuite) TestCCIFlatWindowIsNeutral() {
	cci := NewCCI(5)
	cci.Calculate(candlesFromCloses(7, 7, 7, 7, 7, 7), 6)

	s.Require().NotEmpty(cci.Values())

	for _, v := range cci.Values() {
		s.InDelta(0, v, 1e-9)
	}
}

func (s *IndicatorTestSuite) TestADXBounded() {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	history := make([]types.Candle, 0, 40)

	for i := 0; i < 40; i++ {
		c := 50 + float64(i%9)
		history = append(history, types.Candle{
			Time:   base.Add(time.Duration(i) * time.Minute),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 100,
		})
	}

	adx := NewADX(14)
	adx.Calculate(history, len(history))

	s.Require().NotEmpty(adx.Values())

	for _, v := range adx.Values() {
		s.GreaterOrEqual(v, 0.0)
		s.LessOrEqual(v, 100.0)
	}
}

func TestHasCrossover(t *testing.T) {
	t.Run("flat then jump fires bullish", func(t *testing.T) {
		fast := []float64{5, 5, 5, 5, 8}
		slow := []float64{5, 5, 5, 5, 5}

		assert.True(t, HasCrossover(true, 2, fast, slow))
		assert.False(t, HasCrossover(false, 2, fast, slow))
	})

	t.Run("bearish cross", func(t *testing.T) {
		fast := []float64{10, 9, 7, 5}
		slow := []float64{8, 8, 8, 8}

		assert.True(t, HasCrossover(false, 2, fast, slow))
		assert.False(t, HasCrossover(true, 2, fast, slow))
	})

	t.Run("no cross when fast stays above", func(t *testing.T) {
		fast := []float64{9, 9, 9, 9}
		slow := []float64{5, 5, 5, 5}

		assert.False(t, HasCrossover(true, 2, fast, slow))
		assert.False(t, HasCrossover(false, 2, fast, slow))
	})

	t.Run("touching lines answer neither direction", func(t *testing.T) {
		fast := []float64{5, 5, 5, 5}
		slow := []float64{5, 5, 5, 5}

		assert.False(t, HasCrossover(true, 2, fast, slow))
		assert.False(t, HasCrossover(false, 2, fast, slow))
	})

	t.Run("short series", func(t *testing.T) {
		assert.False(t, HasCrossover(true, 3, []float64{1, 2}, []float64{2, 1}))
	})
}

func TestHasTrendCrossover(t *testing.T) {
	t.Run("both lines rising", func(t *testing.T) {
		fast := []float64{1, 2, 4, 7}
		slow := []float64{3, 3.5, 4, 4.5}

		assert.True(t, HasTrendCrossover(true, 2, fast, slow))
	})

	t.Run("whipsaw rejected", func(t *testing.T) {
		fast := []float64{5, 3, 6, 5.5}
		slow := []float64{4, 4, 4.2, 4.4}

		assert.True(t, HasCrossover(true, 2, fast, slow))
		assert.False(t, HasTrendCrossover(true, 2, fast, slow))
	})
}

func TestHasDivergence(t *testing.T) {
	t.Run("bullish divergence", func(t *testing.T) {
		// Price makes a fresh low while the paired series holds above its
		// own low from earlier in the window.
		price := []float64{10, 8, 9, 7}
		paired := []float64{40, 30, 38, 35}

		assert.True(t, HasDivergence(true, 4, price, paired))
	})

	t.Run("confirming series blocks the signal", func(t *testing.T) {
		price := []float64{10, 8, 9, 7}
		paired := []float64{40, 35, 33, 30}

		assert.False(t, HasDivergence(true, 4, price, paired))
	})

	t.Run("bearish divergence", func(t *testing.T) {
		price := []float64{10, 12, 11, 13}
		paired := []float64{40, 60, 55, 50}

		assert.True(t, HasDivergence(false, 4, price, paired))
	})

	t.Run("price not at extreme", func(t *testing.T) {
		price := []float64{10, 6, 9, 7}
		paired := []float64{40, 30, 38, 35}

		assert.False(t, HasDivergence(true, 4, price, paired))
	})

	t.Run("short series", func(t *testing.T) {
		assert.False(t, HasDivergence(true, 4, []float64{1, 2}, []float64{1, 2}))
	})
}
