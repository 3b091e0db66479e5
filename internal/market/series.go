// Package market holds the candle history that all indicators read.
package market

import (
	"github.com/tradeforge/vela/internal/types"
	"github.com/tradeforge/vela/pkg/errors"
)

// CandleSeries is an append-ordered sequence of closed OHLCV periods for one
// symbol and timeframe. Candles are ordered oldest to newest with strictly
// increasing times. A bounded series trims its oldest periods once the
// retention limit is exceeded.
type CandleSeries struct {
	symbol     string
	timeframe  types.Timeframe
	candles    []types.Candle
	maxPeriods int
}

// NewCandleSeries creates an empty series. maxPeriods of 0 means unbounded
// retention.
func NewCandleSeries(symbol string, timeframe types.Timeframe, maxPeriods int) *CandleSeries {
	return &CandleSeries{
		symbol:     symbol,
		timeframe:  timeframe,
		candles:    make([]types.Candle, 0, maxPeriods),
		maxPeriods: maxPeriods,
	}
}

// Symbol returns the instrument this series tracks.
func (s *CandleSeries) Symbol() string {
	return s.symbol
}

// Timeframe returns the period duration of the series.
func (s *CandleSeries) Timeframe() types.Timeframe {
	return s.timeframe
}

// Len returns the number of stored periods.
func (s *CandleSeries) Len() int {
	return len(s.candles)
}

// Candles returns the stored history, oldest first. Callers must treat the
// slice as read-only.
func (s *CandleSeries) Candles() []types.Candle {
	return s.candles
}

// Last returns the most recent period, if any.
func (s *CandleSeries) Last() (types.Candle, bool) {
	if len(s.candles) == 0 {
		return types.Candle{}, false
	}

	return s.candles[len(s.candles)-1], true
}

// CheckBatch validates a fetched batch without touching the series: every
// candle must pass validation and times must be strictly increasing. Callers
// syncing several series can check all their batches up front so that no
// series is mutated unless every batch is sound.
func (s *CandleSeries) CheckBatch(batch []types.Candle) error {
	var prev *types.Candle

	for i := range batch {
		if err := batch[i].Validate(); err != nil {
			return err
		}

		if prev != nil && !batch[i].Time.After(prev.Time) {
			return errors.Newf(errors.ErrCodeOutOfOrderCandle,
				"batch for %s is not strictly ordered at %s", s.symbol, batch[i].Time)
		}

		prev = &batch[i]
	}

	return nil
}

// Sync merges a fetched batch into the series and returns how many new
// periods were appended. The batch must be ordered oldest to newest with
// unique times; candles at or before the stored head are skipped, so feeding
// the same batch twice is idempotent. The whole batch is validated before
// anything is stored: on error the series is left exactly as it was.
func (s *CandleSeries) Sync(batch []types.Candle) (int, error) {
	if err := s.CheckBatch(batch); err != nil {
		return 0, err
	}

	appended := 0

	for _, candle := range batch {
		if last, ok := s.Last(); ok && !candle.Time.After(last.Time) {
			continue
		}

		s.candles = append(s.candles, candle)
		appended++
	}

	if s.maxPeriods > 0 && len(s.candles) > s.maxPeriods {
		overflow := len(s.candles) - s.maxPeriods
		s.candles = append(s.candles[:0:0], s.candles[overflow:]...)
	}

	return appended, nil
}
