package marketdata

import (
	"context"
	"testing"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/stretchr/testify/suite"

	"github.com/tradeforge/vela/internal/store"
	"github.com/tradeforge/vela/internal/types"
	"github.com/tradeforge/vela/pkg/errors"
)

type MarketDataTestSuite struct {
	suite.Suite
}

func TestMarketDataSuite(t *testing.T) {
	suite.Run(t, new(MarketDataTestSuite))
}

func (s *MarketDataTestSuite) TestCandleFromKline() {
	k := &binance.Kline{
		OpenTime: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).UnixMilli(),
		Open:     "100.5",
		High:     "101.0",
		Low:      "99.5",
		Close:    "100.0",
		Volume:   "1234.56",
	}

	candle, err := candleFromKline(k)

	s.Require().NoError(err)
	s.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), candle.Time)
	s.InDelta(100.5, candle.Open, 1e-9)
	s.InDelta(101.0, candle.High, 1e-9)
	s.InDelta(99.5, candle.Low, 1e-9)
	s.InDelta(100.0, candle.Close, 1e-9)
	s.InDelta(1234.56, candle.Volume, 1e-9)
}

func (s *MarketDataTestSuite) TestCandleFromKlineMalformed() {
	k := &binance.Kline{
		OpenTime: time.Now().UnixMilli(),
		Open:     "not-a-number",
		High:     "1", Low: "1", Close: "1", Volume: "1",
	}

	_, err := candleFromKline(k)

	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeParseFailed))
}

func (s *MarketDataTestSuite) TestCandleFromKlineInvalidRange() {
	k := &binance.Kline{
		OpenTime: time.Now().UnixMilli(),
		Open:     "100",
		High:     "90", // high below open
		Low:      "80",
		Close:    "85",
		Volume:   "1",
	}

	_, err := candleFromKline(k)

	s.Require().Error(err)
}

func (s *MarketDataTestSuite) TestPolygonTimespanMapping() {
	cases := []struct {
		timeframe  types.Timeframe
		multiplier int
		timespan   models.Timespan
	}{
		{types.TimeframeOneMinute, 1, models.Minute},
		{types.TimeframeFiveMinutes, 5, models.Minute},
		{types.TimeframeFifteenMinutes, 15, models.Minute},
		{types.TimeframeOneHour, 1, models.Hour},
		{types.TimeframeSixHours, 6, models.Hour},
		{types.TimeframeOneDay, 1, models.Day},
	}

	for _, c := range cases {
		multiplier, timespan, err := polygonTimespan(c.timeframe)

		s.Require().NoError(err)
		s.Equal(c.multiplier, multiplier)
		s.Equal(c.timespan, timespan)
	}

	_, _, err := polygonTimespan(types.Timeframe("3w"))
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeInvalidTimeframe))
}

func (s *MarketDataTestSuite) TestNewFetcherRejectsUnknownProvider() {
	_, err := NewFetcher(Config{Provider: "carrier-pigeon"})

	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeProviderNotFound))
}

// chunkFetcher records the ranges it is asked for and returns one candle
// per request.
type chunkFetcher struct {
	ranges [][2]time.Time
}

func (f *chunkFetcher) CandlesRange(_ context.Context, _ string, _ types.Timeframe, from, to time.Time) ([]types.Candle, error) {
	f.ranges = append(f.ranges, [2]time.Time{from, to})

	return []types.Candle{{
		Time: from, Open: 1, High: 1, Low: 1, Close: 1, Volume: 1,
	}}, nil
}

type countingRecorder struct {
	store.NopRecorder

	candles int
}

func (r *countingRecorder) RecordCandles(_ context.Context, _ string, _ types.Timeframe, candles []types.Candle) error {
	r.candles += len(candles)

	return nil
}

func (s *MarketDataTestSuite) TestBackfillChunksRange() {
	fetcher := &chunkFetcher{}
	recorder := &countingRecorder{}

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(72 * time.Hour)

	total, err := Backfill(context.Background(), fetcher, recorder, "BTCUSDT", types.TimeframeOneHour, from, to)

	s.Require().NoError(err)
	s.Equal(3, total)
	s.Equal(3, recorder.candles)
	s.Require().Len(fetcher.ranges, 3)
	s.Equal(from, fetcher.ranges[0][0])
	s.Equal(to, fetcher.ranges[2][1])
}
