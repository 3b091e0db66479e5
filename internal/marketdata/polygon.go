package marketdata

import (
	"context"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"github.com/tradeforge/vela/internal/types"
	"github.com/tradeforge/vela/pkg/errors"
)

// polygonAggLimit is the aggregate page size requested per call.
const polygonAggLimit = 50000

// PolygonFetcher reads aggregate bars from the Polygon REST API.
type PolygonFetcher struct {
	client *polygon.Client
}

// NewPolygonFetcher creates a fetcher with the given API key.
func NewPolygonFetcher(apiKey string) (*PolygonFetcher, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeProviderNotFound, "polygon provider requires an api key")
	}

	return &PolygonFetcher{client: polygon.New(apiKey)}, nil
}

// Candles implements Fetcher by scanning back far enough to cover limit
// bars of the timeframe.
func (p *PolygonFetcher) Candles(ctx context.Context, symbol string, timeframe types.Timeframe, limit int) ([]types.Candle, error) {
	if err := timeframe.Validate(); err != nil {
		return nil, err
	}

	to := time.Now().UTC()
	from := to.Add(-time.Duration(limit+1) * timeframe.Duration())

	candles, err := p.CandlesRange(ctx, symbol, timeframe, from, to)
	if err != nil {
		return nil, err
	}

	if len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}

	return candles, nil
}

// Price implements Fetcher with the close of the newest minute bar.
func (p *PolygonFetcher) Price(ctx context.Context, symbol string) (float64, error) {
	to := time.Now().UTC()

	candles, err := p.CandlesRange(ctx, symbol, types.TimeframeOneMinute, to.Add(-time.Hour), to)
	if err != nil {
		return 0, err
	}

	if len(candles) == 0 {
		return 0, errors.Newf(errors.ErrCodePriceUnavailable, "no recent trades for %s", symbol)
	}

	return candles[len(candles)-1].Close, nil
}

// CandlesRange implements HistoryFetcher.
func (p *PolygonFetcher) CandlesRange(ctx context.Context, symbol string, timeframe types.Timeframe, from, to time.Time) ([]types.Candle, error) {
	multiplier, timespan, err := polygonTimespan(timeframe)
	if err != nil {
		return nil, err
	}

	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: multiplier,
		Timespan:   timespan,
		From:       models.Millis(from),
		To:         models.Millis(to),
	}.WithLimit(polygonAggLimit)

	iter := p.client.ListAggs(ctx, params)

	var candles []types.Candle

	for iter.Next() {
		agg := iter.Item()

		candle := types.Candle{
			Time:   time.Time(agg.Timestamp).UTC(),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		}

		if err := candle.Validate(); err != nil {
			return nil, err
		}

		candles = append(candles, candle)
	}

	if iter.Err() != nil {
		return nil, errors.Wrap(errors.ErrCodeFetchFailed, "error iterating polygon aggregates", iter.Err())
	}

	return candles, nil
}

func polygonTimespan(timeframe types.Timeframe) (int, models.Timespan, error) {
	switch timeframe {
	case types.TimeframeOneMinute:
		return 1, models.Minute, nil
	case types.TimeframeFiveMinutes:
		return 5, models.Minute, nil
	case types.TimeframeFifteenMinutes:
		return 15, models.Minute, nil
	case types.TimeframeOneHour:
		return 1, models.Hour, nil
	case types.TimeframeSixHours:
		return 6, models.Hour, nil
	case types.TimeframeOneDay:
		return 1, models.Day, nil
	default:
		return 0, "", errors.Newf(errors.ErrCodeInvalidTimeframe, "unsupported timeframe %q", timeframe)
	}
}
