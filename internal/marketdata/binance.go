package marketdata

import (
	"context"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"

	"github.com/tradeforge/vela/internal/types"
	"github.com/tradeforge/vela/pkg/errors"
)

// binancePageLimit is the kline page size the API allows per request.
const binancePageLimit = 500

// BinanceFetcher reads public klines and ticker prices from Binance. The
// endpoints need no credentials.
type BinanceFetcher struct {
	client *binance.Client
}

// NewBinanceFetcher creates a fetcher against the public Binance API.
func NewBinanceFetcher() *BinanceFetcher {
	return &BinanceFetcher{client: binance.NewClient("", "")}
}

// Candles implements Fetcher.
func (b *BinanceFetcher) Candles(ctx context.Context, symbol string, timeframe types.Timeframe, limit int) ([]types.Candle, error) {
	if err := timeframe.Validate(); err != nil {
		return nil, err
	}

	klines, err := b.client.NewKlinesService().
		Symbol(symbol).
		Interval(string(timeframe)).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetchFailed, "failed to fetch klines from binance", err)
	}

	return candlesFromKlines(klines)
}

// Price implements Fetcher.
func (b *BinanceFetcher) Price(ctx context.Context, symbol string) (float64, error) {
	prices, err := b.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeFetchFailed, "failed to fetch ticker price from binance", err)
	}

	if len(prices) == 0 {
		return 0, errors.Newf(errors.ErrCodePriceUnavailable, "no ticker price for %s", symbol)
	}

	price, err := strconv.ParseFloat(prices[0].Price, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeParseFailed, err, "malformed ticker price %q", prices[0].Price)
	}

	return price, nil
}

// CandlesRange implements HistoryFetcher, paging through the API limit.
func (b *BinanceFetcher) CandlesRange(ctx context.Context, symbol string, timeframe types.Timeframe, from, to time.Time) ([]types.Candle, error) {
	if err := timeframe.Validate(); err != nil {
		return nil, err
	}

	var out []types.Candle

	start := from.UnixMilli()
	end := to.UnixMilli()

	for start < end {
		klines, err := b.client.NewKlinesService().
			Symbol(symbol).
			Interval(string(timeframe)).
			StartTime(start).
			EndTime(end).
			Limit(binancePageLimit).
			Do(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFetchFailed, "failed to fetch klines from binance", err)
		}

		page, err := candlesFromKlines(klines)
		if err != nil {
			return nil, err
		}

		out = append(out, page...)

		if len(klines) < binancePageLimit {
			break
		}

		start = klines[len(klines)-1].CloseTime + 1
	}

	return out, nil
}

func candlesFromKlines(klines []*binance.Kline) ([]types.Candle, error) {
	candles := make([]types.Candle, 0, len(klines))

	for _, k := range klines {
		candle, err := candleFromKline(k)
		if err != nil {
			return nil, err
		}

		candles = append(candles, candle)
	}

	return candles, nil
}

func candleFromKline(k *binance.Kline) (types.Candle, error) {
	fields := [5]string{k.Open, k.High, k.Low, k.Close, k.Volume}

	var parsed [5]float64

	for i, raw := range fields {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return types.Candle{}, errors.Wrapf(errors.ErrCodeParseFailed, err, "malformed kline field %q", raw)
		}

		parsed[i] = v
	}

	candle := types.Candle{
		Time:   time.UnixMilli(k.OpenTime).UTC(),
		Open:   parsed[0],
		High:   parsed[1],
		Low:    parsed[2],
		Close:  parsed[3],
		Volume: parsed[4],
	}

	if err := candle.Validate(); err != nil {
		return types.Candle{}, err
	}

	return candle, nil
}
