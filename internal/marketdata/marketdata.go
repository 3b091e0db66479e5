// Package marketdata fetches candles and live prices from external
// providers. Fetch failures are tick-local: callers abandon the tick and
// retry on the next one.
package marketdata

import (
	"context"
	"time"

	"github.com/tradeforge/vela/internal/types"
	"github.com/tradeforge/vela/pkg/errors"
)

// ProviderType selects a market data provider.
type ProviderType string

const (
	ProviderBinance ProviderType = "binance"
	ProviderPolygon ProviderType = "polygon"
)

// Fetcher supplies the candles and prices a trading tick runs on.
type Fetcher interface {
	// Candles returns up to limit of the most recent closed candles,
	// oldest first.
	Candles(ctx context.Context, symbol string, timeframe types.Timeframe, limit int) ([]types.Candle, error)
	// Price returns the current trade price.
	Price(ctx context.Context, symbol string) (float64, error)
}

// HistoryFetcher supplies candle ranges for backfills.
type HistoryFetcher interface {
	// CandlesRange returns the closed candles between from and to, oldest
	// first, paging through provider limits as needed.
	CandlesRange(ctx context.Context, symbol string, timeframe types.Timeframe, from, to time.Time) ([]types.Candle, error)
}

// Config holds provider selection and credentials.
type Config struct {
	Provider ProviderType `yaml:"provider" validate:"required,oneof=binance polygon"`
	// PolygonAPIKey is required for the polygon provider.
	PolygonAPIKey string `yaml:"polygon_api_key"`
}

// NewFetcher builds the configured provider.
func NewFetcher(cfg Config) (Fetcher, error) {
	switch cfg.Provider {
	case ProviderBinance:
		return NewBinanceFetcher(), nil
	case ProviderPolygon:
		return NewPolygonFetcher(cfg.PolygonAPIKey)
	default:
		return nil, errors.Newf(errors.ErrCodeProviderNotFound, "unsupported market data provider: %s", cfg.Provider)
	}
}
