// Package store persists orders, transactions, and agent events for later
// analysis. Recording is best-effort: a write failure must never abort a
// trading tick, so callers log and continue.
package store

import (
	"context"

	"github.com/tradeforge/vela/internal/types"
)

// Recorder is an append-only sink for trading activity.
type Recorder interface {
	RecordOrder(ctx context.Context, agentID string, order types.Order) error
	RecordTransaction(ctx context.Context, agentID string, tx types.Transaction) error
	RecordEvent(ctx context.Context, agentID, event, detail string) error
	RecordCandles(ctx context.Context, symbol string, timeframe types.Timeframe, candles []types.Candle) error
	Close() error
}

// NopRecorder discards everything. Used when persistence is disabled.
type NopRecorder struct{}

func (NopRecorder) RecordOrder(context.Context, string, types.Order) error { return nil }

func (NopRecorder) RecordTransaction(context.Context, string, types.Transaction) error { return nil }

func (NopRecorder) RecordEvent(context.Context, string, string, string) error { return nil }

func (NopRecorder) RecordCandles(context.Context, string, types.Timeframe, []types.Candle) error {
	return nil
}

func (NopRecorder) Close() error { return nil }
