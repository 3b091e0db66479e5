package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/tradeforge/vela/internal/store"
	"github.com/tradeforge/vela/internal/types"
)

// backfillChunk is how much history is fetched and written per step.
const backfillChunk = 24 * time.Hour

// Backfill fetches historical candles day by day and writes them through
// the recorder. It returns the number of candles stored.
func Backfill(ctx context.Context, fetcher HistoryFetcher, recorder store.Recorder, symbol string, timeframe types.Timeframe, from, to time.Time) (int, error) {
	if err := timeframe.Validate(); err != nil {
		return 0, err
	}

	days := int(to.Sub(from)/backfillChunk) + 1
	bar := progressbar.NewOptions(days,
		progressbar.OptionSetDescription(fmt.Sprintf("Backfilling %s %s", symbol, timeframe)),
		progressbar.OptionShowCount(),
	)

	total := 0

	for start := from; start.Before(to); start = start.Add(backfillChunk) {
		end := start.Add(backfillChunk)
		if end.After(to) {
			end = to
		}

		candles, err := fetcher.CandlesRange(ctx, symbol, timeframe, start, end)
		if err != nil {
			return total, err
		}

		if len(candles) > 0 {
			if err := recorder.RecordCandles(ctx, symbol, timeframe, candles); err != nil {
				return total, err
			}

			total += len(candles)
		}

		_ = bar.Add(1)
	}

	_ = bar.Finish()

	return total, nil
}
