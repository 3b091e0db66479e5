package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tradeforge/vela/internal/marketdata"
	"github.com/tradeforge/vela/internal/store"
	"github.com/tradeforge/vela/internal/types"
	"github.com/tradeforge/vela/pkg/errors"
)

func backfillAction(ctx context.Context, cmd *cli.Command) error {
	symbol := cmd.String("symbol")

	timeframe, err := types.ParseTimeframe(cmd.String("timeframe"))
	if err != nil {
		return err
	}

	fetcher, err := marketdata.NewFetcher(marketdata.Config{
		Provider:      marketdata.ProviderType(cmd.String("provider")),
		PolygonAPIKey: os.Getenv("POLYGON_API_KEY"),
	})
	if err != nil {
		return err
	}

	history, ok := fetcher.(marketdata.HistoryFetcher)
	if !ok {
		return errors.Newf(errors.ErrCodeProviderNotFound, "provider %s cannot fetch candle ranges", cmd.String("provider"))
	}

	recorder, err := store.NewDuckDBRecorder(cmd.String("db"))
	if err != nil {
		return err
	}
	defer recorder.Close()

	stored, err := marketdata.Backfill(ctx, history, recorder, symbol, timeframe, cmd.Timestamp("from"), cmd.Timestamp("to"))
	if err != nil {
		return err
	}

	fmt.Printf("\nStored %d candles for %s %s\n", stored, symbol, timeframe)

	return nil
}
