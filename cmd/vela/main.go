package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tradeforge/vela/internal/version"
)

func main() {
	cmd := &cli.Command{
		Name:    "vela",
		Usage:   "Run competing trading agents against crypto markets",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run the trading loop from a YAML config",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to the YAML config file",
						Value:   "config.yaml",
					},
				},
				Action: runAction,
			},
			{
				Name:  "backfill",
				Usage: "Download historical candles into the store",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "symbol",
						Aliases:  []string{"s"},
						Usage:    "Instrument symbol, e.g. BTCUSDT",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "timeframe",
						Aliases: []string{"t"},
						Usage:   "Candle timeframe (1m, 5m, 15m, 1h, 6h, 1d)",
						Value:   "1h",
					},
					&cli.TimestampFlag{
						Name:     "from",
						Usage:    "Start date in `YYYY-MM-DD` format",
						Required: true,
						Config: cli.TimestampConfig{
							Layouts: []string{"2006-01-02"},
						},
					},
					&cli.TimestampFlag{
						Name:  "to",
						Usage: "End date in `YYYY-MM-DD` format. Defaults to now.",
						Value: time.Now(),
						Config: cli.TimestampConfig{
							Layouts: []string{"2006-01-02"},
						},
					},
					&cli.StringFlag{
						Name:    "provider",
						Aliases: []string{"p"},
						Usage:   "Data provider (binance, polygon)",
						Value:   "binance",
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the DuckDB database file",
						Value:   "vela.db",
					},
				},
				Action: backfillAction,
			},
			{
				Name:  "dashboard",
				Usage: "Live leaderboard view against a running status server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "server",
						Usage: "Base URL of the status server",
						Value: "http://localhost:8080",
					},
					&cli.DurationFlag{
						Name:  "refresh",
						Usage: "Poll interval",
						Value: 2 * time.Second,
					},
				},
				Action: dashboardAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
