package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/tradeforge/vela/internal/config"
	"github.com/tradeforge/vela/internal/gateway"
	"github.com/tradeforge/vela/internal/logger"
	"github.com/tradeforge/vela/internal/marketdata"
	"github.com/tradeforge/vela/internal/notify"
	"github.com/tradeforge/vela/internal/orchestrator"
	"github.com/tradeforge/vela/internal/scheduler"
	"github.com/tradeforge/vela/internal/server"
	"github.com/tradeforge/vela/internal/store"
)

func runAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadFromFile(cmd.String("config"))
	if err != nil {
		return err
	}

	log, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fetcher, err := marketdata.NewFetcher(cfg.MarketData)
	if err != nil {
		return err
	}

	var orderGateway gateway.OrderGateway
	if cfg.PaperTrading {
		orderGateway = gateway.NewPaperGateway()
		log.Info("paper trading enabled, orders are simulated")
	} else {
		orderGateway = gateway.NewBinanceGateway(cfg.Binance, cfg.UseTestnet)
	}

	metrics := server.NewMetrics()

	var recorder store.Recorder = store.NopRecorder{}
	if cfg.Store.Enabled {
		duckdb, err := store.NewDuckDBRecorder(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer duckdb.Close()

		recorder = duckdb
	}

	recorder = metrics.WrapRecorder(recorder)

	strategyKeys, err := cfg.StrategyKeys()
	if err != nil {
		return err
	}

	timeframes, err := cfg.ParsedTimeframes()
	if err != nil {
		return err
	}

	notifier := notify.NewLogNotifier(log)

	orchestrators := make([]*orchestrator.Orchestrator, 0, len(cfg.Instruments))

	for _, symbol := range cfg.Instruments {
		orch, err := orchestrator.New(orchestrator.Params{
			Symbol:         symbol,
			StrategyKeys:   strategyKeys,
			RiskRatios:     cfg.RiskRatios,
			Timeframes:     timeframes,
			StrategyConfig: cfg.Strategy,
			FundsPerAgent:  cfg.FundsPerAgent,
			StopRatio:      cfg.StopTradingRatio,
			HistoryLimit:   cfg.HistoryLimit,
			Fetcher:        fetcher,
			Gateway:        orderGateway,
			Policy:         gateway.DefaultPolicy(),
			Notifier:       notifier,
			Recorder:       recorder,
			Observer:       metrics,
			Logger:         log,
		})
		if err != nil {
			return err
		}

		orchestrators = append(orchestrators, orch)
		metrics.AddSources(orch)
	}

	sched := scheduler.New(ctx, log)
	for _, orch := range orchestrators {
		if err := sched.Register(cfg.TickSchedule, orch); err != nil {
			return err
		}
	}

	var httpServer *server.Server
	if cfg.Server.Enabled {
		httpServer = server.New(cfg.Server.Addr, orchestrators, metrics, log)
		httpServer.Start()
	}

	log.Info("trading loop started",
		zap.Strings("instruments", cfg.Instruments),
		zap.Int("agents_per_instrument", len(strategyKeys)*len(cfg.RiskRatios)*len(timeframes)),
		zap.String("schedule", cfg.TickSchedule),
	)

	sched.Start()

	<-ctx.Done()
	log.Info("shutting down")

	sched.Stop()

	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("http shutdown failed", zap.Error(err))
		}
	}

	return nil
}
