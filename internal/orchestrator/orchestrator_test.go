package orchestrator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tradeforge/vela/internal/gateway"
	"github.com/tradeforge/vela/internal/strategy"
	"github.com/tradeforge/vela/internal/types"
	"github.com/tradeforge/vela/pkg/errors"
)

type fakeFetcher struct {
	mutex sync.Mutex

	candles     map[types.Timeframe][]types.Candle
	price       float64
	candlesErr  error
	priceErr    error
	candleCalls int
	priceCalls  int

	// block, when set, holds every Candles call until released
	block chan struct{}
}

func (f *fakeFetcher) Candles(_ context.Context, _ string, timeframe types.Timeframe, _ int) ([]types.Candle, error) {
	if f.block != nil {
		<-f.block
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.candleCalls++

	if f.candlesErr != nil {
		return nil, f.candlesErr
	}

	return f.candles[timeframe], nil
}

func (f *fakeFetcher) Price(context.Context, string) (float64, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.priceCalls++

	if f.priceErr != nil {
		return 0, f.priceErr
	}

	return f.price, nil
}

type countingObserver struct {
	processed int
	dropped   int
}

func (o *countingObserver) TickProcessed() { o.processed++ }
func (o *countingObserver) TickDropped()   { o.dropped++ }

func flatBatch(n int, close float64, timeframe types.Timeframe) []types.Candle {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]types.Candle, n)

	for i := range candles {
		candles[i] = types.Candle{
			Time:   base.Add(time.Duration(i) * timeframe.Duration()),
			Open:   close,
			High:   close,
			Low:    close,
			Close:  close,
			Volume: 1000,
		}
	}

	return candles
}

// zigzagBatch produces a price wave that flips direction every few periods,
// enough to trip short-period EMA crossovers both ways.
func zigzagBatch(n int, timeframe types.Timeframe) []types.Candle {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]types.Candle, n)
	price := 100.0
	step := 4.0

	for i := range candles {
		if i%6 == 0 {
			step = -step
		}

		price += step
		candles[i] = types.Candle{
			Time:   base.Add(time.Duration(i) * timeframe.Duration()),
			Open:   price,
			High:   price + 1,
			Low:    price - 1,
			Close:  price,
			Volume: 1000,
		}
	}

	return candles
}

type OrchestratorTestSuite struct {
	suite.Suite
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) newParams(fetcher *fakeFetcher) Params {
	return Params{
		Symbol:         "BTCUSDT",
		StrategyKeys:   []types.StrategyKey{types.StrategyEMACrossover},
		RiskRatios:     []float64{0.05},
		Timeframes:     []types.Timeframe{types.TimeframeOneHour},
		StrategyConfig: strategy.DefaultConfig(),
		FundsPerAgent:  1000,
		Fetcher:        fetcher,
		Gateway:        gateway.NewPaperGateway(),
		Policy:         gateway.DefaultPolicy(),
	}
}

func (s *OrchestratorTestSuite) TestBuildsFullCrossProduct() {
	params := s.newParams(&fakeFetcher{})
	params.StrategyKeys = []types.StrategyKey{types.StrategyEMACrossover, types.StrategyRSIADX}
	params.RiskRatios = []float64{0.05, 0.1, 0.2}
	params.Timeframes = []types.Timeframe{types.TimeframeOneHour, types.TimeframeOneDay}

	o, err := New(params)
	s.Require().NoError(err)
	s.Len(o.Agents(), 12)
}

func (s *OrchestratorTestSuite) TestRejectsEmptyCrossProduct() {
	params := s.newParams(&fakeFetcher{})
	params.RiskRatios = nil

	_, err := New(params)
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeNoAgents))
}

func (s *OrchestratorTestSuite) TestTickSyncsSeriesAndPrice() {
	fetcher := &fakeFetcher{
		candles: map[types.Timeframe][]types.Candle{
			types.TimeframeOneHour: flatBatch(30, 100, types.TimeframeOneHour),
		},
		price: 101.5,
	}

	observer := &countingObserver{}
	params := s.newParams(fetcher)
	params.Observer = observer

	o, err := New(params)
	s.Require().NoError(err)

	s.Require().NoError(o.Tick(context.Background()))

	s.Equal(30, o.series[types.TimeframeOneHour].Len())
	s.InDelta(101.5, o.LastPrice(), 1e-9)
	s.Equal(1, observer.processed)
	s.Zero(observer.dropped)

	// Same batch again appends nothing and stays idempotent.
	s.Require().NoError(o.Tick(context.Background()))
	s.Equal(30, o.series[types.TimeframeOneHour].Len())
	s.Equal(2, observer.processed)
}

func (s *OrchestratorTestSuite) TestFetchFailureAbandonsTick() {
	fetcher := &fakeFetcher{
		candlesErr: errors.New(errors.ErrCodeFetchFailed, "provider down"),
	}

	observer := &countingObserver{}
	params := s.newParams(fetcher)
	params.Observer = observer

	o, err := New(params)
	s.Require().NoError(err)

	err = o.Tick(context.Background())
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeFetchFailed))
	s.Zero(o.series[types.TimeframeOneHour].Len())
	s.Zero(o.LastPrice())
	s.Zero(observer.processed)

	// The provider recovers and the next tick proceeds normally.
	fetcher.mutex.Lock()
	fetcher.candlesErr = nil
	fetcher.candles = map[types.Timeframe][]types.Candle{
		types.TimeframeOneHour: flatBatch(10, 100, types.TimeframeOneHour),
	}
	fetcher.price = 100
	fetcher.mutex.Unlock()

	s.Require().NoError(o.Tick(context.Background()))
	s.Equal(10, o.series[types.TimeframeOneHour].Len())
}

func (s *OrchestratorTestSuite) TestOverlappingTickDropped() {
	fetcher := &fakeFetcher{
		candles: map[types.Timeframe][]types.Candle{
			types.TimeframeOneHour: flatBatch(10, 100, types.TimeframeOneHour),
		},
		price: 100,
		block: make(chan struct{}),
	}

	observer := &countingObserver{}
	params := s.newParams(fetcher)
	params.Observer = observer

	o, err := New(params)
	s.Require().NoError(err)

	started := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		close(started)
		done <- o.Tick(context.Background())
	}()

	<-started

	// Wait for the first tick to be inside the fetcher.
	s.Require().Eventually(func() bool {
		return o.inProgress.Load()
	}, time.Second, time.Millisecond)

	s.Require().NoError(o.Tick(context.Background()))
	s.Equal(1, observer.dropped)
	s.Zero(observer.processed)

	close(fetcher.block)
	s.Require().NoError(<-done)
	s.Equal(1, observer.processed)
}

func (s *OrchestratorTestSuite) TestLeaderboardRanksByAssetsWithStableTies() {
	fetcher := &fakeFetcher{
		candles: map[types.Timeframe][]types.Candle{
			types.TimeframeOneHour: flatBatch(10, 100, types.TimeframeOneHour),
		},
		price: 100,
	}

	params := s.newParams(fetcher)
	params.StrategyKeys = []types.StrategyKey{
		types.StrategyEMACrossover,
		types.StrategyMACDCrossover,
		types.StrategyRSIADX,
	}

	o, err := New(params)
	s.Require().NoError(err)
	s.Require().NoError(o.Tick(context.Background()))

	board := o.Leaderboard()
	s.Require().Len(board, 3)

	// All agents hold identical funds, so the board preserves creation order.
	s.Equal(types.StrategyEMACrossover, board[0].StrategyKey)
	s.Equal(types.StrategyMACDCrossover, board[1].StrategyKey)
	s.Equal(types.StrategyRSIADX, board[2].StrategyKey)

	for _, standing := range board {
		s.InDelta(1000, standing.Assets, 1e-9)
		s.False(standing.Stopped)
	}

	s.InDelta(3000, o.TotalAssets(), 1e-9)
	s.False(o.AllStopped())
	s.Zero(o.StoppedAgents())
	s.Zero(o.TransactionsClosed())
}

func (s *OrchestratorTestSuite) TestReadersSafeDuringTicks() {
	wave := zigzagBatch(120, types.TimeframeOneHour)

	fetcher := &fakeFetcher{
		candles: map[types.Timeframe][]types.Candle{
			types.TimeframeOneHour: wave[:10],
		},
		price: wave[9].Close,
	}

	params := s.newParams(fetcher)
	// Short periods so the wave actually trades, making the readers and
	// the tick touch the same wallets.
	params.StrategyConfig.EMACrossover = strategy.EMACrossoverConfig{
		ShortPeriod: 2,
		LongPeriod:  3,
		Confirm:     1,
	}

	o, err := New(params)
	s.Require().NoError(err)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for n := 10; n <= len(wave); n++ {
			fetcher.mutex.Lock()
			fetcher.candles[types.TimeframeOneHour] = wave[:n]
			fetcher.price = wave[n-1].Close
			fetcher.mutex.Unlock()

			s.NoError(o.Tick(context.Background()))
		}
	}()

	// The HTTP handlers and the metrics gauges call these from their own
	// goroutines while the scheduler ticks.
	for i := 0; i < 200; i++ {
		board := o.Leaderboard()
		s.Require().Len(board, 1)
		s.Positive(board[0].Assets)
		s.Positive(o.TotalAssets())
		o.AllStopped()
		o.StoppedAgents()
		o.TransactionsClosed()
	}

	<-done
	s.Positive(o.LastPrice())
}

func (s *OrchestratorTestSuite) TestBadBatchLeavesEverySeriesUntouched() {
	good := flatBatch(10, 100, types.TimeframeOneHour)
	bad := flatBatch(10, 100, types.TimeframeOneDay)
	bad[4].Time = bad[3].Time // out of order

	fetcher := &fakeFetcher{
		candles: map[types.Timeframe][]types.Candle{
			types.TimeframeOneHour: good,
			types.TimeframeOneDay:  bad,
		},
		price: 100,
	}

	params := s.newParams(fetcher)
	params.Timeframes = []types.Timeframe{types.TimeframeOneHour, types.TimeframeOneDay}

	o, err := New(params)
	s.Require().NoError(err)

	// The hourly batch is fine but the daily one is not: neither series
	// may advance, or a retried tick would see skewed histories.
	err = o.Tick(context.Background())
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeOutOfOrderCandle))
	s.Zero(o.series[types.TimeframeOneHour].Len())
	s.Zero(o.series[types.TimeframeOneDay].Len())
	s.Zero(o.LastPrice())

	fetcher.mutex.Lock()
	fetcher.candles[types.TimeframeOneDay] = flatBatch(10, 100, types.TimeframeOneDay)
	fetcher.mutex.Unlock()

	s.Require().NoError(o.Tick(context.Background()))
	s.Equal(10, o.series[types.TimeframeOneHour].Len())
	s.Equal(10, o.series[types.TimeframeOneDay].Len())
}
