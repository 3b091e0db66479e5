package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tradeforge/vela/internal/gateway"
	"github.com/tradeforge/vela/internal/logger"
	"github.com/tradeforge/vela/internal/orchestrator"
	"github.com/tradeforge/vela/internal/strategy"
	"github.com/tradeforge/vela/internal/types"
	"github.com/tradeforge/vela/pkg/errors"
)

type stubFetcher struct{}

func (stubFetcher) Candles(context.Context, string, types.Timeframe, int) ([]types.Candle, error) {
	return nil, nil
}

func (stubFetcher) Price(context.Context, string) (float64, error) {
	return 100, nil
}

type SchedulerTestSuite struct {
	suite.Suite
	orch *orchestrator.Orchestrator
}

func TestSchedulerTestSuite(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}

func (s *SchedulerTestSuite) SetupTest() {
	orch, err := orchestrator.New(orchestrator.Params{
		Symbol:         "BTCUSDT",
		StrategyKeys:   []types.StrategyKey{types.StrategyEMACrossover},
		RiskRatios:     []float64{0.05},
		Timeframes:     []types.Timeframe{types.TimeframeOneHour},
		StrategyConfig: strategy.DefaultConfig(),
		FundsPerAgent:  1000,
		Fetcher:        stubFetcher{},
		Gateway:        gateway.NewPaperGateway(),
		Policy:         gateway.DefaultPolicy(),
	})
	s.Require().NoError(err)

	s.orch = orch
}

func (s *SchedulerTestSuite) TestRegisterAcceptsEverySyntax() {
	sched := New(context.Background(), logger.NewNopLogger())
	s.Require().NoError(sched.Register("@every 1m", s.orch))
}

func (s *SchedulerTestSuite) TestRegisterAcceptsCronExpression() {
	sched := New(context.Background(), logger.NewNopLogger())
	s.Require().NoError(sched.Register("*/5 * * * *", s.orch))
}

func (s *SchedulerTestSuite) TestRegisterRejectsBadSpec() {
	sched := New(context.Background(), logger.NewNopLogger())

	err := sched.Register("not a schedule", s.orch)
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (s *SchedulerTestSuite) TestStartStopIsIdempotentEnough() {
	sched := New(context.Background(), logger.NewNopLogger())
	s.Require().NoError(sched.Register("@every 1h", s.orch))

	sched.Start()
	sched.Stop()
}
