package config

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tradeforge/vela/internal/marketdata"
	"github.com/tradeforge/vela/internal/types"
	"github.com/tradeforge/vela/pkg/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestDefaultConfigIsValid() {
	cfg := DefaultConfig()
	s.Require().NoError(cfg.Validate())

	keys, err := cfg.StrategyKeys()
	s.Require().NoError(err)
	s.Len(keys, len(types.AllStrategyKeys()))

	timeframes, err := cfg.ParsedTimeframes()
	s.Require().NoError(err)
	s.Equal([]types.Timeframe{types.TimeframeOneHour}, timeframes)
}

func (s *ConfigTestSuite) TestParseOverridesDefaults() {
	content := []byte(`
instruments:
  - ETHUSDT
  - BTCUSDT
strategies:
  - ema_crossover
  - rsi_adx
risk_ratios: [0.025, 0.05]
timeframes: ["15m", "1h"]
funds_per_agent: 250
stop_trading_ratio: 0.4
paper_trading: true
market_data:
  provider: binance
strategy:
  ema_crossover:
    short_period: 9
    long_period: 21
`)

	cfg, err := Parse(content)
	s.Require().NoError(err)

	s.Equal([]string{"ETHUSDT", "BTCUSDT"}, cfg.Instruments)
	s.Equal([]float64{0.025, 0.05}, cfg.RiskRatios)
	s.InDelta(250, cfg.FundsPerAgent, 1e-9)
	s.InDelta(0.4, cfg.StopTradingRatio, 1e-9)
	s.Equal(marketdata.ProviderBinance, cfg.MarketData.Provider)
	s.Equal(9, cfg.Strategy.EMACrossover.ShortPeriod)
	s.Equal(21, cfg.Strategy.EMACrossover.LongPeriod)

	keys, err := cfg.StrategyKeys()
	s.Require().NoError(err)
	s.Equal([]types.StrategyKey{types.StrategyEMACrossover, types.StrategyRSIADX}, keys)

	// Untouched defaults survive a partial file.
	s.Equal("@every 1m", cfg.TickSchedule)
}

func (s *ConfigTestSuite) TestRejectsUnknownStrategy() {
	cfg := DefaultConfig()
	cfg.Strategies = []string{"momentum_magic"}

	err := cfg.Validate()
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeUnknownStrategy))
}

func (s *ConfigTestSuite) TestRejectsUnknownTimeframe() {
	cfg := DefaultConfig()
	cfg.Timeframes = []string{"3h"}

	err := cfg.Validate()
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeInvalidTimeframe))
}

func (s *ConfigTestSuite) TestRejectsOutOfRangeRiskRatio() {
	cfg := DefaultConfig()
	cfg.RiskRatios = []float64{1.5}

	err := cfg.Validate()
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (s *ConfigTestSuite) TestLiveTradingRequiresCredentials() {
	cfg := DefaultConfig()
	cfg.PaperTrading = false

	err := cfg.Validate()
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))

	cfg.Binance.APIKey = "key"
	cfg.Binance.SecretKey = "secret"
	s.Require().NoError(cfg.Validate())
}

func (s *ConfigTestSuite) TestParseRejectsMalformedYAML() {
	_, err := Parse([]byte("instruments: ["))
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}
