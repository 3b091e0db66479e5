// Package config loads and validates the trading runtime configuration.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/tradeforge/vela/internal/gateway"
	"github.com/tradeforge/vela/internal/marketdata"
	"github.com/tradeforge/vela/internal/strategy"
	"github.com/tradeforge/vela/internal/types"
	"github.com/tradeforge/vela/pkg/errors"
)

// StoreConfig controls persistence of orders, transactions, and candles.
type StoreConfig struct {
	Enabled bool `yaml:"enabled"`
	// Path is the DuckDB database file. Empty means in-memory.
	Path string `yaml:"path"`
}

// ServerConfig controls the HTTP status server.
type ServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Config is the full runtime configuration, normally loaded from a YAML
// file.
type Config struct {
	// Instruments are the symbols to trade, one orchestrator each.
	Instruments []string `yaml:"instruments" validate:"required,min=1,dive,required"`

	// Strategies selects strategy variants by key. Empty means all of them.
	Strategies []string `yaml:"strategies"`

	// RiskRatios are the hard-stop distances agents are created with.
	RiskRatios []float64 `yaml:"risk_ratios" validate:"required,min=1,dive,gt=0,lt=1"`

	// Timeframes are the candle periods agents are created with.
	Timeframes []string `yaml:"timeframes" validate:"required,min=1,dive,required"`

	// FundsPerAgent is the quote-currency budget each agent starts with.
	FundsPerAgent float64 `yaml:"funds_per_agent" validate:"required,gt=0"`

	// StopTradingRatio stops an agent whose funds fall below this fraction
	// of its starting funds. Zero disables the latch.
	StopTradingRatio float64 `yaml:"stop_trading_ratio" validate:"gte=0,lt=1"`

	// HistoryLimit is how many candles are fetched and retained per
	// timeframe. Zero uses the orchestrator default.
	HistoryLimit int `yaml:"history_limit" validate:"gte=0"`

	// TickSchedule is a cron expression driving the tick loop.
	TickSchedule string `yaml:"tick_schedule"`

	// PaperTrading routes orders to the simulated gateway instead of the
	// exchange.
	PaperTrading bool `yaml:"paper_trading"`

	// UseTestnet points the Binance gateway at the testnet.
	UseTestnet bool `yaml:"use_testnet"`

	MarketData marketdata.Config     `yaml:"market_data"`
	Binance    gateway.BinanceConfig `yaml:"binance"`
	Strategy   strategy.Config       `yaml:"strategy"`
	Store      StoreConfig           `yaml:"store"`
	Server     ServerConfig          `yaml:"server"`
}

// DefaultConfig returns a runnable paper-trading configuration.
func DefaultConfig() Config {
	return Config{
		Instruments:      []string{"BTCUSDT"},
		RiskRatios:       []float64{0.05},
		Timeframes:       []string{string(types.TimeframeOneHour)},
		FundsPerAgent:    1000,
		StopTradingRatio: 0.5,
		TickSchedule:     "@every 1m",
		PaperTrading:     true,
		MarketData: marketdata.Config{
			Provider: marketdata.ProviderBinance,
		},
		Strategy: strategy.DefaultConfig(),
		Server: ServerConfig{
			Enabled: true,
			Addr:    ":8080",
		},
	}
}

// LoadFromFile reads and validates a YAML configuration file. Fields absent
// from the file keep their defaults.
func LoadFromFile(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	return Parse(content)
}

// Parse unmarshals and validates YAML configuration content.
func Parse(content []byte) (Config, error) {
	cfg := DefaultConfig()

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks structural constraints and that every strategy key and
// timeframe is a known value.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if _, err := c.ParsedTimeframes(); err != nil {
		return err
	}

	if _, err := c.StrategyKeys(); err != nil {
		return err
	}

	if c.TickSchedule == "" {
		return errors.New(errors.ErrCodeInvalidConfiguration, "tick_schedule must not be empty")
	}

	if !c.PaperTrading {
		if err := c.Binance.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// StrategyKeys resolves the configured strategy names. An empty selection
// means every registered strategy.
func (c *Config) StrategyKeys() ([]types.StrategyKey, error) {
	if len(c.Strategies) == 0 {
		return types.AllStrategyKeys(), nil
	}

	known := make(map[types.StrategyKey]bool, len(types.AllStrategyKeys()))
	for _, key := range types.AllStrategyKeys() {
		known[key] = true
	}

	keys := make([]types.StrategyKey, 0, len(c.Strategies))

	for _, name := range c.Strategies {
		key := types.StrategyKey(name)
		if !known[key] {
			return nil, errors.Newf(errors.ErrCodeUnknownStrategy, "unknown strategy %q in config", name)
		}

		keys = append(keys, key)
	}

	return keys, nil
}

// ParsedTimeframes converts the configured timeframe strings.
func (c *Config) ParsedTimeframes() ([]types.Timeframe, error) {
	timeframes := make([]types.Timeframe, 0, len(c.Timeframes))

	for _, raw := range c.Timeframes {
		timeframe, err := types.ParseTimeframe(raw)
		if err != nil {
			return nil, err
		}

		timeframes = append(timeframes, timeframe)
	}

	return timeframes, nil
}
