// Package strategy holds the trading strategy contract and its concrete
// variants. Each variant owns the indicator instances it reads, so two
// agents running the same variant with different parameters never share
// state.
package strategy

import (
	"github.com/go-playground/validator/v10"

	"github.com/tradeforge/vela/internal/indicator"
	"github.com/tradeforge/vela/internal/types"
	"github.com/tradeforge/vela/pkg/errors"
)

// BuyDecision is the outcome of a buy check.
type BuyDecision struct {
	Signal bool
	Reason types.ReasonBuy
}

// SellDecision is the outcome of a sell check. TightenStop asks the agent to
// pull the hard stop closer to the current price without closing the
// position; it can be set with or without Signal.
type SellDecision struct {
	Signal      bool
	Reason      types.ReasonSell
	TightenStop bool
}

// Strategy turns indicator state into trading decisions. Recompute refreshes
// the cached indicator series from candle history; the check methods read
// only cached state plus the live price. A strategy whose indicators lack
// enough history reports no signal, never an error.
type Strategy interface {
	Key() types.StrategyKey
	Recompute(history []types.Candle, newPeriods int) error
	CheckBuy(history []types.Candle, currentPrice float64) BuyDecision
	CheckSell(history []types.Candle, currentPrice float64) SellDecision
}

// New builds the strategy registered under key with its parameters taken
// from cfg. The registry is closed: an unknown key is a configuration error,
// and so is a parameter set that fails the variant's validation tags.
func New(key types.StrategyKey, cfg Config) (Strategy, error) {
	var (
		params any
		build  func() Strategy
	)

	switch key {
	case types.StrategyEMACrossover:
		params, build = cfg.EMACrossover, func() Strategy { return NewEMACrossover(cfg.EMACrossover) }
	case types.StrategyMACDCrossover:
		params, build = cfg.MACDCrossover, func() Strategy { return NewMACDCrossover(cfg.MACDCrossover) }
	case types.StrategyMACDDivergence:
		params, build = cfg.MACDDivergence, func() Strategy { return NewMACDDivergence(cfg.MACDDivergence) }
	case types.StrategyCCIADX:
		params, build = cfg.CCIADX, func() Strategy { return NewCCIADX(cfg.CCIADX) }
	case types.StrategyMovingAverageTrend:
		params, build = cfg.MovingAverageTrend, func() Strategy { return NewMovingAverageTrend(cfg.MovingAverageTrend) }
	case types.StrategyPVITrend:
		params, build = cfg.PVITrend, func() Strategy { return NewPVITrend(cfg.PVITrend) }
	case types.StrategyRSIADX:
		params, build = cfg.RSIADX, func() Strategy { return NewRSIADX(cfg.RSIADX) }
	case types.StrategyRSIMACDDivergence:
		params, build = cfg.RSIMACDDivergence, func() Strategy { return NewRSIMACDDivergence(cfg.RSIMACDDivergence) }
	case types.StrategyStochastic:
		params, build = cfg.Stochastic, func() Strategy { return NewStochastic(cfg.Stochastic) }
	case types.StrategyStochRSI:
		params, build = cfg.StochRSI, func() Strategy { return NewStochRSI(cfg.StochRSI) }
	default:
		return nil, errors.Newf(errors.ErrCodeUnknownStrategy, "unknown strategy key: %s", key)
	}

	if err := validator.New().Struct(params); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStrategyConfigError, err, "invalid %s parameters", key)
	}

	return build(), nil
}

// lastClose returns the newest close in history, back candles from the end.
func lastClose(history []types.Candle, back int) (float64, bool) {
	if len(history) < back {
		return 0, false
	}

	return history[len(history)-back].Close, true
}

// lastCandle returns the newest candle.
func lastCandle(history []types.Candle) (types.Candle, bool) {
	if len(history) == 0 {
		return types.Candle{}, false
	}

	return history[len(history)-1], true
}

// closesFor trims the candle history to its closes for divergence scans.
func closesFor(history []types.Candle) []float64 {
	return indicator.Closes(history)
}
