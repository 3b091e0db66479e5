package strategy

import (
	"github.com/tradeforge/vela/internal/indicator"
	"github.com/tradeforge/vela/internal/types"
)

// MovingAverageTrend trades a fast/slow EMA crossover filtered two ways: the
// crossover must be a clean trend move (both lines advancing), and the live
// price must sit on the signal side of a long trend EMA.
type MovingAverageTrend struct {
	cfg MovingAverageTrendConfig

	emaFast  *indicator.EMA
	emaSlow  *indicator.EMA
	emaTrend *indicator.EMA
}

func NewMovingAverageTrend(cfg MovingAverageTrendConfig) *MovingAverageTrend {
	return &MovingAverageTrend{
		cfg:      cfg,
		emaFast:  indicator.NewEMA(cfg.FastPeriod),
		emaSlow:  indicator.NewEMA(cfg.SlowPeriod),
		emaTrend: indicator.NewEMA(cfg.TrendPeriod),
	}
}

func (s *MovingAverageTrend) Key() types.StrategyKey {
	return types.StrategyMovingAverageTrend
}

func (s *MovingAverageTrend) Recompute(history []types.Candle, newPeriods int) error {
	s.emaFast.Calculate(history, newPeriods)
	s.emaSlow.Calculate(history, newPeriods)
	s.emaTrend.Calculate(history, newPeriods)

	return nil
}

func (s *MovingAverageTrend) CheckBuy(history []types.Candle, currentPrice float64) BuyDecision {
	trend, ok := indicator.Recent(s.emaTrend.Values(), 1)
	if !ok {
		return BuyDecision{}
	}

	if indicator.HasTrendCrossover(true, s.cfg.Confirm, s.emaFast.Values(), s.emaSlow.Values()) && currentPrice > trend {
		return BuyDecision{Signal: true, Reason: types.ReasonBuyTrendCross}
	}

	return BuyDecision{}
}

func (s *MovingAverageTrend) CheckSell(history []types.Candle, currentPrice float64) SellDecision {
	trend, ok := indicator.Recent(s.emaTrend.Values(), 1)
	if !ok {
		return SellDecision{}
	}

	if indicator.HasTrendCrossover(false, s.cfg.Confirm, s.emaFast.Values(), s.emaSlow.Values()) && currentPrice < trend {
		return SellDecision{Signal: true, Reason: types.ReasonSellTrendCross}
	}

	return SellDecision{}
}
