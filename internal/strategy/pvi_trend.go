package strategy

import (
	"github.com/tradeforge/vela/internal/indicator"
	"github.com/tradeforge/vela/internal/types"
)

// PVITrend follows the positive volume index against its EMA: buy when the
// index crosses above a rising EMA, sell when it sinks below while falling.
// An index below its EMA always requests a stop tighten, signal or not.
type PVITrend struct {
	cfg PVITrendConfig

	pvi *indicator.PVI
}

func NewPVITrend(cfg PVITrendConfig) *PVITrend {
	return &PVITrend{
		cfg: cfg,
		pvi: indicator.NewPVI(cfg.EMAPeriod),
	}
}

func (s *PVITrend) Key() types.StrategyKey {
	return types.StrategyPVITrend
}

func (s *PVITrend) Recompute(history []types.Candle, newPeriods int) error {
	s.pvi.Calculate(history, newPeriods)

	return nil
}

func (s *PVITrend) CheckBuy(history []types.Candle, currentPrice float64) BuyDecision {
	cur, okCur := indicator.Recent(s.pvi.Values(), 1)
	prev, okPrev := indicator.Recent(s.pvi.Values(), 2)

	if !okCur || !okPrev {
		return BuyDecision{}
	}

	if indicator.HasCrossover(true, s.cfg.Confirm, s.pvi.Values(), s.pvi.Signal()) && cur > prev {
		return BuyDecision{Signal: true, Reason: types.ReasonBuyPVITrend}
	}

	return BuyDecision{}
}

func (s *PVITrend) CheckSell(history []types.Candle, currentPrice float64) SellDecision {
	cur, okCur := indicator.Recent(s.pvi.Values(), 1)
	prev, okPrev := indicator.Recent(s.pvi.Values(), 2)
	ema, okEMA := indicator.Recent(s.pvi.Signal(), 1)

	if !okCur || !okPrev || !okEMA {
		return SellDecision{}
	}

	var decision SellDecision

	if cur < ema {
		decision.TightenStop = true

		if cur < prev {
			decision.Signal = true
			decision.Reason = types.ReasonSellPVITrend
		}
	}

	return decision
}
