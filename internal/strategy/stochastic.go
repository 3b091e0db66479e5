package strategy

import (
	"github.com/tradeforge/vela/internal/indicator"
	"github.com/tradeforge/vela/internal/types"
)

// Stochastic trades the smoothed oscillator leaving its bands, filtered by
// the close relative to two price SMAs: buy on an oversold exit above both
// averages, sell on an overbought exit below both.
type Stochastic struct {
	cfg StochasticConfig

	stoch *indicator.Stochastic

	smaShort []float64
	smaLong  []float64
}

func NewStochastic(cfg StochasticConfig) *Stochastic {
	return &Stochastic{
		cfg:   cfg,
		stoch: indicator.NewStochastic(cfg.KPeriod, cfg.DPeriod),
	}
}

func (s *Stochastic) Key() types.StrategyKey {
	return types.StrategyStochastic
}

func (s *Stochastic) Recompute(history []types.Candle, newPeriods int) error {
	s.stoch.Calculate(history, newPeriods)

	closes := closesFor(history)
	s.smaShort = indicator.SMASeries(closes, s.cfg.SMAShortPeriod)
	s.smaLong = indicator.SMASeries(closes, s.cfg.SMALongPeriod)

	return nil
}

func (s *Stochastic) CheckBuy(history []types.Candle, currentPrice float64) BuyDecision {
	close, cur, prev, short, long, ok := s.recent(history)
	if !ok {
		return BuyDecision{}
	}

	if close > short && close > long && prev < s.cfg.OverSold && cur > s.cfg.OverSold {
		return BuyDecision{Signal: true, Reason: types.ReasonBuyStochRecovery}
	}

	return BuyDecision{}
}

func (s *Stochastic) CheckSell(history []types.Candle, currentPrice float64) SellDecision {
	close, cur, prev, short, long, ok := s.recent(history)
	if !ok {
		return SellDecision{}
	}

	if close < short && close < long && prev > s.cfg.OverBought && cur < s.cfg.OverBought {
		return SellDecision{Signal: true, Reason: types.ReasonSellStochExit}
	}

	return SellDecision{}
}

func (s *Stochastic) recent(history []types.Candle) (close, cur, prev, short, long float64, ok bool) {
	close, okClose := lastClose(history, 1)
	cur, okCur := indicator.Recent(s.stoch.PercentD(), 1)
	prev, okPrev := indicator.Recent(s.stoch.PercentD(), 2)
	short, okShort := indicator.Recent(s.smaShort, 1)
	long, okLong := indicator.Recent(s.smaLong, 1)

	ok = okClose && okCur && okPrev && okShort && okLong

	return close, cur, prev, short, long, ok
}
