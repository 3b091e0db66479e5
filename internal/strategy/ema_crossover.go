package strategy

import (
	"github.com/tradeforge/vela/internal/indicator"
	"github.com/tradeforge/vela/internal/types"
)

// EMACrossover trades the crossover of a short and a long EMA, with the
// close relative to the short EMA as a direction filter.
type EMACrossover struct {
	cfg EMACrossoverConfig

	emaShort *indicator.EMA
	emaLong  *indicator.EMA
}

func NewEMACrossover(cfg EMACrossoverConfig) *EMACrossover {
	return &EMACrossover{
		cfg:      cfg,
		emaShort: indicator.NewEMA(cfg.ShortPeriod),
		emaLong:  indicator.NewEMA(cfg.LongPeriod),
	}
}

func (s *EMACrossover) Key() types.StrategyKey {
	return types.StrategyEMACrossover
}

func (s *EMACrossover) Recompute(history []types.Candle, newPeriods int) error {
	s.emaShort.Calculate(history, newPeriods)
	s.emaLong.Calculate(history, newPeriods)

	return nil
}

func (s *EMACrossover) CheckBuy(history []types.Candle, currentPrice float64) BuyDecision {
	close, ok := lastClose(history, 1)
	if !ok {
		return BuyDecision{}
	}

	short, ok := indicator.Recent(s.emaShort.Values(), 1)
	if !ok {
		return BuyDecision{}
	}

	if indicator.HasCrossover(true, s.cfg.Confirm, s.emaShort.Values(), s.emaLong.Values()) && close > short {
		return BuyDecision{Signal: true, Reason: types.ReasonBuyEMACrossover}
	}

	return BuyDecision{}
}

func (s *EMACrossover) CheckSell(history []types.Candle, currentPrice float64) SellDecision {
	close, ok := lastClose(history, 1)
	if !ok {
		return SellDecision{}
	}

	short, ok := indicator.Recent(s.emaShort.Values(), 1)
	if !ok {
		return SellDecision{}
	}

	if indicator.HasCrossover(false, s.cfg.Confirm, s.emaShort.Values(), s.emaLong.Values()) && close < short {
		return SellDecision{Signal: true, Reason: types.ReasonSellEMACrossover}
	}

	return SellDecision{}
}
