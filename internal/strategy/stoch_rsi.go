package strategy

import (
	"github.com/tradeforge/vela/internal/indicator"
	"github.com/tradeforge/vela/internal/types"
)

// StochRSI buys oversold pullbacks inside a fresh short-over-long SMA trend.
// The previous tick must show the trend or the pullback had not started
// yet, which keeps the strategy from entering an established move late. The
// exit is the trend breaking: short SMA falling below long.
type StochRSI struct {
	cfg StochRSIConfig

	stochRSI *indicator.StochRSI

	smaShort []float64
	smaLong  []float64
}

func NewStochRSI(cfg StochRSIConfig) *StochRSI {
	return &StochRSI{
		cfg:      cfg,
		stochRSI: indicator.NewStochRSI(cfg.RSIPeriod, cfg.StochPeriod, cfg.DPeriod),
	}
}

func (s *StochRSI) Key() types.StrategyKey {
	return types.StrategyStochRSI
}

func (s *StochRSI) Recompute(history []types.Candle, newPeriods int) error {
	s.stochRSI.Calculate(history, newPeriods)

	closes := closesFor(history)
	s.smaShort = indicator.SMASeries(closes, s.cfg.SMAShortPeriod)
	s.smaLong = indicator.SMASeries(closes, s.cfg.SMALongPeriod)

	return nil
}

func (s *StochRSI) CheckBuy(history []types.Candle, currentPrice float64) BuyDecision {
	close, okClose := lastClose(history, 1)
	closePrev, okClosePrev := lastClose(history, 2)
	short, okShort := indicator.Recent(s.smaShort, 1)
	long, okLong := indicator.Recent(s.smaLong, 1)
	shortPrev, okShortPrev := indicator.Recent(s.smaShort, 2)
	longPrev, okLongPrev := indicator.Recent(s.smaLong, 2)
	stoch, okStoch := indicator.Recent(s.stochRSI.Values(), 1)
	stochPrev, okStochPrev := indicator.Recent(s.stochRSI.Values(), 2)

	if !okClose || !okClosePrev || !okShort || !okLong || !okShortPrev || !okLongPrev || !okStoch || !okStochPrev {
		return BuyDecision{}
	}

	if short > long && close < short && stoch < s.cfg.OverSold {
		// Only enter where the previous tick lacked one of the conditions,
		// meaning the setup just formed.
		if shortPrev < longPrev || closePrev > shortPrev || stochPrev >= s.cfg.OverSold {
			return BuyDecision{Signal: true, Reason: types.ReasonBuyStochRSIPull}
		}
	}

	return BuyDecision{}
}

func (s *StochRSI) CheckSell(history []types.Candle, currentPrice float64) SellDecision {
	short, okShort := indicator.Recent(s.smaShort, 1)
	long, okLong := indicator.Recent(s.smaLong, 1)

	if !okShort || !okLong {
		return SellDecision{}
	}

	if short < long {
		return SellDecision{Signal: true, Reason: types.ReasonSellStochRSIExit}
	}

	return SellDecision{}
}
