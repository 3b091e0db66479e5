package strategy

import (
	"github.com/tradeforge/vela/internal/indicator"
	"github.com/tradeforge/vela/internal/types"
)

// RSIMACDDivergence trades RSI support/resistance touches confirmed by a
// price/macd-line divergence over the signal window.
type RSIMACDDivergence struct {
	cfg RSIMACDDivergenceConfig

	rsi  *indicator.RSI
	macd *indicator.MACD
}

func NewRSIMACDDivergence(cfg RSIMACDDivergenceConfig) *RSIMACDDivergence {
	return &RSIMACDDivergence{
		cfg:  cfg,
		rsi:  indicator.NewRSI(cfg.RSIPeriod),
		macd: indicator.NewMACD(cfg.ShortPeriod, cfg.LongPeriod, cfg.SignalPeriod),
	}
}

func (s *RSIMACDDivergence) Key() types.StrategyKey {
	return types.StrategyRSIMACDDivergence
}

func (s *RSIMACDDivergence) Recompute(history []types.Candle, newPeriods int) error {
	s.rsi.Calculate(history, newPeriods)
	s.macd.Calculate(history, newPeriods)

	return nil
}

func (s *RSIMACDDivergence) CheckBuy(history []types.Candle, currentPrice float64) BuyDecision {
	rsi, ok := indicator.Recent(s.rsi.Values(), 1)
	if !ok {
		return BuyDecision{}
	}

	if rsi <= s.cfg.Support && indicator.HasDivergence(true, s.cfg.SignalPeriod, closesFor(history), s.macd.MacdLine()) {
		return BuyDecision{Signal: true, Reason: types.ReasonBuyRSIDivergence}
	}

	return BuyDecision{}
}

func (s *RSIMACDDivergence) CheckSell(history []types.Candle, currentPrice float64) SellDecision {
	rsi, ok := indicator.Recent(s.rsi.Values(), 1)
	if !ok {
		return SellDecision{}
	}

	if rsi >= s.cfg.Resistance && indicator.HasDivergence(false, s.cfg.SignalPeriod, closesFor(history), s.macd.MacdLine()) {
		return SellDecision{Signal: true, Reason: types.ReasonSellRSIDivergence}
	}

	return SellDecision{}
}
