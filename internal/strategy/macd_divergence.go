package strategy

import (
	"github.com/tradeforge/vela/internal/indicator"
	"github.com/tradeforge/vela/internal/types"
)

// MACDDivergence trades disagreement between price extremes and the macd
// histogram over a short window.
type MACDDivergence struct {
	cfg MACDDivergenceConfig

	macd *indicator.MACD
}

func NewMACDDivergence(cfg MACDDivergenceConfig) *MACDDivergence {
	return &MACDDivergence{
		cfg:  cfg,
		macd: indicator.NewMACD(cfg.ShortPeriod, cfg.LongPeriod, cfg.SignalPeriod),
	}
}

func (s *MACDDivergence) Key() types.StrategyKey {
	return types.StrategyMACDDivergence
}

func (s *MACDDivergence) Recompute(history []types.Candle, newPeriods int) error {
	s.macd.Calculate(history, newPeriods)

	return nil
}

func (s *MACDDivergence) CheckBuy(history []types.Candle, currentPrice float64) BuyDecision {
	if indicator.HasDivergence(true, s.cfg.Periods, closesFor(history), s.macd.Histogram()) {
		return BuyDecision{Signal: true, Reason: types.ReasonBuyMACDDivergence}
	}

	return BuyDecision{}
}

func (s *MACDDivergence) CheckSell(history []types.Candle, currentPrice float64) SellDecision {
	if indicator.HasDivergence(false, s.cfg.Periods, closesFor(history), s.macd.Histogram()) {
		return SellDecision{Signal: true, Reason: types.ReasonSellMACDDivergence}
	}

	return SellDecision{}
}
