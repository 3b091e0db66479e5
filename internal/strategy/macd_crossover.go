package strategy

import (
	"github.com/tradeforge/vela/internal/indicator"
	"github.com/tradeforge/vela/internal/types"
)

// MACDCrossover trades the macd line crossing its signal line.
type MACDCrossover struct {
	cfg MACDCrossoverConfig

	macd *indicator.MACD
}

func NewMACDCrossover(cfg MACDCrossoverConfig) *MACDCrossover {
	return &MACDCrossover{
		cfg:  cfg,
		macd: indicator.NewMACD(cfg.ShortPeriod, cfg.LongPeriod, cfg.SignalPeriod),
	}
}

func (s *MACDCrossover) Key() types.StrategyKey {
	return types.StrategyMACDCrossover
}

func (s *MACDCrossover) Recompute(history []types.Candle, newPeriods int) error {
	s.macd.Calculate(history, newPeriods)

	return nil
}

func (s *MACDCrossover) CheckBuy(history []types.Candle, currentPrice float64) BuyDecision {
	if indicator.HasCrossover(true, s.cfg.Confirm, s.macd.MacdLine(), s.macd.SignalLine()) {
		return BuyDecision{Signal: true, Reason: types.ReasonBuyMACDCrossover}
	}

	return BuyDecision{}
}

func (s *MACDCrossover) CheckSell(history []types.Candle, currentPrice float64) SellDecision {
	if indicator.HasCrossover(false, s.cfg.Confirm, s.macd.MacdLine(), s.macd.SignalLine()) {
		return SellDecision{Signal: true, Reason: types.ReasonSellMACDCrossover}
	}

	return SellDecision{}
}
