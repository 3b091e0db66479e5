package strategy

import (
	"github.com/tradeforge/vela/internal/indicator"
	"github.com/tradeforge/vela/internal/types"
)

// RSIADX trades RSI support/resistance touches confirmed by the directional
// movement lines crossing in the matching direction. The touch is judged at
// the live price, as if the forming period closed right now, so a breakout
// between candle closes is not missed.
type RSIADX struct {
	cfg RSIADXConfig

	rsi *indicator.RSI
	adx *indicator.ADX
}

func NewRSIADX(cfg RSIADXConfig) *RSIADX {
	return &RSIADX{
		cfg: cfg,
		rsi: indicator.NewRSI(cfg.RSIPeriod),
		adx: indicator.NewADX(cfg.ADXPeriod),
	}
}

func (s *RSIADX) Key() types.StrategyKey {
	return types.StrategyRSIADX
}

func (s *RSIADX) Recompute(history []types.Candle, newPeriods int) error {
	s.rsi.Calculate(history, newPeriods)
	s.adx.Calculate(history, newPeriods)

	return nil
}

func (s *RSIADX) CheckBuy(history []types.Candle, currentPrice float64) BuyDecision {
	rsi, ok := s.rsi.ValueAt(history, currentPrice)
	if !ok {
		return BuyDecision{}
	}

	if rsi <= s.cfg.Support && indicator.HasCrossover(true, s.cfg.Confirm, s.adx.PlusDI(), s.adx.MinusDI()) {
		return BuyDecision{Signal: true, Reason: types.ReasonBuyRSIBreakout}
	}

	return BuyDecision{}
}

func (s *RSIADX) CheckSell(history []types.Candle, currentPrice float64) SellDecision {
	rsi, ok := s.rsi.ValueAt(history, currentPrice)
	if !ok {
		return SellDecision{}
	}

	if rsi >= s.cfg.Resistance && indicator.HasCrossover(false, s.cfg.Confirm, s.adx.PlusDI(), s.adx.MinusDI()) {
		return SellDecision{Signal: true, Reason: types.ReasonSellRSIBreakdown}
	}

	return SellDecision{}
}
