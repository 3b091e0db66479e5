package strategy

import (
	"github.com/tradeforge/vela/internal/indicator"
	"github.com/tradeforge/vela/internal/types"
)

// CCIADX trades CCI reversals out of its bands, but only while ADX says the
// market is not trending. While a trend is on, a band touch against the
// dominant direction requests a hard-stop tighten instead of an exit.
type CCIADX struct {
	cfg CCIADXConfig

	cci *indicator.CCI
	adx *indicator.ADX
}

func NewCCIADX(cfg CCIADXConfig) *CCIADX {
	return &CCIADX{
		cfg: cfg,
		cci: indicator.NewCCI(cfg.CCIPeriod),
		adx: indicator.NewADX(cfg.ADXPeriod),
	}
}

func (s *CCIADX) Key() types.StrategyKey {
	return types.StrategyCCIADX
}

func (s *CCIADX) Recompute(history []types.Candle, newPeriods int) error {
	s.cci.Calculate(history, newPeriods)
	s.adx.Calculate(history, newPeriods)

	return nil
}

func (s *CCIADX) CheckBuy(history []types.Candle, currentPrice float64) BuyDecision {
	candle, ok := lastCandle(history)
	if !ok {
		return BuyDecision{}
	}

	adx, okADX := indicator.Recent(s.adx.Values(), 1)
	cci, okCCI := indicator.Recent(s.cci.Values(), 1)

	if !okADX || !okCCI {
		return BuyDecision{}
	}

	if adx < s.cfg.Trend && cci < s.cfg.CCILow && candle.IsBullish() {
		return BuyDecision{Signal: true, Reason: types.ReasonBuyCCIReversal}
	}

	return BuyDecision{}
}

func (s *CCIADX) CheckSell(history []types.Candle, currentPrice float64) SellDecision {
	candle, ok := lastCandle(history)
	if !ok {
		return SellDecision{}
	}

	adx, okADX := indicator.Recent(s.adx.Values(), 1)
	cci, okCCI := indicator.Recent(s.cci.Values(), 1)

	if !okADX || !okCCI {
		return SellDecision{}
	}

	var decision SellDecision

	if adx < s.cfg.Trend && cci > s.cfg.CCIHigh && candle.IsBearish() {
		decision.Signal = true
		decision.Reason = types.ReasonSellCCIReversal
	}

	if adx >= s.cfg.Trend {
		plus, okPlus := indicator.Recent(s.adx.PlusDI(), 1)
		minus, okMinus := indicator.Recent(s.adx.MinusDI(), 1)

		if okPlus && okMinus {
			switch {
			case plus < minus && cci <= s.cfg.CCILow && candle.IsBullish():
				decision.TightenStop = true
			case plus > minus && cci >= s.cfg.CCIHigh && candle.IsBearish():
				decision.TightenStop = true
			}
		}
	}

	return decision
}
