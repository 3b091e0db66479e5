package types

// ReasonBuy identifies the strategy condition that produced a buy signal.
// The taxonomy is stable: each strategy condition maps to exactly one code,
// and win/loss attribution depends on that mapping staying put.
type ReasonBuy string

const (
	ReasonBuyEMACrossover   ReasonBuy = "ema_crossover"
	ReasonBuyMACDCrossover  ReasonBuy = "macd_crossover"
	ReasonBuyMACDDivergence ReasonBuy = "macd_divergence"
	ReasonBuyCCIReversal    ReasonBuy = "cci_reversal"
	ReasonBuyTrendCross     ReasonBuy = "trend_cross"
	ReasonBuyPVITrend       ReasonBuy = "pvi_trend"
	ReasonBuyRSIBreakout    ReasonBuy = "rsi_breakout"
	ReasonBuyRSIDivergence  ReasonBuy = "rsi_divergence"
	ReasonBuyStochRecovery  ReasonBuy = "stoch_recovery"
	ReasonBuyStochRSIPull   ReasonBuy = "stoch_rsi_pullback"
)

var reasonBuyDescriptions = map[ReasonBuy]string{
	ReasonBuyEMACrossover:   "bullish ema crossover with price above short ema",
	ReasonBuyMACDCrossover:  "macd line crossed above signal line",
	ReasonBuyMACDDivergence: "bullish divergence between price and macd histogram",
	ReasonBuyCCIReversal:    "cci oversold in a weak trend with a bullish candle",
	ReasonBuyTrendCross:     "fast ema crossed above slow ema with price above trend ema",
	ReasonBuyPVITrend:       "pvi crossed above its ema and is rising",
	ReasonBuyRSIBreakout:    "rsi at support with dm+ crossing above dm-",
	ReasonBuyRSIDivergence:  "rsi at support with bullish macd divergence",
	ReasonBuyStochRecovery:  "stochastic left oversold with price above its smas",
	ReasonBuyStochRSIPull:   "stoch rsi oversold pullback at the start of a trend",
}

// Description returns the human-readable explanation for the reason code.
func (r ReasonBuy) Description() string {
	return reasonBuyDescriptions[r]
}

// ReasonSell identifies why a position was closed.
type ReasonSell string

const (
	ReasonSellHardStop       ReasonSell = "hard_stop"
	ReasonSellEMACrossover   ReasonSell = "ema_crossover_exit"
	ReasonSellMACDCrossover  ReasonSell = "macd_crossover_exit"
	ReasonSellMACDDivergence ReasonSell = "macd_divergence_exit"
	ReasonSellCCIReversal    ReasonSell = "cci_reversal_exit"
	ReasonSellTrendCross     ReasonSell = "trend_cross_exit"
	ReasonSellPVITrend       ReasonSell = "pvi_trend_exit"
	ReasonSellRSIBreakdown   ReasonSell = "rsi_breakdown"
	ReasonSellRSIDivergence  ReasonSell = "rsi_divergence_exit"
	ReasonSellStochExit      ReasonSell = "stoch_band_exit"
	ReasonSellStochRSIExit   ReasonSell = "stoch_rsi_exit"
)

var reasonSellDescriptions = map[ReasonSell]string{
	ReasonSellHardStop:       "price crossed the hard stop",
	ReasonSellEMACrossover:   "bearish ema crossover with price below short ema",
	ReasonSellMACDCrossover:  "macd line crossed below signal line",
	ReasonSellMACDDivergence: "bearish divergence between price and macd histogram",
	ReasonSellCCIReversal:    "cci overbought in a weak trend with a bearish candle",
	ReasonSellTrendCross:     "fast ema crossed below slow ema with price below trend ema",
	ReasonSellPVITrend:       "pvi fell below its ema and is falling",
	ReasonSellRSIBreakdown:   "rsi at resistance with dm+ crossing below dm-",
	ReasonSellRSIDivergence:  "rsi at resistance with bearish macd divergence",
	ReasonSellStochExit:      "stochastic left overbought with price below its smas",
	ReasonSellStochRSIExit:   "short sma fell below long sma",
}

// Description returns the human-readable explanation for the reason code.
func (r ReasonSell) Description() string {
	return reasonSellDescriptions[r]
}

// AllReasonsSell lists every sell reason in a stable order, for reporting.
func AllReasonsSell() []ReasonSell {
	return []ReasonSell{
		ReasonSellHardStop,
		ReasonSellEMACrossover,
		ReasonSellMACDCrossover,
		ReasonSellMACDDivergence,
		ReasonSellCCIReversal,
		ReasonSellTrendCross,
		ReasonSellPVITrend,
		ReasonSellRSIBreakdown,
		ReasonSellRSIDivergence,
		ReasonSellStochExit,
		ReasonSellStochRSIExit,
	}
}
