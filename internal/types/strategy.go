package types

// StrategyKey identifies one concrete strategy variant in the registry.
type StrategyKey string

const (
	StrategyEMACrossover       StrategyKey = "ema_crossover"
	StrategyMACDCrossover      StrategyKey = "macd_crossover"
	StrategyMACDDivergence     StrategyKey = "macd_divergence"
	StrategyCCIADX             StrategyKey = "cci_adx"
	StrategyMovingAverageTrend StrategyKey = "ma_trend"
	StrategyPVITrend           StrategyKey = "pvi_trend"
	StrategyRSIADX             StrategyKey = "rsi_adx"
	StrategyRSIMACDDivergence  StrategyKey = "rsi_macd_divergence"
	StrategyStochastic         StrategyKey = "stochastic"
	StrategyStochRSI           StrategyKey = "stoch_rsi"
)

// AllStrategyKeys lists every registered strategy in a stable order.
func AllStrategyKeys() []StrategyKey {
	return []StrategyKey{
		StrategyEMACrossover,
		StrategyMACDCrossover,
		StrategyMACDDivergence,
		StrategyCCIADX,
		StrategyMovingAverageTrend,
		StrategyPVITrend,
		StrategyRSIADX,
		StrategyRSIMACDDivergence,
		StrategyStochastic,
		StrategyStochRSI,
	}
}
