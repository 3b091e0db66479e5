package strategy

// Config carries the parameters for every registered strategy variant. The
// zero value is not usable; start from DefaultConfig and override per
// instrument in the YAML config.
type Config struct {
	EMACrossover       EMACrossoverConfig       `yaml:"ema_crossover"`
	MACDCrossover      MACDCrossoverConfig      `yaml:"macd_crossover"`
	MACDDivergence     MACDDivergenceConfig     `yaml:"macd_divergence"`
	CCIADX             CCIADXConfig             `yaml:"cci_adx"`
	MovingAverageTrend MovingAverageTrendConfig `yaml:"ma_trend"`
	PVITrend           PVITrendConfig           `yaml:"pvi_trend"`
	RSIADX             RSIADXConfig             `yaml:"rsi_adx"`
	RSIMACDDivergence  RSIMACDDivergenceConfig  `yaml:"rsi_macd_divergence"`
	Stochastic         StochasticConfig         `yaml:"stochastic"`
	StochRSI           StochRSIConfig           `yaml:"stoch_rsi"`
}

type EMACrossoverConfig struct {
	ShortPeriod int `yaml:"short_period" validate:"gt=0"`
	LongPeriod  int `yaml:"long_period" validate:"gtfield=ShortPeriod"`
	Confirm     int `yaml:"confirm" validate:"gt=0"`
}

type MACDCrossoverConfig struct {
	ShortPeriod  int `yaml:"short_period" validate:"gt=0"`
	LongPeriod   int `yaml:"long_period" validate:"gtfield=ShortPeriod"`
	SignalPeriod int `yaml:"signal_period" validate:"gt=0"`
	Confirm      int `yaml:"confirm" validate:"gt=0"`
}

type MACDDivergenceConfig struct {
	ShortPeriod  int `yaml:"short_period" validate:"gt=0"`
	LongPeriod   int `yaml:"long_period" validate:"gtfield=ShortPeriod"`
	SignalPeriod int `yaml:"signal_period" validate:"gt=0"`
	Periods      int `yaml:"periods" validate:"gt=1"`
}

type CCIADXConfig struct {
	CCIPeriod int     `yaml:"cci_period" validate:"gt=0"`
	ADXPeriod int     `yaml:"adx_period" validate:"gt=0"`
	Trend     float64 `yaml:"trend" validate:"gt=0"`
	CCILow    float64 `yaml:"cci_low" validate:"lt=0"`
	CCIHigh   float64 `yaml:"cci_high" validate:"gt=0"`
}

type MovingAverageTrendConfig struct {
	FastPeriod  int `yaml:"fast_period" validate:"gt=0"`
	SlowPeriod  int `yaml:"slow_period" validate:"gtfield=FastPeriod"`
	TrendPeriod int `yaml:"trend_period" validate:"gtefield=SlowPeriod"`
	Confirm     int `yaml:"confirm" validate:"gt=0"`
}

type PVITrendConfig struct {
	EMAPeriod int `yaml:"ema_period" validate:"gt=0"`
	Confirm   int `yaml:"confirm" validate:"gt=0"`
}

type RSIADXConfig struct {
	RSIPeriod  int     `yaml:"rsi_period" validate:"gt=0"`
	ADXPeriod  int     `yaml:"adx_period" validate:"gt=0"`
	Support    float64 `yaml:"support" validate:"gt=0,ltfield=Resistance"`
	Resistance float64 `yaml:"resistance" validate:"lt=100"`
	Confirm    int     `yaml:"confirm" validate:"gt=0"`
}

type RSIMACDDivergenceConfig struct {
	RSIPeriod    int     `yaml:"rsi_period" validate:"gt=0"`
	ShortPeriod  int     `yaml:"short_period" validate:"gt=0"`
	LongPeriod   int     `yaml:"long_period" validate:"gtfield=ShortPeriod"`
	SignalPeriod int     `yaml:"signal_period" validate:"gt=0"`
	Support      float64 `yaml:"support" validate:"gt=0,ltfield=Resistance"`
	Resistance   float64 `yaml:"resistance" validate:"lt=100"`
}

type StochasticConfig struct {
	KPeriod        int     `yaml:"k_period" validate:"gt=0"`
	DPeriod        int     `yaml:"d_period" validate:"gt=0"`
	SMAShortPeriod int     `yaml:"sma_short_period" validate:"gt=0"`
	SMALongPeriod  int     `yaml:"sma_long_period" validate:"gtfield=SMAShortPeriod"`
	OverSold       float64 `yaml:"over_sold" validate:"gt=0,ltfield=OverBought"`
	OverBought     float64 `yaml:"over_bought" validate:"lt=100"`
}

type StochRSIConfig struct {
	RSIPeriod      int     `yaml:"rsi_period" validate:"gt=0"`
	StochPeriod    int     `yaml:"stoch_period" validate:"gt=0"`
	DPeriod        int     `yaml:"d_period" validate:"gt=0"`
	SMAShortPeriod int     `yaml:"sma_short_period" validate:"gt=0"`
	SMALongPeriod  int     `yaml:"sma_long_period" validate:"gtfield=SMAShortPeriod"`
	OverSold       float64 `yaml:"over_sold" validate:"gt=0,ltfield=OverBought"`
	OverBought     float64 `yaml:"over_bought" validate:"lt=1"`
}

// DefaultConfig returns the stock parameter set for every variant.
func DefaultConfig() Config {
	return Config{
		EMACrossover: EMACrossoverConfig{
			ShortPeriod: 12,
			LongPeriod:  26,
			Confirm:     2,
		},
		MACDCrossover: MACDCrossoverConfig{
			ShortPeriod:  12,
			LongPeriod:   26,
			SignalPeriod: 9,
			Confirm:      2,
		},
		MACDDivergence: MACDDivergenceConfig{
			ShortPeriod:  12,
			LongPeriod:   26,
			SignalPeriod: 9,
			Periods:      9,
		},
		CCIADX: CCIADXConfig{
			CCIPeriod: 4,
			ADXPeriod: 50,
			Trend:     15,
			CCILow:    -100,
			CCIHigh:   100,
		},
		MovingAverageTrend: MovingAverageTrendConfig{
			FastPeriod:  10,
			SlowPeriod:  20,
			TrendPeriod: 50,
			Confirm:     2,
		},
		PVITrend: PVITrendConfig{
			EMAPeriod: 200,
			Confirm:   2,
		},
		RSIADX: RSIADXConfig{
			RSIPeriod:  14,
			ADXPeriod:  14,
			Support:    30,
			Resistance: 70,
			Confirm:    2,
		},
		RSIMACDDivergence: RSIMACDDivergenceConfig{
			RSIPeriod:    12,
			ShortPeriod:  12,
			LongPeriod:   26,
			SignalPeriod: 9,
			Support:      30,
			Resistance:   70,
		},
		Stochastic: StochasticConfig{
			KPeriod:        12,
			DPeriod:        3,
			SMAShortPeriod: 10,
			SMALongPeriod:  50,
			OverSold:       20,
			OverBought:     80,
		},
		StochRSI: StochRSIConfig{
			RSIPeriod:      12,
			StochPeriod:    12,
			DPeriod:        3,
			SMAShortPeriod: 8,
			SMALongPeriod:  50,
			OverSold:       0.20,
			OverBought:     0.80,
		},
	}
}
