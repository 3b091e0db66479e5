package types

import (
	"time"

	"github.com/tradeforge/vela/pkg/errors"
)

// Candle is a single OHLCV period, ordered oldest to newest within a series.
type Candle struct {
	Time   time.Time `yaml:"time" json:"time" csv:"time"`
	Open   float64   `yaml:"open" json:"open" csv:"open"`
	High   float64   `yaml:"high" json:"high" csv:"high"`
	Low    float64   `yaml:"low" json:"low" csv:"low"`
	Close  float64   `yaml:"close" json:"close" csv:"close"`
	Volume float64   `yaml:"volume" json:"volume" csv:"volume"`
}

// Validate checks the structural invariants of a candle. A malformed candle
// from upstream is a data-quality error, not something to silently correct.
func (c Candle) Validate() error {
	if c.Time.IsZero() {
		return errors.New(errors.ErrCodeInvalidCandle, "candle has zero time")
	}

	if c.Open < 0 || c.High < 0 || c.Low < 0 || c.Close < 0 || c.Volume < 0 {
		return errors.Newf(errors.ErrCodeInvalidCandle, "candle at %s has negative fields", c.Time)
	}

	if c.Low > c.Open || c.Low > c.Close || c.High < c.Open || c.High < c.Close {
		return errors.Newf(errors.ErrCodeInvalidCandle,
			"candle at %s violates low <= open,close <= high (o=%f h=%f l=%f c=%f)",
			c.Time, c.Open, c.High, c.Low, c.Close)
	}

	return nil
}

// IsBullish reports whether the candle closed above its open.
func (c Candle) IsBullish() bool {
	return c.Close > c.Open
}

// IsBearish reports whether the candle closed below its open.
func (c Candle) IsBearish() bool {
	return c.Close < c.Open
}

// Timeframe is the duration of one candle period.
type Timeframe string

const (
	TimeframeOneMinute      Timeframe = "1m"
	TimeframeFiveMinutes    Timeframe = "5m"
	TimeframeFifteenMinutes Timeframe = "15m"
	TimeframeOneHour        Timeframe = "1h"
	TimeframeSixHours       Timeframe = "6h"
	TimeframeOneDay         Timeframe = "1d"
)

var timeframeDurations = map[Timeframe]time.Duration{
	TimeframeOneMinute:      time.Minute,
	TimeframeFiveMinutes:    5 * time.Minute,
	TimeframeFifteenMinutes: 15 * time.Minute,
	TimeframeOneHour:        time.Hour,
	TimeframeSixHours:       6 * time.Hour,
	TimeframeOneDay:         24 * time.Hour,
}

// Duration returns the wall-clock length of one period.
func (t Timeframe) Duration() time.Duration {
	return timeframeDurations[t]
}

// Validate reports whether the timeframe is one of the supported values.
func (t Timeframe) Validate() error {
	if _, ok := timeframeDurations[t]; !ok {
		return errors.Newf(errors.ErrCodeInvalidTimeframe, "unsupported timeframe %q", string(t))
	}

	return nil
}

// ParseTimeframe converts a config string into a Timeframe.
func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(s)
	if err := tf.Validate(); err != nil {
		return "", err
	}

	return tf, nil
}
