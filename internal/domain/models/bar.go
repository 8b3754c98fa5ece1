package models

import (
	"math"
	"time"
)

// PriceBar represents one daily OHLCV record for the tracked instrument.
// Immutable once fetched.
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// FeatureRow is a PriceBar enriched with derived indicator columns.
// Indicator fields are NaN until enough trailing history exists for
// their window (warm-up), mirroring how the training pipeline left
// those rows undefined before dropping them.
type FeatureRow struct {
	PriceBar

	SMA20       float64
	EMA20       float64
	RSI14       float64
	BBLower20   float64
	BBMiddle20  float64
	BBUpper20   float64
	BBBandwidth float64
	BBPercent   float64
	ATR14       float64
}

// Defined reports whether every feature column consumed by the model
// carries a real value. BBMiddle/BBBandwidth/BBPercent are computed
// alongside the bands but not part of the model input, so they do not
// gate definedness on their own (they share the Bollinger warm-up anyway).
func (r FeatureRow) Defined() bool {
	for _, v := range r.ModelColumns() {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}

// ModelColumns returns the seven feature values in the exact column
// order the model was trained against.
func (r FeatureRow) ModelColumns() [FeatureCount]float64 {
	return [FeatureCount]float64{r.Close, r.SMA20, r.EMA20, r.RSI14, r.BBLower20, r.BBUpper20, r.ATR14}
}

const (
	// WindowSize is the number of trading days fed into the model.
	WindowSize = 29
	// FeatureCount is the number of feature columns per day.
	FeatureCount = 7
)

// FeatureColumns names the model input columns, in order.
var FeatureColumns = [FeatureCount]string{
	"close", "sma_20", "ema_20", "rsi_14", "bbl_20", "bbu_20", "atr_14",
}

// Window is the validated, fixed-shape model input matrix.
type Window [WindowSize][FeatureCount]float64

// LastClose returns the most recent closing price in the window.
// The close column is first by construction.
func (w Window) LastClose() float64 {
	return w[WindowSize-1][0]
}

// Direction labels for the forecast, kept byte-for-byte compatible with
// the consumers of the original API.
const (
	DirectionBullish = "BULLISH (UP)"
	DirectionBearish = "BEARISH (DOWN)"
)

// PredictionResult is the outcome of one forecast pipeline run.
// Derived per request, never persisted.
type PredictionResult struct {
	CurrentPrice   float64
	PredictedPrice float64
	PriceChange    float64
	Direction      string
}
