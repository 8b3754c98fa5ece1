package features

import (
	"math"

	"GoldPulse/internal/domain/models"
)

// Indicator windows the model was trained against. Changing any of
// these breaks compatibility with the persisted scalers and weights.
const (
	trendWindow = 20 // SMA, EMA, Bollinger
	rsiWindow   = 14
	atrWindow   = 14
	bbStdDev    = 2.0
)

// WarmupRows is the number of leading rows whose slowest indicator
// (the 20-day trend family) is still undefined.
const WarmupRows = trendWindow - 1

// Enrich computes the derived indicator columns for a price series.
// The result has exactly the same length as the input; rows inside an
// indicator's warm-up carry NaN in that column. Dropping undefined
// rows is the caller's decision, not this package's.
func Enrich(bars []models.PriceBar) []models.FeatureRow {
	rows := make([]models.FeatureRow, len(bars))
	closes := make([]float64, len(bars))
	for i, b := range bars {
		rows[i].PriceBar = b
		closes[i] = b.Close
	}

	sma := rollingMean(closes, trendWindow)
	ema := exponentialMean(closes, trendWindow)
	rsi := relativeStrength(closes, rsiWindow)
	lower, middle, upper := bollinger(closes, trendWindow, bbStdDev)
	atr := averageTrueRange(bars, atrWindow)

	for i := range rows {
		rows[i].SMA20 = sma[i]
		rows[i].EMA20 = ema[i]
		rows[i].RSI14 = rsi[i]
		rows[i].BBLower20 = lower[i]
		rows[i].BBMiddle20 = middle[i]
		rows[i].BBUpper20 = upper[i]
		rows[i].BBBandwidth = bandwidth(lower[i], middle[i], upper[i])
		rows[i].BBPercent = percentB(closes[i], lower[i], upper[i])
		rows[i].ATR14 = atr[i]
	}
	return rows
}

// DropWarmup returns the suffix of rows whose model columns are all
// defined. Input order is preserved.
func DropWarmup(rows []models.FeatureRow) []models.FeatureRow {
	out := make([]models.FeatureRow, 0, len(rows))
	for _, r := range rows {
		if r.Defined() {
			out = append(out, r)
		}
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// rollingMean is a simple moving average; the first period-1 entries
// are NaN.
func rollingMean(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if len(values) < period {
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// exponentialMean seeds the EMA with the simple mean of the first
// period values, then applies the standard 2/(period+1) recurrence.
// This matches the training pipeline's SMA-seeded EMA.
func exponentialMean(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if len(values) < period {
		return out
	}
	var sum float64
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	ema := sum / float64(period)
	out[period-1] = ema

	alpha := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		ema = (values[i]-ema)*alpha + ema
		out[i] = ema
	}
	return out
}

// relativeStrength computes Wilder-smoothed RSI. The first defined
// value sits at index period (it needs period price changes).
func relativeStrength(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if len(values) < period+1 {
		return out
	}

	var gains, losses float64
	for i := 1; i <= period; i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(values); i++ {
		change := values[i] - values[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - (100.0 / (1.0 + rs))
}

// bollinger returns the lower, middle, and upper bands at the given
// standard-deviation multiple. Standard deviation is the population
// form, as in the training features.
func bollinger(values []float64, period int, stdDev float64) (lower, middle, upper []float64) {
	lower = nanSlice(len(values))
	middle = nanSlice(len(values))
	upper = nanSlice(len(values))
	if len(values) < period {
		return lower, middle, upper
	}
	for i := period - 1; i < len(values); i++ {
		var sum float64
		for j := i - period + 1; j <= i; j++ {
			sum += values[j]
		}
		mean := sum / float64(period)

		var variance float64
		for j := i - period + 1; j <= i; j++ {
			d := values[j] - mean
			variance += d * d
		}
		sd := math.Sqrt(variance / float64(period))

		middle[i] = mean
		lower[i] = mean - sd*stdDev
		upper[i] = mean + sd*stdDev
	}
	return lower, middle, upper
}

func bandwidth(lower, middle, upper float64) float64 {
	if middle == 0 {
		return math.NaN()
	}
	return 100.0 * (upper - lower) / middle
}

func percentB(close, lower, upper float64) float64 {
	span := upper - lower
	if span == 0 {
		return math.NaN()
	}
	return (close - lower) / span
}

// averageTrueRange computes Wilder-smoothed ATR from high/low/close.
// The true range at index i uses the previous close, so the first
// defined ATR sits at index period.
func averageTrueRange(bars []models.PriceBar, period int) []float64 {
	out := nanSlice(len(bars))
	if len(bars) < period+1 {
		return out
	}

	tr := make([]float64, len(bars))
	for i := 1; i < len(bars); i++ {
		hl := bars[i].High - bars[i].Low
		hc := math.Abs(bars[i].High - bars[i-1].Close)
		lc := math.Abs(bars[i].Low - bars[i-1].Close)
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	var sum float64
	for i := 1; i <= period; i++ {
		sum += tr[i]
	}
	atr := sum / float64(period)
	out[period] = atr

	for i := period + 1; i < len(bars); i++ {
		atr = (atr*float64(period-1) + tr[i]) / float64(period)
		out[i] = atr
	}
	return out
}
