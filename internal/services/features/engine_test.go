package features

import (
	"math"
	"testing"
	"time"

	"GoldPulse/internal/domain/models"
)

// linearBars builds a strictly rising daily series: close = 100 + 0.5*i,
// high/low one unit around it.
func linearBars(n int) []models.PriceBar {
	bars := make([]models.PriceBar, n)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		c := 100.0 + 0.5*float64(i)
		bars[i] = models.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   c - 0.25,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func TestEnrichLengthAndWarmup(t *testing.T) {
	const n = 90
	rows := Enrich(linearBars(n))
	if len(rows) != n {
		t.Fatalf("expected %d rows, got %d", n, len(rows))
	}

	// 20-day trend family undefined through index 18, defined at 19.
	if !math.IsNaN(rows[18].SMA20) || !math.IsNaN(rows[18].EMA20) || !math.IsNaN(rows[18].BBLower20) {
		t.Error("expected SMA/EMA/Bollinger undefined at index 18")
	}
	if math.IsNaN(rows[19].SMA20) || math.IsNaN(rows[19].EMA20) || math.IsNaN(rows[19].BBUpper20) {
		t.Error("expected SMA/EMA/Bollinger defined at index 19")
	}

	// 14-day oscillators undefined through index 13, defined at 14.
	if !math.IsNaN(rows[13].RSI14) || !math.IsNaN(rows[13].ATR14) {
		t.Error("expected RSI/ATR undefined at index 13")
	}
	if math.IsNaN(rows[14].RSI14) || math.IsNaN(rows[14].ATR14) {
		t.Error("expected RSI/ATR defined at index 14")
	}
}

func TestDropWarmupKeepsTail(t *testing.T) {
	const n = 90
	rows := Enrich(linearBars(n))
	usable := DropWarmup(rows)

	if len(usable) != n-WarmupRows {
		t.Fatalf("expected %d usable rows, got %d", n-WarmupRows, len(usable))
	}
	if len(usable) < n-20 {
		t.Fatalf("dropping warm-up left %d rows, want at least %d", len(usable), n-20)
	}
	for i, r := range usable {
		if !r.Defined() {
			t.Fatalf("row %d still undefined after DropWarmup", i)
		}
	}
	// Order preserved: last usable row is the last input row.
	if !usable[len(usable)-1].Date.Equal(rows[n-1].Date) {
		t.Error("DropWarmup reordered rows")
	}
}

func TestIndicatorValues(t *testing.T) {
	rows := Enrich(linearBars(90))

	// SMA of a linear series is the midpoint of its window.
	if got, want := rows[19].SMA20, 104.75; math.Abs(got-want) > 1e-9 {
		t.Errorf("SMA20[19] = %v, want %v", got, want)
	}
	// The EMA seed equals that SMA.
	if got, want := rows[19].EMA20, 104.75; math.Abs(got-want) > 1e-9 {
		t.Errorf("EMA20[19] = %v, want %v", got, want)
	}
	// A series with no down days pins RSI at 100.
	if got := rows[30].RSI14; math.Abs(got-100) > 1e-9 {
		t.Errorf("RSI14[30] = %v, want 100", got)
	}
	// High-low spread of 2 dominates the true range here, so ATR = 2.
	if got := rows[30].ATR14; math.Abs(got-2) > 1e-9 {
		t.Errorf("ATR14[30] = %v, want 2", got)
	}
	// Bands bracket the middle symmetrically.
	r := rows[40]
	if !(r.BBLower20 < r.BBMiddle20 && r.BBMiddle20 < r.BBUpper20) {
		t.Errorf("bands out of order: %v %v %v", r.BBLower20, r.BBMiddle20, r.BBUpper20)
	}
	if math.Abs((r.BBMiddle20-r.BBLower20)-(r.BBUpper20-r.BBMiddle20)) > 1e-9 {
		t.Error("bands not symmetric around middle")
	}
	if math.Abs(r.BBMiddle20-r.SMA20) > 1e-9 {
		t.Error("Bollinger middle should equal SMA20")
	}
	if r.BBBandwidth <= 0 {
		t.Errorf("bandwidth = %v, want positive", r.BBBandwidth)
	}
	if math.IsNaN(r.BBPercent) {
		t.Error("percent-b should be defined past warm-up")
	}
}

func TestEnrichShortSeries(t *testing.T) {
	rows := Enrich(linearBars(10))
	if len(rows) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(rows))
	}
	for i, r := range rows {
		if r.Defined() {
			t.Fatalf("row %d defined despite insufficient history", i)
		}
	}
	if len(DropWarmup(rows)) != 0 {
		t.Error("expected no usable rows from a 10-bar series")
	}
}

func TestRSIMixedSeries(t *testing.T) {
	// Alternating up/down closes keep RSI strictly inside (0, 100).
	bars := linearBars(60)
	for i := range bars {
		if i%2 == 1 {
			bars[i].Close -= 0.4
		}
	}
	rows := Enrich(bars)
	rsi := rows[59].RSI14
	if math.IsNaN(rsi) || rsi <= 0 || rsi >= 100 {
		t.Errorf("RSI14 = %v, want strictly inside (0, 100)", rsi)
	}
}
