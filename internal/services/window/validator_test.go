package window

import (
	"errors"
	"math"
	"testing"
	"time"

	"GoldPulse/internal/domain/models"
)

// definedRows builds n fully-defined feature rows with distinct closes.
func definedRows(n int) []models.FeatureRow {
	rows := make([]models.FeatureRow, n)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range rows {
		c := 2000.0 + float64(i)
		rows[i] = models.FeatureRow{
			PriceBar: models.PriceBar{
				Date:  start.AddDate(0, 0, i),
				Open:  c,
				High:  c + 5,
				Low:   c - 5,
				Close: c,
			},
			SMA20:       c - 1,
			EMA20:       c - 0.5,
			RSI14:       55,
			BBLower20:   c - 10,
			BBMiddle20:  c,
			BBUpper20:   c + 10,
			BBBandwidth: 1,
			BBPercent:   0.5,
			ATR14:       8,
		}
	}
	return rows
}

func checkOf(t *testing.T, err error) string {
	t.Helper()
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	return verr.Check
}

func TestBuildSuccess(t *testing.T) {
	rows := definedRows(40)
	w, err := Build(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := w.LastClose(), rows[39].Close; got != want {
		t.Errorf("last close = %v, want %v", got, want)
	}
	// The window is the most recent 29 rows in order.
	if got, want := w[0][0], rows[40-models.WindowSize].Close; got != want {
		t.Errorf("first window close = %v, want %v", got, want)
	}
}

func TestBuildTooFewRows(t *testing.T) {
	_, err := Build(definedRows(models.WindowSize - 1))
	if got := checkOf(t, err); got != models.CheckRows {
		t.Errorf("check = %q, want %q", got, models.CheckRows)
	}
}

func TestBuildEmptyInput(t *testing.T) {
	_, err := Build(nil)
	if got := checkOf(t, err); got != models.CheckRows {
		t.Errorf("check = %q, want %q", got, models.CheckRows)
	}
}

func TestBuildNaNInTail(t *testing.T) {
	rows := definedRows(40)
	rows[35].RSI14 = math.NaN()
	_, err := Build(rows)
	if got := checkOf(t, err); got != models.CheckMissing {
		t.Errorf("check = %q, want %q", got, models.CheckMissing)
	}
}

func TestBuildNaNOutsideTailIgnored(t *testing.T) {
	rows := definedRows(40)
	rows[0].SMA20 = math.NaN() // outside the most recent 29 rows
	if _, err := Build(rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildInfiniteValue(t *testing.T) {
	rows := definedRows(40)
	rows[39].ATR14 = math.Inf(1)
	_, err := Build(rows)
	if got := checkOf(t, err); got != models.CheckFinite {
		t.Errorf("check = %q, want %q", got, models.CheckFinite)
	}
}

func TestBuildNegativeInfinity(t *testing.T) {
	rows := definedRows(40)
	rows[20].BBLower20 = math.Inf(-1)
	_, err := Build(rows)
	if got := checkOf(t, err); got != models.CheckFinite {
		t.Errorf("check = %q, want %q", got, models.CheckFinite)
	}
}

func TestBuildRowsCheckedBeforeValues(t *testing.T) {
	// With too few rows AND a NaN, the row-count check must win.
	rows := definedRows(10)
	rows[5].EMA20 = math.NaN()
	_, err := Build(rows)
	if got := checkOf(t, err); got != models.CheckRows {
		t.Errorf("check = %q, want %q", got, models.CheckRows)
	}
}
