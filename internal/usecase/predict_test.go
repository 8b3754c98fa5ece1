package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"GoldPulse/internal/domain/models"
	drepo "GoldPulse/internal/domain/repository"
	xlogger "GoldPulse/pkg/logger"
)

type stubModel struct {
	steps    int
	features int
	output   float64
	err      error
	lastIn   [][]float64
}

func (m *stubModel) StepCount() int    { return m.steps }
func (m *stubModel) FeatureCount() int { return m.features }

func (m *stubModel) Predict(window [][]float64) (float64, error) {
	m.lastIn = window
	return m.output, m.err
}

// shiftScaler adds a constant on Transform so the test can tell scaled
// input apart from raw input.
type shiftScaler struct{ offset float64 }

func (s shiftScaler) Transform(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = v + s.offset
		}
	}
	return out, nil
}

type scaleInverse struct{ factor float64 }

func (s scaleInverse) Inverse(v float64) float64 { return v * s.factor }

type stubStore struct {
	model   *stubModel
	scalerX drepo.FeatureScaler
	scalerY drepo.TargetScaler
	err     error
	loads   int
}

func (s *stubStore) Load(_, _, _ string) (drepo.SequenceModel, drepo.FeatureScaler, drepo.TargetScaler, error) {
	s.loads++
	if s.err != nil {
		return nil, nil, nil, s.err
	}
	return s.model, s.scalerX, s.scalerY, nil
}

func marketBars(n int) []models.PriceBar {
	bars := make([]models.PriceBar, n)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		c := 2000 + 0.5*float64(i)
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

func testPredictor(store drepo.ArtifactStore, bars []models.PriceBar) *Predictor {
	src := &scriptedSource{bars: bars}
	fetcher := testFetcherNoSleep(src)
	return NewPredictor(fetcher, store, xlogger.Nop(), nopMetrics{})
}

func testFetcherNoSleep(src *scriptedSource) *Fetcher {
	return NewFetcher(src, "GC=F", xlogger.Nop(), nopMetrics{},
		WithSleep(func(time.Duration) {}),
	)
}

func defaultRequest() *models.PredictRequest {
	return &models.PredictRequest{
		ModelPath:   "artifacts/gold_model.json",
		ScalerXPath: "artifacts/scaler_X.json",
		ScalerYPath: "artifacts/scaler_y.json",
	}
}

func TestPredictNextBullish(t *testing.T) {
	bars := marketBars(80)
	lastClose := bars[len(bars)-1].Close

	store := &stubStore{
		model:   &stubModel{steps: models.WindowSize, features: models.FeatureCount, output: 1.0},
		scalerX: shiftScaler{},
		scalerY: scaleInverse{factor: lastClose + 10},
	}

	res, err := testPredictor(store, bars).PredictNext(context.Background(), defaultRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CurrentPrice != lastClose {
		t.Errorf("current price = %v, want last close %v", res.CurrentPrice, lastClose)
	}
	if want := lastClose + 10; res.PredictedPrice != want {
		t.Errorf("predicted price = %v, want %v", res.PredictedPrice, want)
	}
	if res.PriceChange != 10 {
		t.Errorf("price change = %v, want 10", res.PriceChange)
	}
	if res.Direction != models.DirectionBullish {
		t.Errorf("direction = %q, want %q", res.Direction, models.DirectionBullish)
	}
}

func TestPredictNextZeroChangeIsBearish(t *testing.T) {
	bars := marketBars(80)
	lastClose := bars[len(bars)-1].Close

	store := &stubStore{
		model:   &stubModel{steps: models.WindowSize, features: models.FeatureCount, output: 1.0},
		scalerX: shiftScaler{},
		scalerY: scaleInverse{factor: lastClose},
	}

	res, err := testPredictor(store, bars).PredictNext(context.Background(), defaultRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PriceChange != 0 {
		t.Fatalf("price change = %v, want 0", res.PriceChange)
	}
	if res.Direction != models.DirectionBearish {
		t.Errorf("direction = %q, want %q on zero change", res.Direction, models.DirectionBearish)
	}
}

func TestPredictNextScalesBeforeInference(t *testing.T) {
	bars := marketBars(80)
	model := &stubModel{steps: models.WindowSize, features: models.FeatureCount, output: 0.5}
	store := &stubStore{model: model, scalerX: shiftScaler{offset: -2000}, scalerY: scaleInverse{factor: 1}}

	if _, err := testPredictor(store, bars).PredictNext(context.Background(), defaultRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(model.lastIn) != models.WindowSize {
		t.Fatalf("model received %d rows, want %d", len(model.lastIn), models.WindowSize)
	}
	if len(model.lastIn[0]) != models.FeatureCount {
		t.Fatalf("model received %d features, want %d", len(model.lastIn[0]), models.FeatureCount)
	}
	// Close sits in column 0; after the -2000 shift it must be far
	// below the raw price level.
	if got := model.lastIn[len(model.lastIn)-1][0]; got > 100 {
		t.Errorf("model input not scaled: last close column = %v", got)
	}
}

func TestPredictNextArtifactErrorPassthrough(t *testing.T) {
	aerr := &models.ArtifactError{Path: "artifacts/gold_model.json", NotFound: true}
	store := &stubStore{err: aerr}

	_, err := testPredictor(store, marketBars(80)).PredictNext(context.Background(), defaultRequest())
	var got *models.ArtifactError
	if !errors.As(err, &got) {
		t.Fatalf("expected ArtifactError, got %T: %v", err, err)
	}
	if !got.NotFound {
		t.Error("NotFound flag lost on passthrough")
	}
}

func TestPredictNextRejectsMismatchedModel(t *testing.T) {
	store := &stubStore{
		model:   &stubModel{steps: 10, features: models.FeatureCount},
		scalerX: shiftScaler{},
		scalerY: scaleInverse{factor: 1},
	}

	_, err := testPredictor(store, marketBars(80)).PredictNext(context.Background(), defaultRequest())
	var aerr *models.ArtifactError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected ArtifactError for shape mismatch, got %T: %v", err, err)
	}
	if aerr.NotFound {
		t.Error("shape mismatch must not be classified as missing file")
	}
}

func TestPredictNextShortHistoryFailsValidation(t *testing.T) {
	store := &stubStore{
		model:   &stubModel{steps: models.WindowSize, features: models.FeatureCount},
		scalerX: shiftScaler{},
		scalerY: scaleInverse{factor: 1},
	}

	// 30 bars leave about 11 usable rows after indicator warm-up.
	_, err := testPredictor(store, marketBars(30)).PredictNext(context.Background(), defaultRequest())
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if verr.Check != models.CheckRows {
		t.Errorf("check = %q, want %q", verr.Check, models.CheckRows)
	}
}

func TestPredictNextDeterministic(t *testing.T) {
	bars := marketBars(80)
	store := &stubStore{
		model:   &stubModel{steps: models.WindowSize, features: models.FeatureCount, output: 0.7},
		scalerX: shiftScaler{},
		scalerY: scaleInverse{factor: 3000},
	}
	p := testPredictor(store, bars)

	first, err := p.PredictNext(context.Background(), defaultRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.PredictNext(context.Background(), defaultRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.PredictedPrice != second.PredictedPrice || first.Direction != second.Direction {
		t.Errorf("same inputs produced different results: %+v vs %+v", first, second)
	}
}
