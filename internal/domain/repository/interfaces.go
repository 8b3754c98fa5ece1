package repository

import (
	"context"

	"GoldPulse/internal/domain/models"
)

// MarketSource acquires daily price history from the upstream market
// data provider. Both methods hit the same instrument but through
// different request shapes; the fetch driver treats them as ordered
// acquisition strategies.
type MarketSource interface {
	// FetchRange requests history via a named lookback range (primary method).
	FetchRange(ctx context.Context, symbol string, days int) ([]models.PriceBar, error)
	// FetchPeriod requests history via explicit epoch bounds (fallback method).
	FetchPeriod(ctx context.Context, symbol string, days int) ([]models.PriceBar, error)
}

// SequenceModel runs one deterministic forward pass over a scaled
// feature window and returns the scaled scalar forecast.
type SequenceModel interface {
	StepCount() int
	FeatureCount() int
	Predict(window [][]float64) (float64, error)
}

// FeatureScaler applies the per-feature normalization persisted at
// training time. Parameters are fixed; never re-fit at serving time.
type FeatureScaler interface {
	Transform(rows [][]float64) ([][]float64, error)
}

// TargetScaler maps a scaled model output back to price units.
type TargetScaler interface {
	Inverse(v float64) float64
}

// ArtifactStore loads the persisted model and scaler pair, caching
// immutable artifacts for process lifetime.
type ArtifactStore interface {
	Load(modelPath, scalerXPath, scalerYPath string) (SequenceModel, FeatureScaler, TargetScaler, error)
}

// Metrics abstracts operational metric recording.
type Metrics interface {
	RecordPrediction(direction string)
	RecordError(kind string)
	RecordFetchAttempt(method, outcome string)
	RecordStageDuration(stage string, seconds float64)
	RecordPrice(kind string, price float64)
}
