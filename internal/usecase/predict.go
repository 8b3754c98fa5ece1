package usecase

import (
	"context"
	"fmt"
	"time"

	"GoldPulse/internal/domain/models"
	drepo "GoldPulse/internal/domain/repository"
	"GoldPulse/internal/services/features"
	"GoldPulse/internal/services/window"
	xlogger "GoldPulse/pkg/logger"
)

// Predictor runs the full forecast pipeline for one request: fetch
// history, derive features, validate the input window, scale, infer,
// and map the output back to price units. Everything it touches is
// request-scoped except the read-only artifact handles.
type Predictor struct {
	fetcher *Fetcher
	store   drepo.ArtifactStore
	logger  *xlogger.Logger
	metrics drepo.Metrics
}

// NewPredictor creates the forecast use case.
func NewPredictor(fetcher *Fetcher, store drepo.ArtifactStore, logger *xlogger.Logger, metrics drepo.Metrics) *Predictor {
	return &Predictor{fetcher: fetcher, store: store, logger: logger, metrics: metrics}
}

// PredictNext forecasts the next trading day's closing price using the
// artifacts at the requested paths.
func (p *Predictor) PredictNext(ctx context.Context, req *models.PredictRequest) (*models.PredictionResult, error) {
	model, scalerX, scalerY, err := p.store.Load(req.ModelPath, req.ScalerXPath, req.ScalerYPath)
	if err != nil {
		p.metrics.RecordError("artifact")
		return nil, err
	}
	if model.StepCount() != models.WindowSize || model.FeatureCount() != models.FeatureCount {
		p.metrics.RecordError("artifact")
		return nil, &models.ArtifactError{
			Path: req.ModelPath,
			Err: fmt.Errorf("model expects %dx%d input, service produces %dx%d",
				model.StepCount(), model.FeatureCount(), models.WindowSize, models.FeatureCount),
		}
	}

	start := time.Now()
	bars, err := p.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	p.metrics.RecordStageDuration("fetch", time.Since(start).Seconds())

	enriched := features.Enrich(bars)
	usable := features.DropWarmup(enriched)

	win, err := window.Build(usable)
	if err != nil {
		p.metrics.RecordError("validation")
		return nil, err
	}

	start = time.Now()
	predicted, err := p.infer(model, scalerX, scalerY, win)
	if err != nil {
		p.metrics.RecordError("inference")
		return nil, err
	}
	p.metrics.RecordStageDuration("inference", time.Since(start).Seconds())

	current := win.LastClose()
	change := predicted - current
	direction := models.DirectionBearish
	if change > 0 {
		direction = models.DirectionBullish
	}

	result := &models.PredictionResult{
		CurrentPrice:   current,
		PredictedPrice: predicted,
		PriceChange:    change,
		Direction:      direction,
	}

	p.metrics.RecordPrediction(direction)
	p.metrics.RecordPrice("current", current)
	p.metrics.RecordPrice("predicted", predicted)
	p.logger.Info("forecast produced",
		xlogger.Float64("current_price", current),
		xlogger.Float64("predicted_price", predicted),
		xlogger.String("direction", direction),
	)
	return result, nil
}

// infer scales the window with the persisted feature scaler, runs the
// forward pass, and inverts the target scaler on the scalar output.
func (p *Predictor) infer(model drepo.SequenceModel, scalerX drepo.FeatureScaler, scalerY drepo.TargetScaler, win models.Window) (float64, error) {
	raw := make([][]float64, models.WindowSize)
	for i := range win {
		row := make([]float64, models.FeatureCount)
		copy(row, win[i][:])
		raw[i] = row
	}

	scaled, err := scalerX.Transform(raw)
	if err != nil {
		return 0, fmt.Errorf("scale input window: %w", err)
	}

	out, err := model.Predict(scaled)
	if err != nil {
		return 0, fmt.Errorf("model inference: %w", err)
	}

	return scalerY.Inverse(out), nil
}
