package di

import (
	"fmt"

	"GoldPulse/internal/domain/models"
	"GoldPulse/internal/domain/repository"
	"GoldPulse/internal/handler/api"
	"GoldPulse/internal/service/yahoo"
	"GoldPulse/internal/usecase"
	"GoldPulse/pkg/artifact"
	"GoldPulse/pkg/config"
	xhttp "GoldPulse/pkg/http"
	applogger "GoldPulse/pkg/logger"
	"GoldPulse/pkg/metrics"
	"GoldPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideMarketSource creates the Yahoo chart API client.
func ProvideMarketSource(cfg *config.Config, logger *applogger.Logger) repository.MarketSource {
	opts := []yahoo.Option{}
	if cfg.Market.BaseURL != "" {
		opts = append(opts, yahoo.WithBaseURL(cfg.Market.BaseURL))
	}
	return yahoo.New(cfg.Market.RequestTimeout, cfg.Market.RequestsPerSec, logger, opts...)
}

// ProvideFetcher creates the fetch retry driver.
func ProvideFetcher(source repository.MarketSource, cfg *config.Config, logger *applogger.Logger, m repository.Metrics) *usecase.Fetcher {
	return usecase.NewFetcher(source, cfg.Market.Symbol, logger, m,
		usecase.WithLookbacks(cfg.Market.LookbackDays),
		usecase.WithMaxAttempts(cfg.Market.MaxAttempts),
		usecase.WithBackoffStep(cfg.Market.BackoffStep),
	)
}

// ProvideArtifactStore creates the artifact store.
func ProvideArtifactStore(cfg *config.Config) repository.ArtifactStore {
	return artifact.NewStore(cfg.Artifacts.Cache)
}

// ProvidePredictor creates the forecast use case.
func ProvidePredictor(fetcher *usecase.Fetcher, store repository.ArtifactStore, logger *applogger.Logger, m repository.Metrics) *usecase.Predictor {
	return usecase.NewPredictor(fetcher, store, logger, m)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(cfg *config.Config, logger *applogger.Logger, predictor *usecase.Predictor) xhttp.Handler {
	return api.NewPredictEchoHandler(logger, predictor, models.PredictRequest{
		ModelPath:   cfg.Artifacts.ModelPath,
		ScalerXPath: cfg.Artifacts.ScalerXPath,
		ScalerYPath: cfg.Artifacts.ScalerYPath,
	})
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, logger *applogger.Logger, handler xhttp.Handler) *server.App {
	return server.New(cfg, logger, handler)
}
