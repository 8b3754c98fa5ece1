package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	predictions   *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	fetchAttempts *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	price         *prometheus.GaugeVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		predictions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldpulse_predictions_total",
				Help: "Total number of forecasts served, by direction",
			},
			[]string{"direction"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldpulse_errors_total",
				Help: "Total number of pipeline errors encountered",
			},
			[]string{"type"},
		),
		fetchAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldpulse_fetch_attempts_total",
				Help: "Upstream acquisition attempts by method and outcome",
			},
			[]string{"method", "outcome"},
		),
		stageDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "goldpulse_stage_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		price: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "goldpulse_price_usd",
				Help: "Last observed and last predicted price",
			},
			[]string{"kind"},
		),
	}
}

// RecordPrediction counts a served forecast.
func (r *Recorder) RecordPrediction(direction string) {
	r.predictions.WithLabelValues(direction).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordFetchAttempt records one acquisition attempt outcome.
func (r *Recorder) RecordFetchAttempt(method, outcome string) {
	r.fetchAttempts.WithLabelValues(method, outcome).Inc()
}

// RecordStageDuration records a pipeline stage latency in seconds.
func (r *Recorder) RecordStageDuration(stage string, seconds float64) {
	r.stageDuration.WithLabelValues(stage).Observe(seconds)
}

// RecordPrice records the last price of the given kind.
func (r *Recorder) RecordPrice(kind string, price float64) {
	r.price.WithLabelValues(kind).Set(price)
}
