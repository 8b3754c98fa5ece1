package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"GoldPulse/internal/domain/models"
	drepo "GoldPulse/internal/domain/repository"
	xlogger "GoldPulse/pkg/logger"
)

// acquisition is one (method, lookback) candidate in the ordered
// strategy list. Every candidate has the same outcome contract:
// bars on success, an error that advances to the next candidate
// otherwise. Nothing inside a single pass is fatal; only exhausting
// the whole list fails the attempt.
type acquisition struct {
	method string
	days   int
}

const (
	methodRange  = "range"
	methodPeriod = "period"
)

// attemptBackOff yields the wait before retry n as n*step (2s, 4s,
// 6s... for the default 2s step), the schedule the model's data feed
// has always used between whole-sequence retries.
type attemptBackOff struct {
	step time.Duration
	n    int
}

func (b *attemptBackOff) NextBackOff() time.Duration {
	b.n++
	return time.Duration(b.n) * b.step
}

func (b *attemptBackOff) Reset() { b.n = 0 }

var _ backoff.BackOff = (*attemptBackOff)(nil)

// Fetcher acquires the instrument's daily history, walking an ordered
// list of acquisition strategies and retrying the whole sequence with
// backoff when every strategy fails. One Fetcher serves all requests
// concurrently; the backoff schedule is built per call so requests
// never share retry state.
type Fetcher struct {
	source      drepo.MarketSource
	symbol      string
	lookbacks   []int
	maxAttempts int
	newBackOff  func() backoff.BackOff
	sleep       func(time.Duration)
	logger      *xlogger.Logger
	metrics     drepo.Metrics
}

// FetcherOption configures Fetcher.
type FetcherOption func(*Fetcher)

// NewFetcher creates a fetch driver for one instrument.
func NewFetcher(source drepo.MarketSource, symbol string, logger *xlogger.Logger, metrics drepo.Metrics, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		source:      source,
		symbol:      symbol,
		lookbacks:   []int{90, 60, 30},
		maxAttempts: 3,
		newBackOff: func() backoff.BackOff {
			return &attemptBackOff{step: 2 * time.Second}
		},
		sleep: time.Sleep,
		logger:      logger,
		metrics:     metrics,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// WithLookbacks overrides the descending lookback candidates in days.
func WithLookbacks(days []int) FetcherOption {
	return func(f *Fetcher) {
		if len(days) > 0 {
			f.lookbacks = days
		}
	}
}

// WithMaxAttempts overrides the whole-sequence retry budget.
func WithMaxAttempts(n int) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxAttempts = n
		}
	}
}

// WithBackOff overrides the inter-attempt wait schedule. The factory
// is invoked once per Fetch call, so implementations need not be safe
// for concurrent use.
func WithBackOff(factory func() backoff.BackOff) FetcherOption {
	return func(f *Fetcher) { f.newBackOff = factory }
}

// WithBackoffStep keeps the linear schedule but changes its step.
func WithBackoffStep(step time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if step > 0 {
			f.newBackOff = func() backoff.BackOff {
				return &attemptBackOff{step: step}
			}
		}
	}
}

// WithSleep overrides the blocking sleep between attempts (tests).
func WithSleep(sleep func(time.Duration)) FetcherOption {
	return func(f *Fetcher) { f.sleep = sleep }
}

// strategies returns the full candidate order: the primary range
// method across descending lookbacks, then the period fallback across
// the same lookbacks.
func (f *Fetcher) strategies() []acquisition {
	out := make([]acquisition, 0, 2*len(f.lookbacks))
	for _, d := range f.lookbacks {
		out = append(out, acquisition{method: methodRange, days: d})
	}
	for _, d := range f.lookbacks {
		out = append(out, acquisition{method: methodPeriod, days: d})
	}
	return out
}

// Fetch returns an ascending-date daily series for the configured
// symbol, or a FetchError once every strategy and retry attempt is
// exhausted. The error's Malformed flag reflects the classification
// of the last failure, decided here and nowhere higher up.
func (f *Fetcher) Fetch(ctx context.Context) ([]models.PriceBar, error) {
	bo := f.newBackOff()
	bo.Reset()

	var lastErr error
	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		for _, s := range f.strategies() {
			bars, err := f.try(ctx, s)
			if err == nil {
				f.metrics.RecordFetchAttempt(s.method, "success")
				f.logger.Info("market data fetched",
					xlogger.String("symbol", f.symbol),
					xlogger.String("method", s.method),
					xlogger.Int("lookback_days", s.days),
					xlogger.Int("bars", len(bars)),
					xlogger.Int("attempt", attempt),
				)
				return bars, nil
			}
			lastErr = err
			f.metrics.RecordFetchAttempt(s.method, "failure")
			f.logger.Warn("acquisition candidate failed",
				xlogger.String("method", s.method),
				xlogger.Int("lookback_days", s.days),
				xlogger.Error(err),
			)
			if ctx.Err() != nil {
				break
			}
		}

		if ctx.Err() != nil {
			lastErr = ctx.Err()
			break
		}
		if attempt < f.maxAttempts {
			wait := bo.NextBackOff()
			if wait == backoff.Stop {
				break
			}
			f.logger.Info("retrying market data fetch",
				xlogger.Int("attempt", attempt),
				xlogger.Duration("wait_ms", wait),
			)
			f.sleep(wait)
		}
	}

	f.metrics.RecordError("fetch")
	return nil, &models.FetchError{
		Malformed: errors.Is(lastErr, models.ErrMalformedPayload),
		Attempts:  f.maxAttempts,
		Err:       lastErr,
	}
}

func (f *Fetcher) try(ctx context.Context, s acquisition) ([]models.PriceBar, error) {
	var (
		bars []models.PriceBar
		err  error
	)
	switch s.method {
	case methodRange:
		bars, err = f.source.FetchRange(ctx, f.symbol, s.days)
	case methodPeriod:
		bars, err = f.source.FetchPeriod(ctx, f.symbol, s.days)
	default:
		return nil, fmt.Errorf("unknown acquisition method %q", s.method)
	}
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, models.ErrEmptyResult
	}
	return bars, nil
}
