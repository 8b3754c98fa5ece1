// Package yahoo implements a MarketSource backed by the Yahoo Finance
// v8 chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"time"

	"GoldPulse/internal/domain/models"
	drepo "GoldPulse/internal/domain/repository"
	xhttp "GoldPulse/pkg/http"
	xlogger "GoldPulse/pkg/logger"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client fetches daily OHLCV history. It exposes two request shapes
// against the same chart endpoint: a named lookback range and explicit
// epoch bounds. Transient upstream quirks differ between the two, so
// the fetch driver tries them as separate strategies.
type Client struct {
	baseURL string
	http    *xhttp.Client
	logger  *xlogger.Logger
}

// Option configures Client.
type Option func(*Client)

// New creates a Yahoo chart API client.
func New(timeout time.Duration, requestsPerSec int, logger *xlogger.Logger, opts ...Option) drepo.MarketSource {
	c := &Client{
		baseURL: defaultBaseURL,
		http: xhttp.NewClient(
			xhttp.WithTimeout(timeout),
			xhttp.WithRateLimit(requestsPerSec),
		),
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithBaseURL overrides the API host (tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// chartResponse mirrors the nested chart payload. Quote arrays sit two
// levels down under indicators.quote[0]; adjusted closes live in a
// parallel adjclose block. flatten collapses this into flat PriceBars
// before anything downstream looks at a column.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchRange requests history via a named lookback range, e.g. 90 days
// maps to range=3mo. This is the primary acquisition method.
func (c *Client) FetchRange(ctx context.Context, symbol string, days int) ([]models.PriceBar, error) {
	return c.fetchChart(ctx, symbol, map[string][]string{
		"interval": {"1d"},
		"range":    {rangeForDays(days)},
	})
}

// FetchPeriod requests the same history via explicit epoch bounds,
// the fallback method when range queries misbehave.
func (c *Client) FetchPeriod(ctx context.Context, symbol string, days int) ([]models.PriceBar, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -days)
	return c.fetchChart(ctx, symbol, map[string][]string{
		"interval": {"1d"},
		"period1":  {fmt.Sprintf("%d", from.Unix())},
		"period2":  {fmt.Sprintf("%d", now.Unix())},
	})
}

func (c *Client) fetchChart(ctx context.Context, symbol string, params map[string][]string) ([]models.PriceBar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(symbol))

	var raw []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         u,
		Headers:     map[string]string{"User-Agent": "Mozilla/5.0"},
		QueryParams: params,
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("chart request: %w", err)
	}

	var chart chartResponse
	if err := json.Unmarshal(raw, &chart); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedPayload, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("chart api error %s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: no result block", models.ErrEmptyResult)
	}

	bars, err := flatten(&chart)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, models.ErrEmptyResult
	}

	c.logger.Debug("chart fetched",
		xlogger.String("symbol", symbol),
		xlogger.Int("bars", len(bars)),
	)
	return bars, nil
}

// flatten collapses the nested chart structure into an ascending,
// duplicate-free series of PriceBars. Null bars (market holidays) are
// skipped entirely rather than zero-filled.
func flatten(chart *chartResponse) ([]models.PriceBar, error) {
	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: missing quote block", models.ErrMalformedPayload)
	}
	quote := result.Indicators.Quote[0]
	n := len(result.Timestamp)
	if len(quote.Open) != n || len(quote.High) != n || len(quote.Low) != n || len(quote.Close) != n {
		return nil, fmt.Errorf("%w: quote arrays do not match timestamp length", models.ErrMalformedPayload)
	}

	bars := make([]models.PriceBar, 0, n)
	for i, ts := range result.Timestamp {
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}
		var volume float64
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}
		bars = append(bars, models.PriceBar{
			Date:   time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Open:   *quote.Open[i],
			High:   *quote.High[i],
			Low:    *quote.Low[i],
			Close:  *quote.Close[i],
			Volume: volume,
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	// Drop duplicate dates, keeping the later record.
	deduped := bars[:0]
	for _, b := range bars {
		if len(deduped) > 0 && deduped[len(deduped)-1].Date.Equal(b.Date) {
			deduped[len(deduped)-1] = b
			continue
		}
		deduped = append(deduped, b)
	}
	return deduped, nil
}

// rangeForDays maps a desired lookback in days to the closest chart
// API range token. The API only accepts 1mo/3mo/6mo/1y at daily
// granularity (there is no 2mo), so a 60-day lookback rides the 3mo
// token; the period method covers exact 60-day bounds.
func rangeForDays(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	default:
		return "1y"
	}
}
