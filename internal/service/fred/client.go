package fred

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"MacroPull/internal/domain/models"
	drepo "MacroPull/internal/domain/repository"
	xhttp "MacroPull/pkg/http"
	"MacroPull/pkg/util"
)

// FetchError wraps any failure to obtain usable observations for a series.
// Callers treat it as "indicator unavailable this run" and keep going.
type FetchError struct {
	SeriesID string
	Cause    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fred: fetch %s: %v", e.SeriesID, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }

// Client pulls series observations from the FRED REST API.
type Client struct {
	apiKey       string
	baseURL      string
	lookbackDays int
	http         *xhttp.Client
	now          func() time.Time
}

type ClientOption func(*Client)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) { c.now = now }
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) { c.http = xhttp.NewClient(xhttp.WithTimeout(timeout)) }
}

func NewClient(apiKey, baseURL string, lookbackDays int, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:       apiKey,
		baseURL:      baseURL,
		lookbackDays: lookbackDays,
		http:         xhttp.NewClient(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// Fetch returns up to window observations for seriesID, oldest first.
// FRED reports missing points as the literal "."; those are dropped. A
// response with no usable points is a *FetchError like any transport failure.
func (c *Client) Fetch(ctx context.Context, seriesID string, window int) ([]models.Observation, error) {
	end := c.now()
	start := end.AddDate(0, 0, -c.lookbackDays)

	var payload observationsResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/series/observations",
		QueryParams: map[string][]string{
			"series_id":         {seriesID},
			"api_key":           {c.apiKey},
			"file_type":         {"json"},
			"observation_start": {start.Format(util.FREDDate)},
			"observation_end":   {end.Format(util.FREDDate)},
			"sort_order":        {"desc"},
			"limit":             {strconv.Itoa(window)},
		},
	}, &payload)
	if err != nil {
		return nil, &FetchError{SeriesID: seriesID, Cause: err}
	}

	obs := make([]models.Observation, 0, len(payload.Observations))
	for _, o := range payload.Observations {
		v, err := strconv.ParseFloat(o.Value, 64)
		if err != nil {
			continue // "." marks a missing point
		}
		d, ok := util.ParseTime(o.Date)
		if !ok {
			continue
		}
		obs = append(obs, models.Observation{Date: d, Value: v})
	}
	if len(obs) == 0 {
		return nil, &FetchError{SeriesID: seriesID, Cause: fmt.Errorf("no usable observations")}
	}

	sort.Slice(obs, func(i, j int) bool { return obs[i].Date.Before(obs[j].Date) })
	return obs, nil
}

var _ drepo.SeriesSource = (*Client)(nil)
