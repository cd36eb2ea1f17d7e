// Package upstream is the HTTP client for the remote prediction service.
//
// The service is an opaque collaborator: it computes predictions elsewhere
// and this client only fetches JSON. Every response field beyond identifiers
// and positions is treated as optional, and error bodies are probed for a
// "detail" message before falling back to the HTTP status text.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pitwall/pitwall/internal/domain/model"
	"github.com/pitwall/pitwall/pkg/metrics"
)

const (
	defaultTimeout = 10 * time.Second

	// maxErrorBody bounds how much of an error response is read while
	// probing for a detail message.
	maxErrorBody = 64 << 10
)

// Client talks to the prediction service.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a client for the prediction service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// raceListResponse mirrors the envelope of GET /races.
type raceListResponse struct {
	Races []model.RaceInfo `json:"races"`
	Total int              `json:"total"`
}

// Races lists the races of a season.
func (c *Client) Races(ctx context.Context, year int) ([]model.RaceInfo, error) {
	var out raceListResponse
	q := url.Values{"year": {strconv.Itoa(year)}}
	if err := c.get(ctx, "/races", q, &out); err != nil {
		return nil, err
	}
	return out.Races, nil
}

// driverListResponse mirrors the envelope of GET /drivers.
type driverListResponse struct {
	Drivers []model.DriverSummary `json:"drivers"`
	Total   int                   `json:"total"`
}

// Drivers lists the driver roster with per-driver aggregates.
func (c *Client) Drivers(ctx context.Context) ([]model.DriverSummary, error) {
	var out driverListResponse
	if err := c.get(ctx, "/drivers", nil, &out); err != nil {
		return nil, err
	}
	return out.Drivers, nil
}

// DriverProfile fetches the detailed profile for one driver.
func (c *Client) DriverProfile(ctx context.Context, driverRef string) (*model.DriverProfile, error) {
	var out model.DriverProfile
	if err := c.get(ctx, "/drivers/"+url.PathEscape(driverRef), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Predict fetches the pre-computed prediction for a race.
func (c *Client) Predict(ctx context.Context, raceID int) (*model.PredictionResult, error) {
	var out model.PredictionResult
	if err := c.get(ctx, "/predict/"+strconv.Itoa(raceID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PredictCustom submits a what-if grid and returns the predicted outcome.
// Input validation happens before this call; the service may still reject the
// scenario, which surfaces as a StatusError.
func (c *Client) PredictCustom(ctx context.Context, req model.CustomScenarioRequest) (*model.PredictionResult, error) {
	var out model.PredictionResult
	if err := c.post(ctx, "/predict/custom", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Compare fetches predictions and, when the race has run, actual results and
// the service's own accuracy block.
func (c *Client) Compare(ctx context.Context, raceID int) (*model.Comparison, error) {
	var out model.Comparison
	if err := c.get(ctx, "/compare/"+strconv.Itoa(raceID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Statistics fetches season-wide prediction statistics.
func (c *Client) Statistics(ctx context.Context) (*model.Statistics, error) {
	var out model.Statistics
	if err := c.get(ctx, "/statistics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Standings fetches the championship standings for a year.
func (c *Client) Standings(ctx context.Context, year int) (*model.SeasonStandings, error) {
	var out model.SeasonStandings
	if err := c.get(ctx, "/standings/"+strconv.Itoa(year), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health probes the service's liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	var out map[string]any
	return c.get(ctx, "/health", nil, &out)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	return c.do(req, path, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request for %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, endpoint string, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordUpstreamError(endpoint, "transport")
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	metrics.RecordUpstreamRequest(endpoint, strconv.Itoa(resp.StatusCode))
	metrics.RecordUpstreamRequestDuration(endpoint, float64(time.Since(start).Milliseconds()))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordUpstreamError(endpoint, "status")
		return &StatusError{Code: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.RecordUpstreamError(endpoint, "decode")
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// readDetail extracts the "detail" field the service puts in error bodies.
// Anything unparseable yields an empty string and the caller falls back to
// the HTTP status text.
func readDetail(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	var e struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Detail
}
