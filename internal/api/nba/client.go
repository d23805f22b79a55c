package nba

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/omarshaarawi/nbastats/internal/config"
	"github.com/omarshaarawi/nbastats/internal/resultset"
)

const referer = "https://www.nba.com/"

type Client struct {
	httpClient *http.Client
	Config     config.StatsAPI
	clock      clockwork.Clock
	extractor  resultset.Extractor
	logger     *slog.Logger
}

type Option func(*Client)

// WithClock replaces the clock used for date defaults.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) {
		c.clock = clock
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(cfg config.StatsAPI, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		Config:     cfg,
		clock:      clockwork.NewRealClock(),
		extractor:  resultset.Extractor{Format: cfg.Output},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "nba-client")
	return c
}

func (c *Client) Clock() clockwork.Clock {
	return c.clock
}

func (c *Client) Extractor() resultset.Extractor {
	return c.extractor
}

// Fetch performs one GET against <base>/<endpoint>/ and decodes the body.
// Failures come back as *HTTPError or *ParseError so callers can inspect them.
func (c *Client) Fetch(ctx context.Context, endpoint string, params map[string]string) (*resultset.Response, error) {
	endpoint = strings.Trim(endpoint, "/")
	if endpoint == "" {
		return nil, errors.New("endpoint name is required")
	}
	url := fmt.Sprintf("%s/%s/", strings.TrimRight(c.Config.BaseURL, "/"), endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	q := req.URL.Query()
	for key, value := range params {
		q.Set(key, value)
	}
	req.URL.RawQuery = q.Encode()

	c.setHeaders(req)

	requestID := uuid.NewString()
	c.logger.Debug("fetching endpoint", "endpoint", endpoint, "url", req.URL.String(), "request_id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("unexpected status code",
			"endpoint", endpoint,
			"status", resp.StatusCode,
			"request_id", requestID,
		)
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: req.URL.String(), Body: string(body)}
	}

	var result resultset.Response
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&result); err != nil {
		return nil, &ParseError{Endpoint: endpoint, Err: err}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after JSON body")
		}
		return nil, &ParseError{Endpoint: endpoint, Err: err}
	}

	c.logger.Debug("fetched endpoint",
		"endpoint", endpoint,
		"result_sets", len(result.ResultSets),
		"request_id", requestID,
		"elapsed", time.Since(start),
	)

	return &result, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", referer)
	if c.Config.UserAgent != "" {
		req.Header.Set("User-Agent", c.Config.UserAgent)
	}
}
