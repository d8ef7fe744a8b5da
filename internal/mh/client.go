package mh

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"facturador/internal/mh/metrics"
	domainerrors "facturador/pkg/domain-errors"
)

// responseExcerptLen bounds how much of a non-JSON body ends up in an error
// message; MH maintenance pages are HTML and can be large.
const responseExcerptLen = 300

// Client talks to one MH environment. Safe for concurrent use.
type Client struct {
	env       Environment
	endpoints Endpoints
	http      *http.Client
	log       *log.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
	sleep     func(ctx context.Context, d time.Duration) error
}

type ClientOption func(*Client)

// WithEndpoints overrides the URL registry, used to point at a test server.
func WithEndpoints(e Endpoints) ClientOption {
	return func(c *Client) { c.endpoints = e }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithMetrics attaches protocol metrics.
func WithMetrics(m *metrics.Metrics) ClientOption {
	return func(c *Client) { c.metrics = m }
}

// WithClock fixes the token-expiry clock.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) { c.now = now }
}

// WithSleeper replaces the retry delay, letting tests skip real backoff.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) ClientOption {
	return func(c *Client) { c.sleep = sleep }
}

// NewClient returns a client for env. The MH can take most of a minute to
// answer a reception request, so the default HTTP timeout is generous.
func NewClient(env Environment, logger *log.Logger, opts ...ClientOption) *Client {
	c := &Client{
		env:       env,
		endpoints: EndpointsFor(env),
		http:      &http.Client{Timeout: 60 * time.Second},
		log:       logger,
		now:       time.Now,
		sleep:     sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// postJSON sends body as JSON with the optional bearer token and returns the
// status code and raw response body. Transport failures come back classified
// as timeout or connection errors so callers can decide what to retry.
func (c *Client) postJSON(ctx context.Context, url, bearer string, body any) (int, []byte, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return 0, nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, classifyTransport(url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, classifyTransport(url, err)
	}
	return resp.StatusCode, data, nil
}

// classifyTransport separates timeouts from connection failures. Both are
// retryable; everything the server actually answered is not.
func classifyTransport(url string, err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return domainerrors.Wrap(domainerrors.CodeTimeout,
			fmt.Sprintf("MH did not answer in time (%s)", url), err)
	}
	return domainerrors.Wrap(domainerrors.CodeTransport,
		fmt.Sprintf("could not reach MH (%s)", url), err)
}

// transportFailure reports whether err is worth retrying.
func transportFailure(err error) bool {
	switch domainerrors.CodeOf(err) {
	case domainerrors.CodeTimeout, domainerrors.CodeTransport:
		return true
	}
	return false
}

func excerpt(body []byte) string {
	if len(body) > responseExcerptLen {
		return string(body[:responseExcerptLen])
	}
	return string(body)
}

// flattenObservations normalizes the MH observaciones field, which arrives
// as strings, nested lists or objects depending on the rejection path.
func flattenObservations(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		var s string
		if json.Unmarshal(raw, &s) == nil && s != "" {
			return []string{s}
		}
		return nil
	}
	for _, entry := range list {
		var s string
		if json.Unmarshal(entry, &s) == nil {
			out = append(out, s)
			continue
		}
		var m map[string]any
		if json.Unmarshal(entry, &m) == nil {
			for _, v := range m {
				out = append(out, fmt.Sprint(v))
			}
			continue
		}
		var nested []any
		if json.Unmarshal(entry, &nested) == nil {
			for _, v := range nested {
				out = append(out, fmt.Sprint(v))
			}
		}
	}
	return out
}
