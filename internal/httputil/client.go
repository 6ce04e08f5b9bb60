// Package httputil provides the JSON HTTP transport used by the provider
// clients.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/soultrade/marketdata/pkg/logger"
)

// Method is the closed set of HTTP methods the transport supports.
type Method int

const (
	MethodGet Method = iota
	MethodPost
)

func (m Method) String() string {
	switch m {
	case MethodGet:
		return http.MethodGet
	case MethodPost:
		return http.MethodPost
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ErrUnsupportedMethod is returned when Call receives a method outside the
// supported set. This is a programming error, not an upstream failure.
var ErrUnsupportedMethod = errors.New("unsupported HTTP method")

// StatusError reports a non-2xx response. Body carries a truncated copy of
// the response body for diagnostics.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

const (
	defaultTimeout = 30 * time.Second
	maxBodySize    = 8 << 20
	maxErrBodySize = 4 << 10
)

// Client performs JSON requests against a provider API, attaching a fixed
// header set to every request.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	log        *logger.Logger
}

// NewClient constructs a transport. A nil http.Client gets a default
// timeout; headers are attached verbatim to every request.
func NewClient(httpClient *http.Client, headers map[string]string, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if log == nil {
		log = logger.NewDefault("httputil")
	}
	return &Client{
		httpClient: httpClient,
		headers:    headers,
		log:        log,
	}
}

// Call executes one request and returns the raw JSON body. Non-2xx
// responses return a *StatusError; methods outside the supported set
// return ErrUnsupportedMethod before any network activity.
func (c *Client) Call(ctx context.Context, method Method, rawURL string, query url.Values, body interface{}) (json.RawMessage, error) {
	var req *http.Request
	var err error

	switch method {
	case MethodGet:
		req, err = c.newGetRequest(ctx, rawURL, query)
	case MethodPost:
		req, err = c.newPostRequest(ctx, rawURL, body)
	default:
		return nil, fmt.Errorf("%w: %s for %s", ErrUnsupportedMethod, method, rawURL)
	}
	if err != nil {
		return nil, err
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
		c.log.WithField("status", resp.StatusCode).
			WithField("url", rawURL).
			Debug("upstream returned non-success status")
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return json.RawMessage(payload), nil
}

// Get performs a GET request with optional query parameters.
func (c *Client) Get(ctx context.Context, rawURL string, query url.Values) (json.RawMessage, error) {
	return c.Call(ctx, MethodGet, rawURL, query, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, rawURL string, body interface{}) (json.RawMessage, error) {
	return c.Call(ctx, MethodPost, rawURL, nil, body)
}

func (c *Client) newGetRequest(ctx context.Context, rawURL string, query url.Values) (*http.Request, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url %s: %w", rawURL, err)
	}
	if len(query) > 0 {
		merged := parsed.Query()
		for key, values := range query {
			for _, value := range values {
				merged.Add(key, value)
			}
		}
		parsed.RawQuery = merged.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return req, nil
}

func (c *Client) newPostRequest(ctx context.Context, rawURL string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}
