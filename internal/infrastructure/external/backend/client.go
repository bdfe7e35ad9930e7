// Package backend is the HTTP client for the bill-collection backend API.
// Every resource method maps its arguments to an endpoint and delegates to
// Request; errors are normalized but never retried.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBaseURL is used when neither the environment nor the config file sets one
const DefaultBaseURL = "http://localhost:8000"

// HTTPDoer is the transport used by Client
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds client configuration
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPDoer replaces the default *http.Client
func WithHTTPDoer(doer HTTPDoer) Option {
	return func(c *Client) {
		c.http = doer
	}
}

// WithRequestIDFunc replaces the X-Request-ID generator
func WithRequestIDFunc(fn func() string) Option {
	return func(c *Client) {
		c.requestID = fn
	}
}

// Client talks JSON to the backend
type Client struct {
	baseURL   string
	http      HTTPDoer
	requestID func() string
	logger    *zap.Logger
}

// NewClient creates a backend client. The base URL is fixed for the
// lifetime of the client.
func NewClient(cfg Config, logger *zap.Logger, opts ...Option) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		baseURL:   baseURL,
		http:      &http.Client{Timeout: timeout},
		requestID: uuid.NewString,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Params is a list-call query. Keys and values are sent verbatim; the
// backend decides what they mean.
type Params map[string]string

// Encode renders p as a URL query string
func (p Params) Encode() string {
	values := url.Values{}
	for k, v := range p {
		values.Set(k, v)
	}
	return values.Encode()
}

func withQuery(path string, params Params) string {
	if q := params.Encode(); q != "" {
		return path + "?" + q
	}
	return path
}

// RequestOptions are merged over the defaults (GET, JSON headers)
type RequestOptions struct {
	Method  string
	Body    interface{}
	Headers http.Header
}

// Request sends a request to baseURL+endpoint and decodes the JSON response
// into out. out may be nil when the caller does not need the payload.
func (c *Client) Request(ctx context.Context, endpoint string, opts RequestOptions, out interface{}) error {
	raw, err := c.RequestRaw(ctx, endpoint, opts)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		err = fmt.Errorf("decode response from %s: %w", endpoint, err)
		c.logger.Error("API request failed", zap.String("endpoint", endpoint), zap.Error(err))
		return err
	}
	return nil
}

// RequestRaw is Request without decoding. The returned body is valid JSON.
func (c *Client) RequestRaw(ctx context.Context, endpoint string, opts RequestOptions) (json.RawMessage, error) {
	raw, err := c.do(ctx, endpoint, opts)
	if err != nil {
		c.logger.Error("API request failed",
			zap.String("method", methodOf(opts)),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return nil, err
	}
	return raw, nil
}

func (c *Client) do(ctx context.Context, endpoint string, opts RequestOptions) (json.RawMessage, error) {
	var body io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, methodOf(opts), c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", c.requestID())
	for key, values := range opts.Headers {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newRequestError(resp.StatusCode, parseDetail(data))
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("malformed JSON response from %s", endpoint)
	}
	return json.RawMessage(data), nil
}

// parseDetail extracts a string "detail" from an error body
func parseDetail(data []byte) string {
	var body struct {
		Detail interface{} `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	detail, _ := body.Detail.(string)
	return detail
}

func methodOf(opts RequestOptions) string {
	if opts.Method == "" {
		return http.MethodGet
	}
	return opts.Method
}
