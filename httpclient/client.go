package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout = 10 * time.Second

	// maxErrorBody bounds how much of a failed response we keep around
	// for diagnostics.
	maxErrorBody = 8 << 10
)

// Config tunes the client. Zero values fall back to defaults.
type Config struct {
	Timeout time.Duration
	Retry   RetryConfig
	Headers map[string]string
}

// Client is an HTTP client with per-attempt timeouts and classified,
// retryable failures. Provider adapters share one Client per upstream.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	retry      RetryConfig
	headers    map[string]string
}

// NewClient creates a client from cfg, applying defaults for unset fields.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retry := cfg.Retry
	if retry.MaxRetries == 0 && retry.BaseDelay == 0 && retry.MaxDelay == 0 {
		retry = DefaultRetryConfig()
	}
	return &Client{
		httpClient: &http.Client{},
		timeout:    timeout,
		retry:      retry,
		headers:    cfg.Headers,
	}
}

// Get fetches url and returns the response body. Each attempt is bounded by
// the configured timeout; retryable failures are re-attempted per the retry
// config, and the last error is returned on exhaustion.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, url, nil, nil)
}

// GetJSON fetches url and decodes the JSON response into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	b, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}

// Post sends body to url with the given content type and returns the
// response body.
func (c *Client) Post(ctx context.Context, url, contentType string, body []byte) ([]byte, error) {
	headers := map[string]string{"Content-Type": contentType}
	return c.do(ctx, http.MethodPost, url, body, headers)
}

func (c *Client) do(ctx context.Context, method, url string, body []byte, headers map[string]string) ([]byte, error) {
	var out []byte
	err := withRetry(ctx, c.retry, func() error {
		var attemptErr error
		out, attemptErr = c.attempt(ctx, method, url, body, headers)
		return attemptErr
	})
	return out, err
}

// attempt performs one bounded HTTP call and classifies its failure mode.
func (c *Client) attempt(ctx context.Context, method, url string, body []byte, headers map[string]string) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, url, reader)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			return nil, &TimeoutError{URL: url, Timeout: c.timeout}
		}
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: url, Body: string(snippet)}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			return nil, &TimeoutError{URL: url, Timeout: c.timeout}
		}
		return nil, &NetworkError{URL: url, Err: err}
	}
	return b, nil
}
