// Package rapidapi provides the raw HTTP client shared by the RapidAPI-hosted
// tennis providers.
//
// RapidAPI authenticates with two static headers (key and host). Each call is
// a single GET with a fixed timeout; there are no retries.
package rapidapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/provider"
)

// DefaultTimeout bounds every upstream call.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of an upstream body is read.
const maxBodyBytes = 8 << 20

// ClientConfig configures a Client. BaseURL, APIKey and APIHost are required
// by the caller's configuration layer; the client does not re-validate them.
type ClientConfig struct {
	BaseURL    string
	APIKey     string
	APIHost    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client is the Raw Client: one GET per call, parsed into a provider.Value.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	apiHost    string
	logger     *slog.Logger
}

// NewClient creates a RapidAPI client.
func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:     cfg.APIKey,
		apiHost:    cfg.APIHost,
		logger:     logger,
	}
}

// Fetch performs a GET to endpoint with params and parses the JSON body.
// Every failure is returned as a *provider.TransportError.
func (c *Client) Fetch(ctx context.Context, endpoint string, params url.Values) (provider.Value, error) {
	u := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return provider.Null, &provider.TransportError{URL: u, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.apiHost)
	req.Header.Set("accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("Upstream request failed", "endpoint", endpoint, "elapsed", time.Since(start), "error", err)
		return provider.Null, &provider.TransportError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return provider.Null, &provider.TransportError{URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response body: %w", err)}
	}

	c.logger.Debug("Upstream request finished",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return provider.Null, &provider.TransportError{
			URL:        u,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %s", provider.ErrUpstreamStatus, truncate(body, 200)),
		}
	}

	payload, err := provider.Parse(body)
	if err != nil {
		return provider.Null, &provider.TransportError{
			URL:        u,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %v", provider.ErrMalformedBody, err),
		}
	}
	return payload, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
