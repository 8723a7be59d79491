package base

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTimeout applies when the caller does not supply an *http.Client
const DefaultTimeout = 30 * time.Second

// HTTPClient provides common HTTP functionality for providers
type HTTPClient struct {
	client  *http.Client
	baseURL string
	name    string // provider name for logging
	headers map[string]string
}

// NewHTTPClient binds a client to baseURL. A nil hc gets DefaultTimeout.
func NewHTTPClient(providerName, baseURL string, hc *http.Client) *HTTPClient {
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}

	return &HTTPClient{
		client:  hc,
		baseURL: baseURL,
		name:    providerName,
		headers: map[string]string{},
	}
}

// Authorized returns a new client carrying the bearer token and JSON content
// type on every request. The receiver is left untouched.
func (c *HTTPClient) Authorized(token string) *HTTPClient {
	headers := maps.Clone(c.headers)
	headers["Authorization"] = "Bearer " + token
	headers["Content-Type"] = "application/json"

	return &HTTPClient{
		client:  c.client,
		baseURL: c.baseURL,
		name:    c.name,
		headers: headers,
	}
}

// BaseURL returns the URL every endpoint is resolved against
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// PostJSON makes a POST request with JSON payload
func (c *HTTPClient) PostJSON(ctx context.Context, endpoint string, payload any) (*HTTPResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, nil)
}

// Get makes a GET request
func (c *HTTPClient) Get(ctx context.Context, endpoint string, headers map[string]string) (*HTTPResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, headers)
}

func (c *HTTPClient) do(req *http.Request, extra map[string]string) (*HTTPResponse, error) {
	req.Header.Set("User-Agent", fmt.Sprintf("mpesarelay/%s", c.name))
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	for key, value := range extra {
		req.Header.Set(key, value)
	}

	// Log the request (without sensitive data)
	log.Debug().
		Str("provider", c.name).
		Str("method", req.Method).
		Str("url", req.URL.Path).
		Msg("making HTTP request")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Error().
			Str("provider", c.name).
			Str("url", req.URL.Path).
			Err(err).
			Msg("HTTP request failed")
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}

	return c.handleResponse(resp)
}

// handleResponse processes the HTTP response
func (c *HTTPClient) handleResponse(resp *http.Response) (*HTTPResponse, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug().
		Str("provider", c.name).
		Int("status_code", resp.StatusCode).
		Int("body_length", len(body)).
		Msg("received HTTP response")

	return &HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

// HTTPResponse represents an HTTP response
type HTTPResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// IsSuccess checks if the response indicates success (2xx status code)
func (r *HTTPResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the response body into the provided struct
func (r *HTTPResponse) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// String returns the response body as a string
func (r *HTTPResponse) String() string {
	return string(r.Body)
}
