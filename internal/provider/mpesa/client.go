package mpesa

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"mpesarelay/internal/domain/credential"
	"mpesarelay/internal/provider"
	"mpesarelay/internal/provider/base"

	"github.com/rs/zerolog/log"
)

const (
	providerName = "mpesa"
	tokenPath    = "/oauth/v1/generate?grant_type=client_credentials"
)

// Outcome labels reported to an Observer
const (
	OutcomeSuccess         = "success"
	OutcomeAuthError       = "auth_error"
	OutcomeRequestError    = "request_error"
	OutcomeCredentialError = "credential_error"
)

// Observer is told about every finished operation
type Observer interface {
	ObserveOperation(op provider.OperationType, outcome string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveOperation(provider.OperationType, string, time.Duration) {}

// Client implements the M-Pesa Daraja API. It is safe for concurrent use.
type Client struct {
	creds    credential.Credentials
	env      credential.Environment
	baseURL  string
	http     *http.Client
	timeout  time.Duration
	now      func() time.Time
	observer Observer
	security *credentialStore
}

// Option configures a Client
type Option func(*Client)

// WithTimeout bounds every HTTP round trip, token exchange included
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient replaces the underlying *http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithBaseURL points the client somewhere other than the environment's host
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithClock overrides the clock used for STK push timestamps
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithObserver reports operation outcomes, e.g. to metrics
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// New creates a client and starts deriving the security credential in the
// background. Derivation failures are logged, never returned; use Ready to
// wait for the outcome.
func New(creds credential.Credentials, env credential.Environment, opts ...Option) *Client {
	c := &Client{
		creds:    creds,
		env:      env,
		baseURL:  env.BaseURL(),
		now:      time.Now,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}

	switch {
	case c.http == nil:
		timeout := c.timeout
		if timeout == 0 {
			timeout = base.DefaultTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	case c.timeout > 0:
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}

	c.security = newCredentialStore(creds, env)
	return c
}

// Environment returns the environment the client was built for
func (c *Client) Environment() credential.Environment {
	return c.env
}

// Ready blocks until the security credential has been derived and returns
// the derivation error, if any.
func (c *Client) Ready(ctx context.Context) error {
	_, err := c.security.get(ctx)
	return err
}

// Derived reports whether derivation has finished, successfully or not
func (c *Client) Derived() bool {
	select {
	case <-c.security.done:
		return true
	default:
		return false
	}
}

// SecurityCredential waits for derivation and returns the value sent as
// SecurityCredential.
func (c *Client) SecurityCredential(ctx context.Context) (string, error) {
	return c.security.get(ctx)
}

// token exchanges the consumer key and secret for a bearer token
func (c *Client) token(ctx context.Context) (string, error) {
	auth := base64.StdEncoding.EncodeToString([]byte(c.creds.Key + ":" + c.creds.Secret))

	resp, err := base.NewHTTPClient(providerName, c.baseURL, c.http).Get(ctx, tokenPath, map[string]string{
		"Authorization": "Basic " + auth,
	})
	if err != nil {
		return "", &provider.AuthError{Err: err}
	}
	if !resp.IsSuccess() {
		return "", &provider.AuthError{StatusCode: resp.StatusCode, Body: resp.Body}
	}

	var authResponse struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   string `json:"expires_in"`
	}
	if err := resp.Decode(&authResponse); err != nil {
		return "", &provider.AuthError{
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			Err:        fmt.Errorf("failed to parse auth response: %w", err),
		}
	}
	if authResponse.AccessToken == "" {
		return "", &provider.AuthError{
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			Err:        errors.New("auth response carried no access token"),
		}
	}

	return authResponse.AccessToken, nil
}

// authenticate builds a fresh authorized client; nothing is reused across calls
func (c *Client) authenticate(ctx context.Context) (*base.HTTPClient, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	return base.NewHTTPClient(providerName, c.baseURL, c.http).Authorized(token), nil
}

// securityCredential gates credential-bearing operations on derivation
func (c *Client) securityCredential(ctx context.Context, op provider.OperationType, start time.Time) (string, error) {
	cred, err := c.security.get(ctx)
	if err != nil {
		c.finish(op, OutcomeCredentialError, start, err)
		return "", err
	}
	return cred, nil
}

// post runs token -> authorized client -> one POST and relays the result
func (c *Client) post(ctx context.Context, op provider.OperationType, path string, payload any, start time.Time) (*Response, error) {
	client, err := c.authenticate(ctx)
	if err != nil {
		c.finish(op, OutcomeAuthError, start, err)
		return nil, err
	}

	resp, err := client.PostJSON(ctx, path, payload)
	if err != nil {
		rerr := &provider.RequestError{Operation: op, Err: err}
		c.finish(op, OutcomeRequestError, start, rerr)
		return nil, rerr
	}
	if !resp.IsSuccess() {
		rerr := &provider.RequestError{Operation: op, StatusCode: resp.StatusCode, Body: resp.Body}
		c.finish(op, OutcomeRequestError, start, rerr)
		return nil, rerr
	}

	c.finish(op, OutcomeSuccess, start, nil)
	return &Response{StatusCode: resp.StatusCode, Header: resp.Headers, Body: resp.Body}, nil
}

// finish logs the outcome and hands it to the observer
func (c *Client) finish(op provider.OperationType, outcome string, start time.Time, err error) {
	elapsed := time.Since(start)
	c.observer.ObserveOperation(op, outcome, elapsed)

	ev := log.Info()
	if err != nil {
		ev = log.Error().Err(err)
	}
	ev.Str("provider", providerName).
		Str("operation", string(op)).
		Str("environment", string(c.env)).
		Str("outcome", outcome).
		Dur("elapsed", elapsed).
		Msg("M-Pesa operation")
}
