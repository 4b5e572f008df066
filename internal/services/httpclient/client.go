package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/rommapp/romm-sub002/internal/logging"
	"github.com/rommapp/romm-sub002/internal/services"
)

const (
	defaultTimeout          = 120 * time.Second
	defaultRateLimitBackoff = 2 * time.Second
	maxResponseBytes        = 32 << 20
)

// Call outcomes reported in the per-request log line.
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeHTTPError   = "http_error"
	OutcomeRateLimited = "rate_limited"
	OutcomeCredentials = "credentials"
	OutcomeUnavailable = "unavailable"
	OutcomeCanceled    = "canceled"
)

// RequestFunc builds a fresh request for each attempt so bodies can be replayed.
type RequestFunc func(ctx context.Context) (*http.Request, error)

// Client executes provider requests under the one-retry policy.
type Client struct {
	provider   string
	httpClient *http.Client
	auth       Authenticator
	backoff    time.Duration
	sleeper    func(context.Context, time.Duration) error
	logger     *slog.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient injects the shared HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithAuthenticator attaches credentials to every request.
func WithAuthenticator(auth Authenticator) Option {
	return func(c *Client) {
		c.auth = auth
	}
}

// WithRateLimitBackoff overrides the sleep applied before retrying a 429.
func WithRateLimitBackoff(backoff time.Duration) Option {
	return func(c *Client) {
		if backoff >= 0 {
			c.backoff = backoff
		}
	}
}

// WithSleeper overrides how the rate-limit sleep is performed (useful for tests).
func WithSleeper(sleeper func(context.Context, time.Duration) error) Option {
	return func(c *Client) {
		if sleeper != nil {
			c.sleeper = sleeper
		}
	}
}

// WithLogger sets the logger used for per-call lines.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New constructs a Client for the named provider.
func New(provider string, opts ...Option) *Client {
	c := &Client{
		provider: provider,
		backoff:  defaultRateLimitBackoff,
		sleeper:  sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	c.logger = logging.NewComponentLogger(c.logger, "http")
	return c
}

// Provider returns the provider name used in logs and errors.
func (c *Client) Provider() string {
	return c.provider
}

// Do executes the request built by build. A nil body with a nil error means
// the provider returned no usable result.
func (c *Client) Do(ctx context.Context, urlClass string, build RequestFunc) ([]byte, error) {
	start := time.Now()
	attempts := 0
	status := 0
	outcome := OutcomeOK
	defer func() {
		c.logCall(ctx, urlClass, outcome, status, attempts, time.Since(start))
	}()

	retried := false
	for {
		attempts++
		req, resp, err := c.send(ctx, build)
		if err != nil {
			if ctx.Err() != nil {
				outcome = OutcomeCanceled
				return nil, ctx.Err()
			}
			var authErr *authError
			if errors.As(err, &authErr) {
				outcome = OutcomeCredentials
				return nil, services.Wrap(services.ErrCredentials, c.provider, urlClass, "apply credentials", authErr.err)
			}
			var buildErr *buildError
			if errors.As(err, &buildErr) {
				outcome = OutcomeHTTPError
				return nil, fmt.Errorf("%s %s: %w", c.provider, urlClass, buildErr.err)
			}
			if !retried {
				retried = true
				continue
			}
			outcome = OutcomeUnavailable
			return nil, &services.UnavailableError{Service: c.provider, Err: err}
		}

		status = resp.StatusCode
		switch {
		case status >= 200 && status < 300:
			body, err := readBody(resp)
			if err != nil {
				if !retried && ctx.Err() == nil {
					retried = true
					continue
				}
				outcome = OutcomeUnavailable
				return nil, &services.UnavailableError{Service: c.provider, Err: err}
			}
			return body, nil
		case status == http.StatusTooManyRequests:
			drain(resp)
			if retried {
				outcome = OutcomeRateLimited
				return nil, nil
			}
			retried = true
			if err := c.sleeper(ctx, c.backoff); err != nil {
				outcome = OutcomeCanceled
				return nil, err
			}
		case status == http.StatusUnauthorized:
			drain(resp)
			if retried || c.auth == nil {
				outcome = OutcomeCredentials
				return nil, services.Wrap(services.ErrCredentials, c.provider, urlClass, fmt.Sprintf("http %d", status), nil)
			}
			retried = true
			if err := c.auth.Refresh(ctx, req); err != nil {
				outcome = OutcomeCredentials
				return nil, services.Wrap(services.ErrCredentials, c.provider, urlClass, "refresh credentials", err)
			}
		case status == http.StatusNotFound:
			drain(resp)
			outcome = OutcomeNotFound
			return nil, nil
		default:
			drain(resp)
			outcome = OutcomeHTTPError
			return nil, nil
		}
	}
}

type authError struct{ err error }

func (e *authError) Error() string { return e.err.Error() }

type buildError struct{ err error }

func (e *buildError) Error() string { return e.err.Error() }

func (c *Client) send(ctx context.Context, build RequestFunc) (*http.Request, *http.Response, error) {
	req, err := build(ctx)
	if err != nil {
		return nil, nil, &buildError{err: err}
	}
	if c.auth != nil {
		if err := c.auth.Apply(ctx, req); err != nil {
			return req, nil, &authError{err: err}
		}
	}
	resp, err := c.httpClient.Do(req)
	return req, resp, err
}

// GetJSON issues a GET and decodes the JSON response into v. It reports
// false when the provider returned nothing usable.
func (c *Client) GetJSON(ctx context.Context, urlClass, endpoint string, v any) (bool, error) {
	body, err := c.Do(ctx, urlClass, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return false, err
	}
	return c.Decode(ctx, urlClass, body, v), nil
}

// PostJSON marshals payload as the request body and decodes the JSON
// response into v.
func (c *Client) PostJSON(ctx context.Context, urlClass, endpoint string, payload, v any) (bool, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("%s %s: encode body: %w", c.provider, urlClass, err)
	}
	return c.PostRaw(ctx, urlClass, endpoint, "application/json", encoded, v)
}

// PostRaw posts a pre-encoded body with the given content type.
func (c *Client) PostRaw(ctx context.Context, urlClass, endpoint, contentType string, payload []byte, v any) (bool, error) {
	body, err := c.Do(ctx, urlClass, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return false, err
	}
	return c.Decode(ctx, urlClass, body, v), nil
}

// Decode unmarshals body into v. Malformed JSON is logged and reported as
// an empty result rather than an error.
func (c *Client) Decode(ctx context.Context, urlClass string, body []byte, v any) bool {
	if len(bytes.TrimSpace(body)) == 0 {
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		logging.WarnWithContext(c.contextLogger(ctx), "malformed provider response",
			"provider_decode_failed",
			logging.String("url_class", urlClass),
			logging.String(logging.FieldImpact, "provider contributes no candidates for this query"),
			logging.String(logging.FieldErrorHint, "provider response shape may have changed"),
			logging.Error(err),
		)
		return false
	}
	return true
}

func (c *Client) logCall(ctx context.Context, urlClass, outcome string, status, attempts int, latency time.Duration) {
	logger := c.contextLogger(ctx)
	attrs := []any{
		logging.String("url_class", urlClass),
		logging.String("outcome", outcome),
		logging.Int("status", status),
		logging.Int("attempts", attempts),
		logging.Duration("latency", latency),
	}
	switch outcome {
	case OutcomeOK, OutcomeNotFound, OutcomeCanceled:
		logger.Debug("provider call", attrs...)
	case OutcomeCredentials:
		logger.Error("provider call", attrs...)
	default:
		logger.Warn("provider call", attrs...)
	}
}

// contextLogger stamps context fields and the provider name unless the
// context already carries one.
func (c *Client) contextLogger(ctx context.Context) *slog.Logger {
	logger := logging.WithContext(ctx, c.logger)
	if _, ok := services.ProviderFromContext(ctx); !ok {
		logger = logger.With(logging.String(logging.FieldProvider, c.provider))
	}
	return logger
}

func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
}

func sleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
