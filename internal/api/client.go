package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/julianstephens/lifecal/internal/constants"
	"github.com/julianstephens/lifecal/internal/logger"
	"github.com/julianstephens/lifecal/internal/session"
)

// Client talks to the Life Calendar REST backend.
type Client struct {
	baseURL        string
	anon           *http.Client
	authed         *http.Client
	limiter        *rate.Limiter
	onUnauthorized func()
}

type Option func(*options)

type options struct {
	transport      http.RoundTripper
	rps            int
	onUnauthorized func()
}

// WithTransport replaces the base round tripper. Tests pass httptest transports here.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithRateLimit caps outgoing requests per second. Zero or less disables pacing.
func WithRateLimit(rps int) Option {
	return func(o *options) { o.rps = rps }
}

// WithUnauthorizedHandler registers fn to run when the backend answers 401.
func WithUnauthorizedHandler(fn func()) Option {
	return func(o *options) { o.onUnauthorized = fn }
}

// New creates a client for baseURL. tokens supplies the bearer token for
// authenticated endpoints and may be nil for an anonymous client.
func New(baseURL string, tokens oauth2.TokenSource, opts ...Option) *Client {
	o := options{transport: http.DefaultTransport, rps: constants.DefaultRequestsPerSec}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		anon:           &http.Client{Timeout: constants.RequestTimeout, Transport: o.transport},
		onUnauthorized: o.onUnauthorized,
	}
	c.authed = c.anon
	if tokens != nil {
		c.authed = &http.Client{
			Timeout:   constants.RequestTimeout,
			Transport: &oauth2.Transport{Source: tokens, Base: o.transport},
		}
	}
	if o.rps > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(o.rps), o.rps)
	}
	return c
}

// ResolveBaseURL picks the backend URL: flag, then environment, then stored
// setting, then the built-in default.
func ResolveBaseURL(flag, stored string) string {
	for _, candidate := range []string{flag, os.Getenv(constants.APIURLEnvVar), stored} {
		if strings.TrimSpace(candidate) != "" {
			return strings.TrimSpace(candidate)
		}
	}
	return constants.DefaultAPIURL
}

// BaseURL returns the backend URL this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	anon   bool
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	log := logger.For("api")
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrTransport, err)
		}
	}

	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		buf, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hc := c.authed
	if r.anon {
		hc = c.anon
	}

	resp, err := hc.Do(req)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return ErrUnauthorized
		}
		log.Warn("Request failed", "method", r.method, "path", r.path, "error", err)
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrTransport, err)
	}
	log.Debug("Request", "method", r.method, "path", r.path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: errorMessage(payload)}
		if resp.StatusCode == http.StatusUnauthorized && !r.anon && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		log.Warn("Backend error", "method", r.method, "path", r.path, "status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", r.method, r.path, err)
	}
	return nil
}

// errorMessage extracts a human readable message from an error body.
func errorMessage(payload []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		return body.Error
	}
	return ""
}

// Ping checks that the backend answers HTTP at all. Any response, including
// an error status, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	err := c.do(ctx, request{method: http.MethodGet, path: "/", anon: true}, nil)
	var apiErr *Error
	if err == nil || errors.As(err, &apiErr) {
		return nil
	}
	return err
}
