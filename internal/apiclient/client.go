// Package apiclient is the shared outbound HTTP client for the backend API.
//
// Every request carries Content-Type: application/json and the client keeps a cookie
// jar, so cookies set by one response are sent on later requests. There is no retry,
// no timeout and no interceptor beyond tracing.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"advocatehub/internal/config"
)

// DefaultBaseURL is used when no override is configured.
const DefaultBaseURL = "http://localhost:3000"

const contentTypeJSON = "application/json"

// ErrClosed is returned by Provider.Get after Close when no client had been built.
var ErrClosed = errors.New("api client provider closed")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api responded %d: %s", e.StatusCode, e.Body)
}

// Client is safe for concurrent use and is not modified after New returns.
type Client struct {
	base *url.URL
	http *http.Client
}

// New builds a Client for cfg.BaseURL, falling back to DefaultBaseURL.
func New(cfg config.APIConfig) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q: scheme and host are required", raw)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		base: base,
		http: &http.Client{
			Jar:       jar,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

// BaseURL returns a copy of the configured base address.
func (c *Client) BaseURL() *url.URL {
	u := *c.base
	return &u
}

// Do sends in (if non-nil) as JSON to path, resolved against the base URL, and decodes
// the response into out (if non-nil).
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("invalid request path %q: %w", path, err)
	}
	target := c.base.ResolveReference(ref)

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Close drops idle keep-alive connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// Provider lazily builds a single Client on first use and tears it down on Close.
type Provider struct {
	cfg    config.APIConfig
	once   sync.Once
	client *Client
	err    error
}

// NewProvider returns a Provider for cfg. No client is built until Get is called.
func NewProvider(cfg config.APIConfig) *Provider {
	return &Provider{cfg: cfg}
}

// Get returns the shared Client, constructing it on the first call.
func (p *Provider) Get() (*Client, error) {
	p.once.Do(func() {
		p.client, p.err = New(p.cfg)
	})
	return p.client, p.err
}

// Close releases the client if it was ever built.
func (p *Provider) Close() {
	p.once.Do(func() {
		p.err = ErrClosed
	})
	if p.client != nil {
		p.client.Close()
	}
}
