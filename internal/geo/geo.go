// Package geo resolves the caller's position as a [longitude, latitude] pair.
package geo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"advocatehub/internal/apiclient"
)

// ErrNotSupported is returned when no geolocation capability is available.
var ErrNotSupported = errors.New("geolocation is not supported")

// PlatformError carries a failure from the underlying position query unchanged.
type PlatformError struct {
	Err error
}

func (e *PlatformError) Error() string { return e.Err.Error() }

func (e *PlatformError) Unwrap() error { return e.Err }

// Coordinates is an ordered [longitude, latitude] pair.
type Coordinates [2]float64

// Longitude returns the first element.
func (c Coordinates) Longitude() float64 { return c[0] }

// Latitude returns the second element.
func (c Coordinates) Latitude() float64 { return c[1] }

// Locator returns the current position. Each call is an independent query.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// Unsupported is a Locator for deployments without a geolocation source.
type Unsupported struct{}

// Locate always fails with ErrNotSupported.
func (Unsupported) Locate(context.Context) (Coordinates, error) {
	return Coordinates{}, ErrNotSupported
}

type clientIPKey struct{}

// WithClientIP attaches the address whose position should be resolved.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP returns the address set by WithClientIP.
func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

// ClientSource yields the shared API client. *apiclient.Provider satisfies it.
type ClientSource interface {
	Get() (*apiclient.Client, error)
}

// HTTPLocator asks the backend API for the position of the client address in ctx.
type HTTPLocator struct {
	clients ClientSource
	path    string
}

// NewHTTPLocator returns a locator querying path through clients. An empty path
// means the deployment has no geolocation source.
func NewHTTPLocator(clients ClientSource, path string) *HTTPLocator {
	return &HTTPLocator{clients: clients, path: path}
}

type position struct {
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`
}

var errIncompletePosition = errors.New("position unavailable")

// Locate queries the configured endpoint once.
func (l *HTTPLocator) Locate(ctx context.Context) (Coordinates, error) {
	if l == nil || l.clients == nil || l.path == "" {
		return Coordinates{}, ErrNotSupported
	}
	c, err := l.clients.Get()
	if err != nil {
		return Coordinates{}, &PlatformError{Err: err}
	}

	target, err := withIP(l.path, ClientIP(ctx))
	if err != nil {
		return Coordinates{}, &PlatformError{Err: err}
	}

	var pos position
	if err := c.Do(ctx, http.MethodGet, target, nil, &pos); err != nil {
		return Coordinates{}, &PlatformError{Err: err}
	}
	if pos.Longitude == nil || pos.Latitude == nil {
		return Coordinates{}, &PlatformError{Err: errIncompletePosition}
	}
	return Coordinates{*pos.Longitude, *pos.Latitude}, nil
}

// withIP adds ip to the query of path, keeping any query path already has.
func withIP(path, ip string) (string, error) {
	if ip == "" {
		return path, nil
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("locate path %q: %w", path, err)
	}
	q := ref.Query()
	q.Set("ip", ip)
	ref.RawQuery = q.Encode()
	return ref.String(), nil
}
