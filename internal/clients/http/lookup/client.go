// Package lookup issues bounded, non-retrying reads against the public read
// contracts of peer services. Each call resolves one entity reference to
// either the owning service's authoritative record or a typed failure.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultTimeout bounds a single lookup when the caller supplies no client.
const DefaultTimeout = 5 * time.Second

var (
	// ErrNotFound means the owning service reported that no such identifier exists.
	ErrNotFound = errors.New("entity not found in owning service")
	// ErrMalformedResponse means the owning service answered with a body that
	// does not decode into the expected entity shape.
	ErrMalformedResponse = errors.New("malformed response from owning service")
)

// UnreachableError covers connection failures, timeouts, and unexpected
// upstream statuses. Distinct from ErrNotFound: these are operational and
// retryable by the caller, not deterministic input errors.
type UnreachableError struct {
	Service string
	Err     error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("%s unreachable: %v", e.Service, e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// User is the wire representation reported by the user service.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Product is the wire representation reported by the product service.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// Client reads entities from one peer service. It never caches, never
// retries, and never mutates remote state; retry policy belongs to callers.
type Client struct {
	service    string
	baseURL    string
	httpClient *http.Client
}

// NewClient instantiates a lookup client with sane defaults. service names the
// peer (used in failure outcomes), baseURL is its root address.
func NewClient(service, baseURL string, httpClient *http.Client) (*Client, error) {
	service = strings.TrimSpace(service)
	if service == "" {
		return nil, errors.New("lookup service name is required")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%s base URL is required", service)
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{service: service, baseURL: baseURL, httpClient: httpClient}, nil
}

// Service returns the peer name this client resolves against.
func (c *Client) Service() string { return c.service }

// GetUser resolves a user reference via GET /api/users/{id}.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("user id is required")
	}
	var user User
	if err := c.getJSON(ctx, "/api/users/"+url.PathEscape(id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProduct resolves a product reference via GET /api/products/{id}.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("product id is required")
	}
	var product Product
	if err := c.getJSON(ctx, "/api/products/"+url.PathEscape(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if c == nil || c.httpClient == nil {
		return errors.New("lookup client not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", c.service, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UnreachableError{Service: c.service, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &UnreachableError{Service: c.service, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !envelope.Success || len(envelope.Data) == 0 {
		return fmt.Errorf("%w: success flag not set", ErrMalformedResponse)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
