// Package remote is an HTTP client for the netlee read API. It implements
// the resolver's local and catalog sources so a client process can resolve
// and play titles served by netleed.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/netlee/internal/media"
)

// DefaultTimeout bounds every request. A request that exceeds it is a
// transport error.
const DefaultTimeout = 10 * time.Second

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error %d (%s): %s", e.Status, e.Code, e.Message)
}

// Unwrap classifies the response: 404 is not found, anything else is a
// transport failure.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return media.ErrNotFound
	}
	return media.ErrTransport
}

// Client wraps HTTP calls to the netlee server.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sends "Authorization: Bearer <token>" on every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new netlee API client.
func NewClient(serverURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(serverURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: create request: %w", media.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", media.ErrTransport, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: decode %s: %w", media.ErrTransport, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{Status: resp.StatusCode}

	var parsed struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Error != "" {
		apiErr.Code = parsed.Code
		apiErr.Message = parsed.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// LocalMovie fetches the payload of a user-library title.
func (c *Client) LocalMovie(ctx context.Context, id string) (*media.LocalPayload, error) {
	var p media.LocalPayload
	if err := c.do(ctx, http.MethodGet, "/api/v1/movies/local/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CatalogMovie fetches the payload of a catalog title.
func (c *Client) CatalogMovie(ctx context.Context, id string) (*media.CatalogPayload, error) {
	var p media.CatalogPayload
	if err := c.do(ctx, http.MethodGet, "/api/v1/movies/tmdb/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Resolve asks the server to resolve ref.
func (c *Client) Resolve(ctx context.Context, ref media.ContentRef) (*ResolveResponse, error) {
	var r ResolveResponse
	path := fmt.Sprintf("/api/v1/resolve/%s/%s", url.PathEscape(string(ref.Origin)), url.PathEscape(ref.ID))
	if err := c.do(ctx, http.MethodGet, path, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Status returns server status.
func (c *Client) Status(ctx context.Context) (*StatusResponse, error) {
	var s StatusResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/status", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListMovies returns one page of the local library.
func (c *Client) ListMovies(ctx context.Context, limit, offset int) (*ListMoviesResponse, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var r ListMoviesResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/library?"+q.Encode(), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// AddMovie adds a title to the local library.
func (c *Client) AddMovie(ctx context.Context, req MovieRequest) (*Movie, error) {
	var m Movie
	if err := c.do(ctx, http.MethodPost, "/api/v1/library", req, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteMovie removes a title from the local library.
func (c *Client) DeleteMovie(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/library/"+url.PathEscape(id), nil, nil)
}

// SearchLibrary fuzzy-matches titles in the local library.
func (c *Client) SearchLibrary(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	q := url.Values{}
	q.Set("q", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var r SearchResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/library/search?"+q.Encode(), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// SetCatalogAsset attaches a full-length asset to a catalog title.
func (c *Client) SetCatalogAsset(ctx context.Context, tmdbID int64, streamURL, directURL *string) (*CatalogAsset, error) {
	body := struct {
		StreamURL *string `json:"stream_url,omitempty"`
		DirectURL *string `json:"direct_url,omitempty"`
	}{streamURL, directURL}

	var a CatalogAsset
	path := fmt.Sprintf("/api/v1/catalog/%d/asset", tmdbID)
	if err := c.do(ctx, http.MethodPut, path, body, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ClearCatalogAsset removes the full-length asset of a catalog title.
func (c *Client) ClearCatalogAsset(ctx context.Context, tmdbID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/catalog/%d/asset", tmdbID), nil, nil)
}

// Events returns recent events, newest first. A non-nil ref restricts
// the result to one title, oldest first.
func (c *Client) Events(ctx context.Context, ref *media.ContentRef, limit int) (*EventsResponse, error) {
	path := "/api/v1/events?limit=" + strconv.Itoa(limit)
	if ref != nil {
		path = fmt.Sprintf("/api/v1/events/%s/%s", url.PathEscape(string(ref.Origin)), url.PathEscape(ref.ID))
	}

	var r EventsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
