// Package http provides an HTTP-based implementation of
// govmap.ContentSource backed by the GOV.UK Content API.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/govmap"
)

// DefaultBaseURL is the production Content API endpoint.
const DefaultBaseURL = "https://www.gov.uk/api/content"

// DefaultTimeout is the default timeout for API requests.
const DefaultTimeout = 10 * time.Second

// userAgent identifies govmap to the API.
const userAgent = "govmap/1.0"

// Ensure Source implements govmap.ContentSource at compile time.
var _ govmap.ContentSource = (*Source)(nil)

// Source retrieves content records over HTTP.
type Source struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
}

// Option configures a Source.
type Option func(*Source)

// WithBaseURL overrides the API endpoint. Used in tests.
func WithBaseURL(url string) Option {
	return func(s *Source) {
		s.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithTimeout sets the per-request timeout.
// Defaults to DefaultTimeout (10s).
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.timeout = d
	}
}

// NewSource creates a Content API client.
func NewSource(opts ...Option) *Source {
	s := &Source{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.client = &http.Client{Timeout: s.timeout}
	return s
}

// GetContent fetches the record at the given root-relative path.
//
// Error codes: ENOTFOUND for 404s, ERATELIMIT for 429s, EINVALID for
// responses that don't parse, EUNAVAILABLE for everything else.
func (s *Source) GetContent(ctx context.Context, path string) (*govmap.ContentRecord, error) {
	url := s.baseURL + "/" + strings.TrimPrefix(path, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, govmap.Errorf(govmap.EUNAVAILABLE, "request failed for %s: %v", path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Fall through to decoding.
	case http.StatusNotFound:
		return nil, govmap.Errorf(govmap.ENOTFOUND, "content not found at %s", path)
	case http.StatusTooManyRequests:
		return nil, govmap.Errorf(govmap.ERATELIMIT, "rate limit exceeded")
	default:
		return nil, govmap.Errorf(govmap.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, path)
	}

	var rec govmap.ContentRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, govmap.Errorf(govmap.EINVALID, "invalid JSON response for %s", path)
	}
	if rec.BasePath == "" {
		rec.BasePath = path
	}
	return &rec, nil
}

// String describes the source for logs.
func (s *Source) String() string {
	return fmt.Sprintf("content-api(%s)", s.baseURL)
}
