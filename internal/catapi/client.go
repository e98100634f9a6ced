// Package catapi is a minimal client for TheCatAPI image search endpoint.
package catapi

import (
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
)

const (
	// DefaultBaseURL is the public TheCatAPI endpoint.
	DefaultBaseURL = "https://api.thecatapi.com"
	// DefaultTimeout bounds a single upstream request.
	DefaultTimeout = 30 * time.Second
	// MaxSearchLimit is the largest page TheCatAPI returns for authenticated keys.
	MaxSearchLimit = 100

	apiKeyHeader    = "x-api-key"
	searchPath      = "/v1/images/search"
	maxResponseSize = 8 << 20
)

// ErrUpstream marks any failure talking to or decoding the upstream API.
var ErrUpstream = errors.New("catapi: upstream request failed")

// Config configures a Client.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Breed is the subset of breed metadata the importer consumes.
type Breed struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Origin      string `json:"origin"`
	LifeSpan    string `json:"life_span"`
	Temperament string `json:"temperament"`
}

// Image is a single search result.
type Image struct {
	ID     string  `json:"id"`
	URL    string  `json:"url"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Breeds []Breed `json:"breeds"`
}

// PrimaryBreed returns the first breed entry, if any.
func (i Image) PrimaryBreed() (Breed, bool) {
	if len(i.Breeds) == 0 {
		return Breed{}, false
	}
	return i.Breeds[0], true
}

// SearchParams narrows an image search.
type SearchParams struct {
	Limit     int
	HasBreeds bool
}

// Client issues requests against the image search API.
type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
}

// NewClient validates cfg and returns a ready client.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}

	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("catapi: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("catapi: base url %q must be absolute", raw)
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("catapi: api key is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: base,
		apiKey:  apiKey,
		http:    httpClient,
	}, nil
}

// SearchImages performs one GET against the search endpoint. Any transport,
// status or decoding failure is reported as ErrUpstream.
func (c *Client) SearchImages(ctx context.Context, params SearchParams) ([]Image, error) {
	if c == nil {
		return nil, errors.New("catapi: client not initialised")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	limit := params.Limit
	if limit <= 0 || limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	endpoint := c.baseURL.JoinPath(searchPath)
	query := endpoint.Query()
	query.Set("limit", strconv.Itoa(limit))
	if params.HasBreeds {
		query.Set("has_breeds", "1")
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("catapi: build request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}

	var images []Image
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&images); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrUpstream, err)
	}

	return images, nil
}
