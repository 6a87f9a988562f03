package researchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/research-agent/internal/core/domain"
	"github.com/custodia-labs/research-agent/internal/core/ports/driven"
	"github.com/custodia-labs/research-agent/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.ResearchAPI = (*Client)(nil)

// Endpoint paths and headers.
const (
	SearchPath = "/search"
	ExportPath = "/generate_pdf"

	HeaderRequestID = "X-Request-ID"
	userAgent       = "research-agent"
)

// Config holds configuration for the research service client.
type Config struct {
	// BaseURL is the service root (default: http://localhost:8000).
	BaseURL string

	// RequestsPerSecond throttles outbound requests. Zero means unlimited.
	RequestsPerSecond float64

	// HTTPClient overrides the underlying client. It has no timeout by
	// default; requests end when the caller's context does.
	HTTPClient *http.Client
}

// Client talks to the research service.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *Throttle
}

// NewClient creates a new research service client.
// The base URL is fixed for the lifetime of the client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}

	return &Client{
		client:  cfg.HTTPClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: NewThrottle(cfg.RequestsPerSecond),
	}
}

// BaseURL returns the service root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchSearchResults runs a search and decodes the result list.
func (c *Client) FetchSearchResults(ctx context.Context, q domain.SearchQuery) (*domain.SearchResponse, error) {
	body, err := c.get(ctx, SearchPath, "application/json", q)
	if err != nil {
		return nil, err
	}

	var resp domain.SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &domain.DecodeError{Endpoint: SearchPath, Err: err}
	}
	if resp.Results == nil {
		resp.Results = []domain.SearchResult{}
	}

	logger.Debug("%s returned %d results", SearchPath, len(resp.Results))
	return &resp, nil
}

// FetchExportBlob requests a PDF export. The body is returned unchanged.
func (c *Client) FetchExportBlob(ctx context.Context, q domain.SearchQuery) ([]byte, error) {
	body, err := c.get(ctx, ExportPath, "application/pdf", q)
	if err != nil {
		return nil, err
	}

	logger.Debug("%s returned %d bytes", ExportPath, len(body))
	return body, nil
}

// EndpointURL builds the full request URL for an endpoint and query.
// Parameters keep the order query, country, ui_lang and spaces encode as %20.
func (c *Client) EndpointURL(path string, q domain.SearchQuery) string {
	return c.baseURL + path +
		"?query=" + escapeComponent(q.Text) +
		"&country=" + escapeComponent(q.Country.String()) +
		"&ui_lang=" + escapeComponent(q.UILanguage.String())
}

// escapeComponent percent-encodes a query value. A literal plus is already
// escaped by QueryEscape, so every remaining plus is a space.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// get performs one GET and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, path, accept string, q domain.SearchQuery) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &domain.TransportError{Op: path, Err: err}
	}

	endpoint := c.EndpointURL(path, q)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &domain.TransportError{Op: path, Err: fmt.Errorf("create request: %w", err)}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(HeaderRequestID, requestID)

	logger.Debug("GET %s [%s]", endpoint, requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: path, Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &domain.HTTPStatusError{Endpoint: path, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Op: path, Err: fmt.Errorf("read response: %w", err)}
	}

	return body, nil
}
