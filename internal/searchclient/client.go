// Package searchclient provides a base HTTP client for search backends with
// request marshaling, standardized error handling and a bounded timeout.
package searchclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"gamelength/internal/core"
	"gamelength/internal/httpclient"
)

// Config holds configuration for the search client
type Config struct {
	// BackendName identifies the backend for error messages
	BackendName string

	// BaseURL is the API base URL
	BaseURL string
}

// HeaderSetter is a function that sets headers on an HTTP request
type HeaderSetter func(req *http.Request)

// Client is a base HTTP client for search backends
type Client struct {
	httpClient   *http.Client
	config       Config
	headerSetter HeaderSetter
}

// New creates a new search client with the given configuration
func New(config Config, headerSetter HeaderSetter) *Client {
	return &Client{
		httpClient:   httpclient.NewDefaultHTTPClient(),
		config:       config,
		headerSetter: headerSetter,
	}
}

// NewWithHTTPClient creates a new search client with a custom HTTP client
func NewWithHTTPClient(httpClient *http.Client, config Config, headerSetter HeaderSetter) *Client {
	if httpClient == nil {
		httpClient = httpclient.NewDefaultHTTPClient()
	}
	return &Client{
		httpClient:   httpClient,
		config:       config,
		headerSetter: headerSetter,
	}
}

// SetBaseURL updates the base URL
func (c *Client) SetBaseURL(url string) {
	c.config.BaseURL = url
}

// BaseURL returns the current base URL
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Request represents an HTTP request to be made
type Request struct {
	Method   string
	Endpoint string
	Body     interface{} // Will be JSON marshaled if not nil
	Headers  map[string]string
}

// Do executes a request and unmarshals the JSON response into result.
func (c *Client) Do(ctx context.Context, req Request, result interface{}) error {
	body, err := c.DoRaw(ctx, req)
	if err != nil {
		return err
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return core.NewBackendError(c.config.BackendName, "failed to unmarshal response: "+err.Error(), err)
		}
	}

	return nil
}

// DoRaw executes a request and returns the raw response body.
func (c *Client) DoRaw(ctx context.Context, req Request) ([]byte, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, core.NewBackendError(c.config.BackendName, "failed to send request: "+err.Error(), err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.NewBackendError(c.config.BackendName, "failed to read response: "+err.Error(), err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, core.NewBackendError(c.config.BackendName,
			"unexpected status "+resp.Status+": "+truncate(string(body), 200), nil)
	}

	return body, nil
}

// buildRequest creates an HTTP request from a Request
func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	url := c.config.BaseURL + req.Endpoint

	var bodyReader io.Reader
	if req.Body != nil {
		bodyBytes, err := json.Marshal(req.Body)
		if err != nil {
			return nil, core.NewBackendError(c.config.BackendName, "failed to marshal request", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, bodyReader)
	if err != nil {
		return nil, core.NewBackendError(c.config.BackendName, "failed to create request", err)
	}

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	// Backend-specific headers
	if c.headerSetter != nil {
		c.headerSetter(httpReq)
	}

	// Forward request ID if present in context
	if requestID := core.GetRequestID(ctx); requestID != "" {
		httpReq.Header.Set("X-Request-ID", requestID)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
