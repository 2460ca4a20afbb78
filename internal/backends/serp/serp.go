// Package serp queries a SerpAPI-style web search service, the fallback
// source when the HowLongToBeat database yields nothing. Search responses
// are loose JSON whose interesting parts (answer box, organic results) may
// or may not be present, so they are read with gjson rather than typed
// structs. As with the primary backend, every failure is recovered locally
// and reported as "no result".
package serp

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	"gamelength/internal/core"
	"gamelength/internal/extract"
	"gamelength/internal/searchclient"
	"gamelength/internal/titles"
)

const (
	defaultBaseURL = "https://serpapi.com"
	searchEndpoint = "/search.json"

	// resultCap bounds how many organic results one query requests.
	resultCap = 5
)

// Client talks to the web search API.
type Client struct {
	client *searchclient.Client
	apiKey string
}

// New creates a new web search client.
func New(apiKey string) *Client {
	c := &Client{apiKey: apiKey}
	c.client = searchclient.New(searchclient.Config{
		BackendName: string(core.SourceSerp),
		BaseURL:     defaultBaseURL,
	}, nil)
	return c
}

// NewWithHTTPClient creates a client with a custom HTTP client. If httpClient
// is nil the default transport is used.
func NewWithHTTPClient(apiKey string, httpClient *http.Client) *Client {
	c := &Client{apiKey: apiKey}
	c.client = searchclient.NewWithHTTPClient(httpClient, searchclient.Config{
		BackendName: string(core.SourceSerp),
		BaseURL:     defaultBaseURL,
	}, nil)
	return c
}

// SetBaseURL allows pointing the client at a different endpoint.
func (c *Client) SetBaseURL(url string) {
	c.client.SetBaseURL(url)
}

// SearchPlaytime searches for "howlongtobeat <query>" and runs the playtime
// extractor over the response. Biasing the query toward the primary backend's
// own indexed pages makes the featured answer box reliably carry playtime
// figures. Returns nil when nothing usable was extracted.
func (c *Client) SearchPlaytime(ctx context.Context, query string) *core.PlaytimeEstimate {
	results, ok := c.search(ctx, "howlongtobeat "+query)
	if !ok {
		return nil
	}

	pt := extract.FromSearch(results)
	if pt == nil {
		return nil
	}

	return &core.PlaytimeEstimate{
		GameName:      query,
		MainStory:     pt.MainStory,
		MainExtra:     pt.MainExtra,
		Completionist: pt.Completionist,
		Source:        core.SourceSerp,
	}
}

// LookupTitle searches "<query> videogame site:wikipedia.org" purely to
// recover a better-formed title for re-querying the primary backend. The
// returned title has already been through CleanTitle. Returns false when the
// search yields nothing.
func (c *Client) LookupTitle(ctx context.Context, query string) (string, bool) {
	results, ok := c.search(ctx, query+" videogame site:wikipedia.org")
	if !ok || len(results.Organic) == 0 {
		return "", false
	}

	title := titles.CleanTitle(results.Organic[0].Title)
	if title == "" {
		return "", false
	}
	return title, true
}

// search issues one query and maps the loose response onto the extractor's
// input shape. The answer box text prefers the direct answer field over its
// snippet, matching what the provider populates for featured snippets.
func (c *Client) search(ctx context.Context, query string) (extract.Results, bool) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("num", strconv.Itoa(resultCap))
	params.Set("api_key", c.apiKey)

	body, err := c.client.DoRaw(ctx, searchclient.Request{
		Method:   http.MethodGet,
		Endpoint: searchEndpoint + "?" + params.Encode(),
	})
	if err != nil {
		slog.Debug("serp search failed", "query", query, "error", err)
		return extract.Results{}, false
	}

	var results extract.Results
	results.Answer = gjson.GetBytes(body, "answer_box.answer").String()
	if results.Answer == "" {
		results.Answer = gjson.GetBytes(body, "answer_box.snippet").String()
	}

	for _, r := range gjson.GetBytes(body, "organic_results").Array() {
		results.Organic = append(results.Organic, extract.Result{
			Link:    r.Get("link").String(),
			Title:   r.Get("title").String(),
			Snippet: r.Get("snippet").String(),
		})
	}

	return results, true
}
