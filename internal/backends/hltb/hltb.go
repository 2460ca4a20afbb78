// Package hltb queries the HowLongToBeat search API, the primary source of
// canonical playtime data. Every failure on this path (timeout, transport
// error, empty result, parse error) is recovered locally and reported as
// "no result": the resolver is expected to fall through to the next strategy.
package hltb

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"gamelength/internal/core"
	"gamelength/internal/searchclient"
)

const (
	defaultBaseURL = "https://howlongtobeat.com"
	searchEndpoint = "/api/search"
	pageSize       = 20
)

// The API rejects requests without browser-looking headers.
const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	siteURL   = "https://howlongtobeat.com"
)

// Client talks to the HowLongToBeat search API.
type Client struct {
	client *searchclient.Client
}

// New creates a new HowLongToBeat client.
func New() *Client {
	c := &Client{}
	c.client = searchclient.New(searchclient.Config{
		BackendName: string(core.SourceHLTB),
		BaseURL:     defaultBaseURL,
	}, setHeaders)
	return c
}

// NewWithHTTPClient creates a client with a custom HTTP client. If httpClient
// is nil the default transport is used.
func NewWithHTTPClient(httpClient *http.Client) *Client {
	c := &Client{}
	c.client = searchclient.NewWithHTTPClient(httpClient, searchclient.Config{
		BackendName: string(core.SourceHLTB),
		BaseURL:     defaultBaseURL,
	}, setHeaders)
	return c
}

// SetBaseURL allows pointing the client at a different endpoint.
func (c *Client) SetBaseURL(url string) {
	c.client.SetBaseURL(url)
}

func setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", siteURL)
	req.Header.Set("Origin", siteURL)
}

// Entry is one game in the API's ranked result list. The comp_* fields are
// completion times in seconds; zero means the site has no data for that
// category.
type Entry struct {
	GameID       int    `json:"game_id"`
	GameName     string `json:"game_name"`
	CompMain     int    `json:"comp_main"`
	CompPlus     int    `json:"comp_plus"`
	Comp100      int    `json:"comp_100"`
	CompAll      int    `json:"comp_all"`
	ReleaseWorld int    `json:"release_world"`
}

// Estimate converts an entry into the canonical result shape. Second counts
// become hours rounded to two decimals; missing categories stay nil.
func (e Entry) Estimate() *core.PlaytimeEstimate {
	return &core.PlaytimeEstimate{
		GameName:      e.GameName,
		MainStory:     secondsToHours(e.CompMain),
		MainExtra:     secondsToHours(e.CompPlus),
		Completionist: secondsToHours(e.Comp100),
		AllStyles:     secondsToHours(e.CompAll),
		Source:        core.SourceHLTB,
	}
}

func secondsToHours(seconds int) *float64 {
	if seconds <= 0 {
		return nil
	}
	h := math.Round(float64(seconds)/3600*100) / 100
	return &h
}

// searchRequest is the API's expected payload shape.
type searchRequest struct {
	SearchType    string        `json:"searchType"`
	SearchTerms   []string      `json:"searchTerms"`
	SearchPage    int           `json:"searchPage"`
	Size          int           `json:"size"`
	SearchOptions searchOptions `json:"searchOptions"`
	UseCache      bool          `json:"useCache"`
}

type searchOptions struct {
	Games      gameOptions `json:"games"`
	Users      userOptions `json:"users"`
	Filter     string      `json:"filter"`
	Sort       int         `json:"sort"`
	Randomizer int         `json:"randomizer"`
}

type gameOptions struct {
	UserID        int       `json:"userId"`
	Platform      string    `json:"platform"`
	SortCategory  string    `json:"sortCategory"`
	RangeCategory string    `json:"rangeCategory"`
	RangeTime     timeRange `json:"rangeTime"`
	Gameplay      gameplay  `json:"gameplay"`
	RangeYear     yearRange `json:"rangeYear"`
	Modifier      string    `json:"modifier"`
}

type timeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type yearRange struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

type gameplay struct {
	Perspective string `json:"perspective"`
	Flow        string `json:"flow"`
	Genre       string `json:"genre"`
}

type userOptions struct {
	SortCategory string `json:"sortCategory"`
}

type searchResponse struct {
	Data []Entry `json:"data"`
}

// Entries issues a search and returns the API's ranked entry list. A nil
// slice means no result; errors never propagate past this boundary.
func (c *Client) Entries(ctx context.Context, query string) []Entry {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	req := searchRequest{
		SearchType:  "games",
		SearchTerms: strings.Fields(query),
		SearchPage:  1,
		Size:        pageSize,
		SearchOptions: searchOptions{
			Games: gameOptions{
				SortCategory:  "popular",
				RangeCategory: "main",
			},
			Users: userOptions{SortCategory: "postcount"},
		},
		UseCache: true,
	}

	var resp searchResponse
	err := c.client.Do(ctx, searchclient.Request{
		Method:   http.MethodPost,
		Endpoint: searchEndpoint,
		Body:     req,
	}, &resp)
	if err != nil {
		slog.Debug("hltb search failed", "query", query, "error", err)
		return nil
	}

	return resp.Data
}

// Search resolves a cleaned query into a playtime estimate. When a year is
// given (non-zero) and at least one entry's release year contains it, the
// first such entry wins; otherwise the backend's own ranking decides.
// Returns nil when the backend yields nothing.
func (c *Client) Search(ctx context.Context, query string, year int) *core.PlaytimeEstimate {
	entries := c.Entries(ctx, query)
	if len(entries) == 0 {
		return nil
	}

	selected := entries[0]
	if year > 0 && len(entries) > 1 {
		want := strconv.Itoa(year)
		for _, e := range entries {
			if e.ReleaseWorld != 0 && strings.Contains(strconv.Itoa(e.ReleaseWorld), want) {
				selected = e
				break
			}
		}
	}

	return selected.Estimate()
}
