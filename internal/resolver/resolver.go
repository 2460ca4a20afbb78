// Package resolver runs the resolution chain for one raw title: primary
// database lookup, title-refinement retries, then snippet extraction from
// general web search. Backends convert their own failures to "no result",
// so the chain never sees an error, only absence.
package resolver

import (
	"context"
	"log/slog"
	"strings"

	"gamelength/internal/backends/hltb"
	"gamelength/internal/core"
	"gamelength/internal/titles"
)

// Primary is the structured game-length database, queried first.
type Primary interface {
	// Search resolves a query (optionally disambiguated by year) to an
	// estimate, or nil for no result.
	Search(ctx context.Context, query string, year int) *core.PlaytimeEstimate

	// Entries returns the backend's ranked entry list for a query.
	Entries(ctx context.Context, query string) []hltb.Entry
}

// Fallback is the general web-search service used when the primary yields
// nothing.
type Fallback interface {
	// SearchPlaytime extracts playtime figures from web search snippets.
	SearchPlaytime(ctx context.Context, query string) *core.PlaytimeEstimate

	// LookupTitle recovers a better-formed title for re-querying the primary.
	LookupTitle(ctx context.Context, query string) (string, bool)
}

// Resolver orchestrates the fallback chain. Each backend is tried at most
// once per request (twice for the primary, counting the title retry); there
// are no unbounded retries.
type Resolver struct {
	primary  Primary
	fallback Fallback // nil when the web search credential is absent
}

// New creates a resolver. Either backend may be nil (disabled, or missing
// credential); the chain skips the strategies that need it.
func New(primary Primary, fallback Fallback) *Resolver {
	return &Resolver{primary: primary, fallback: fallback}
}

// Resolve runs the chain for one raw title. Returns nil when every strategy
// is exhausted ("not found"). Steps run strictly sequentially: the later
// queries depend on what the earlier attempts recovered.
func (r *Resolver) Resolve(ctx context.Context, rawTitle string) *core.PlaytimeEstimate {
	year, _ := titles.ExtractYear(rawTitle)
	cleaned := titles.CleanTitle(rawTitle)
	if cleaned == "" {
		cleaned = strings.TrimSpace(rawTitle)
	}

	if r.primary != nil {
		if est := r.primary.Search(ctx, cleaned, year); est != nil {
			return est
		}

		// Some catalog entries are stored fully upper-cased and miss otherwise.
		if upper := strings.ToUpper(cleaned); upper != cleaned {
			if est := r.primary.Search(ctx, upper, year); est != nil {
				slog.Debug("resolved via upper-case retry", "title", cleaned)
				return est
			}
		}
	}

	if r.fallback == nil {
		return nil
	}

	if r.primary != nil {
		if est := r.retryWithRecoveredTitle(ctx, cleaned, year); est != nil {
			return est
		}
	}

	if est := r.fallback.SearchPlaytime(ctx, cleaned); est != nil {
		slog.Debug("resolved via search extraction", "title", cleaned)
		return est
	}

	return nil
}

// retryWithRecoveredTitle asks the web search for a better-formed title
// (Wikipedia-biased), then re-queries the primary backend with it and picks
// the closest entry by edit-distance confidence.
func (r *Resolver) retryWithRecoveredTitle(ctx context.Context, cleaned string, year int) *core.PlaytimeEstimate {
	title, ok := r.fallback.LookupTitle(ctx, cleaned)
	if !ok {
		return nil
	}

	candidate := titles.NormalizeQuery(title)
	if year > 0 {
		candidate = titles.RemoveYearFromQuery(candidate, year)
	}
	if candidate == "" || strings.EqualFold(candidate, cleaned) {
		return nil
	}

	entries := r.primary.Entries(ctx, candidate)
	best := bestMatch(candidate, entries)
	if best == nil {
		return nil
	}

	slog.Debug("resolved via recovered title", "title", cleaned, "candidate", candidate, "match", best.GameName)
	return best.Estimate()
}
