// Package extract locates playtime figures in unstructured search-result
// text. It understands the snippet shapes Google produces for
// howlongtobeat.com pages: a featured answer box and organic result snippets
// with optional "Main Story:" / "Completionist:" labels.
package extract

import (
	"regexp"
	"strings"

	"gamelength/internal/hours"
)

// Result is a single organic web-search result.
type Result struct {
	Link    string
	Title   string
	Snippet string
}

// Results is the search response surface the extractor scans: the provider's
// answer-box text plus the ranked organic results.
type Results struct {
	Answer  string
	Organic []Result
}

// Playtimes holds the hour figures recovered from one search response.
// Fields are nil when no usable value was found.
type Playtimes struct {
	MainStory     *float64
	MainExtra     *float64
	Completionist *float64
}

// Accepted hour values. Anything outside this range is treated as noise
// (typos, unrelated quantities).
const (
	minHours = 0.25
	maxHours = 500
)

// hltbDomain restricts organic-result scanning to the canonical source.
const hltbDomain = "howlongtobeat.com"

// timeExpr matches a number with an optional decimal part or fraction glyph,
// optionally extended into a hyphenated range. It must be followed by an
// hour-unit word: a bare number is never accepted.
const timeExpr = `\d+(?:\.\d+)?[½¼¾]?(?:\s*-\s*\d+(?:\.\d+)?[½¼¾]?)?`

var (
	timeRe          = regexp.MustCompile(`(?i)(` + timeExpr + `)\s*(?:hours?|hrs?)`)
	rateRe          = regexp.MustCompile(`(?i)\d+(?:\.\d+)?[½¼¾]?\s*(?:hours?|hrs?)\s+(?:a|per)\s+day`)
	mainStoryRe     = regexp.MustCompile(`(?i)main story[:\s]+(` + timeExpr + `)\s*(?:hours?|hrs?)`)
	completionistRe = regexp.MustCompile(`(?i)(?:completionist|100%)[:\s]+(` + timeExpr + `)\s*(?:hours?|hrs?)`)
)

// FromSearch scans a full search response: the answer box first, then organic
// results restricted to howlongtobeat.com pages, in listed order. The first
// source yielding a usable main-story value stops the scan. Returns nil when
// no main-story value could be extracted anywhere.
func FromSearch(res Results) *Playtimes {
	if res.Answer != "" {
		if pt := FromText(res.Answer); pt != nil {
			return pt
		}
	}

	for _, r := range res.Organic {
		if !strings.Contains(r.Link, hltbDomain) {
			continue
		}
		if pt := FromText(r.Snippet); pt != nil {
			return pt
		}
	}

	return nil
}

// FromText extracts playtimes from a single text block. Explicitly labeled
// values win; otherwise valid hour values are assigned positionally in
// left-to-right order (first -> main story, second distinct -> main+extra,
// third -> completionist). Returns nil when no main-story value was found,
// or when the block describes a play rate rather than a completion time.
func FromText(text string) *Playtimes {
	if text == "" {
		return nil
	}

	// "1.5 hours a day" is a rate, not a total. One such phrase poisons the
	// whole block for extraction purposes.
	if rateRe.MatchString(text) {
		return nil
	}

	pt := &Playtimes{}

	if m := mainStoryRe.FindStringSubmatch(text); m != nil {
		if v, ok := parseValid(m[1]); ok {
			pt.MainStory = &v
		}
	}
	if m := completionistRe.FindStringSubmatch(text); m != nil {
		if v, ok := parseValid(m[1]); ok {
			pt.Completionist = &v
		}
	}

	if pt.MainStory == nil {
		assignPositional(pt, text)
	}

	if pt.MainStory == nil {
		return nil
	}
	return pt
}

// assignPositional takes valid time values in order of appearance: the first
// becomes main story, the second distinct value main+extra, the third
// completionist. An already-labeled completionist value is kept.
func assignPositional(pt *Playtimes, text string) {
	var values []float64
	for _, m := range timeRe.FindAllStringSubmatch(text, -1) {
		v, ok := parseValid(m[1])
		if !ok {
			continue
		}
		if containsValue(values, v) {
			continue
		}
		values = append(values, v)
		if len(values) == 3 {
			break
		}
	}

	if len(values) > 0 {
		pt.MainStory = &values[0]
	}
	if len(values) > 1 {
		pt.MainExtra = &values[1]
	}
	if len(values) > 2 && pt.Completionist == nil {
		pt.Completionist = &values[2]
	}
}

func containsValue(values []float64, v float64) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}

// parseValid parses a time expression and applies the validity range.
func parseValid(expr string) (float64, bool) {
	v, ok := hours.Parse(expr)
	if !ok {
		return 0, false
	}
	if v < minHours || v > maxHours {
		return 0, false
	}
	return v, true
}
