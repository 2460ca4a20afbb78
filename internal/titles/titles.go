// Package titles cleans and decomposes raw game titles into searchable
// queries and cache keys. Search-query cleaning and cache keying are two
// different normalizations: the cache key is the stricter of the two.
package titles

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Word lists are configuration data, kept ordered so the cleaning rules can
// be tested and extended independently of the algorithm.
var (
	// unwantedPrefixes are storefront/media-source prefixes stripped from the
	// start of a title. At most one prefix is removed.
	unwantedPrefixes = []string{
		"Buy",
		"Download",
		"Amazon.com",
		"Steam",
		"PlayStation Store",
		"Xbox Store",
		"Wikipedia",
		"IMDb",
		"Fandom",
		"Video",
		"Game",
		"Games",
	}

	// trailingStopwords are dangling words stripped from the end of a title,
	// typically left over from headline fragments ("Buy Celeste on ...").
	trailingStopwords = []string{
		"on",
		"at",
		"for",
		"in",
		"the",
		"a",
		"an",
		"by",
		"with",
		"from",
		"to",
	}

	// unwantedTerms are whole words removed anywhere in the title after
	// prefix/suffix stripping has run.
	unwantedTerms = []string{
		"wikipedia",
		"steam",
		"buy",
		"game",
		"video",
		"playstation",
		"xbox",
		"fandom",
		"amazon",
		"download",
		"old",
		"games",
		"imdb",
		"on",
	}

	// meaningfulPhrases are two-word sequences kept intact even when one of
	// their words appears in unwantedTerms ("Save the World" etc).
	meaningfulPhrases = []string{
		"save the",
	}
)

var (
	yearRe          = regexp.MustCompile(`\([^)]*?(\d{4})[^)]*?\)`)
	trailingPunctRe = regexp.MustCompile(`[-:|]\s*$`)
	wikipediaTailRe = regexp.MustCompile(`\s*- Wikipedi.*$`)
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	trademarkRe     = regexp.MustCompile(`[™®©]`)
)

// ExtractYear finds a four-digit number enclosed in parentheses anywhere in
// the title ("God of War (2005 video game)" -> 2005). The first match wins.
// A four-digit number outside parentheses is never treated as a year.
func ExtractYear(title string) (int, bool) {
	m := yearRe.FindStringSubmatch(title)
	if m == nil {
		return 0, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return year, true
}

// CleanTitle turns a noisy title (search headline, storefront listing) into a
// searchable query. Prefix and suffix stripping run before whole-word
// filtering: a legitimate title word that merely starts with a prefix string
// must not be treated as a suffix candidate.
func CleanTitle(title string) string {
	title = strings.TrimSpace(title)

	// Strip at most one storefront prefix from the current start.
	lower := strings.ToLower(title)
	for _, prefix := range unwantedPrefixes {
		if strings.HasPrefix(lower, strings.ToLower(prefix)) {
			title = strings.TrimSpace(title[len(prefix):])
			break
		}
	}

	// Strip trailing stopwords, each checked against the current end.
	for _, suffix := range trailingStopwords {
		if strings.HasSuffix(strings.ToLower(title), strings.ToLower(suffix)) {
			title = strings.TrimSpace(title[:len(title)-len(suffix)])
		}
	}

	title = strings.TrimSpace(trailingPunctRe.ReplaceAllString(title, ""))
	title = strings.TrimSpace(wikipediaTailRe.ReplaceAllString(title, ""))

	title = filterUnwantedWords(title)

	title = strings.TrimSpace(trailingPunctRe.ReplaceAllString(title, ""))
	return strings.Join(strings.Fields(title), " ")
}

// filterUnwantedWords removes whole words matching unwantedTerms, keeping
// two-word sequences listed in meaningfulPhrases intact.
func filterUnwantedWords(title string) string {
	words := strings.Fields(title)
	cleaned := make([]string, 0, len(words))
	skipNext := false
	for i, word := range words {
		if skipNext {
			skipNext = false
			continue
		}
		if i < len(words)-1 {
			phrase := strings.ToLower(word + " " + words[i+1])
			if containsFold(meaningfulPhrases, phrase) {
				cleaned = append(cleaned, word, words[i+1])
				skipNext = true
				continue
			}
		}
		if !containsFold(unwantedTerms, strings.ToLower(word)) {
			cleaned = append(cleaned, word)
		}
	}
	return strings.Join(cleaned, " ")
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// NormalizeQuery strips trademark glyphs, removes parenthetical groups
// entirely, drops non-ASCII characters and trims whitespace. Used when
// re-deriving a search query from a secondary backend's result title, which
// often still carries platform/edition annotations.
func NormalizeQuery(query string) string {
	query = trademarkRe.ReplaceAllString(query, "")
	query = parentheticalRe.ReplaceAllString(query, "")

	var b strings.Builder
	for _, r := range query {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// RemoveYearFromQuery removes a trailing "(YYYY)", "(YYYY video game)",
// "(YYYY videogame)" or "(YYYY series)" annotation for the given year.
// A no-op when no such suffix matches.
func RemoveYearFromQuery(query string, year int) string {
	re := regexp.MustCompile(fmt.Sprintf(`(?i)\(\s*%d(?:\s+video\s?game|\s+series)?\s*\)\s*$`, year))
	return strings.TrimSpace(re.ReplaceAllString(query, ""))
}

// CacheKey derives the cache key for a raw title: lowercase, strip everything
// that is not a letter, digit or whitespace, then collapse whitespace. Titles
// differing only in case, spacing or punctuation share a key.
func CacheKey(name string) string {
	name = strings.ToLower(name)
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
