// Package core provides shared types and the error taxonomy for the playtime service.
package core

// Source identifies which backend produced a playtime estimate.
type Source string

const (
	// SourceHLTB marks results resolved from the HowLongToBeat database.
	SourceHLTB Source = "hltb"
	// SourceSerp marks results extracted from web search snippets.
	SourceSerp Source = "serp"
)

// PlaytimeEstimate is the canonical resolution result. All hour fields are
// pointers: nil means "unknown", never zero.
type PlaytimeEstimate struct {
	GameName      string   `json:"game_name"`
	MainStory     *float64 `json:"main_story"`
	MainExtra     *float64 `json:"main_extra"`
	Completionist *float64 `json:"completionist"`
	AllStyles     *float64 `json:"all_styles"`
	Source        Source   `json:"source"`
}

// Hours returns a pointer to v, for populating optional hour fields.
func Hours(v float64) *float64 {
	return &v
}
