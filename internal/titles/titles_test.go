package titles

import "testing"

func TestExtractYear(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  int
		found bool
	}{
		{
			name:  "year with annotation",
			title: "God of War (2005 video game)",
			want:  2005,
			found: true,
		},
		{
			name:  "bare year",
			title: "Doom (1993)",
			want:  1993,
			found: true,
		},
		{
			name:  "year with leading text",
			title: "Shadow of the Colossus (Video 2005)",
			want:  2005,
			found: true,
		},
		{
			name:  "no year",
			title: "Celeste",
			found: false,
		},
		{
			name:  "four digits outside parentheses are not a year",
			title: "Tony Hawk's Pro Skater 1997",
			found: false,
		},
		{
			name:  "first parenthesized year wins",
			title: "Prince of Persia (2008) (2010 remaster)",
			want:  2008,
			found: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractYear(tt.title)
			if found != tt.found {
				t.Fatalf("ExtractYear(%q) found = %v, want %v", tt.title, found, tt.found)
			}
			if found && got != tt.want {
				t.Errorf("ExtractYear(%q) = %d, want %d", tt.title, got, tt.want)
			}
		})
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "storefront prefix",
			title: "Buy Celeste",
			want:  "Celeste",
		},
		{
			name:  "prefix and trailing stopword",
			title: "Buy Hollow Knight on",
			want:  "Hollow Knight",
		},
		{
			name:  "wikipedia headline tail",
			title: "Halo: Combat Evolved - Wikipedia",
			want:  "Halo: Combat Evolved",
		},
		{
			name:  "unwanted whole words",
			title: "Celeste on Steam",
			want:  "Celeste",
		},
		{
			name:  "steam prefix",
			title: "Steam Celeste",
			want:  "Celeste",
		},
		{
			name:  "meaningful phrase survives word filter",
			title: "Spyro: Save the World",
			want:  "Spyro: Save the World",
		},
		{
			name:  "trailing separator",
			title: "Undertale -",
			want:  "Undertale",
		},
		{
			name:  "whitespace collapse",
			title: "  The  Witcher   3 ",
			want:  "The Witcher 3",
		},
		{
			name:  "title word containing a prefix string is kept",
			title: "Dishonored",
			want:  "Dishonored",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanTitle(tt.title); got != tt.want {
				t.Errorf("CleanTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "trademark glyphs",
			query: "Celeste™",
			want:  "Celeste",
		},
		{
			name:  "parenthetical group removed",
			query: "Doom (1993 video game)",
			want:  "Doom",
		},
		{
			name:  "non-ascii stripped",
			query: "Pokémon Red",
			want:  "Pokmon Red",
		},
		{
			name:  "registered and copyright glyphs",
			query: "Tetris® Effect©",
			want:  "Tetris Effect",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeQuery(tt.query); got != tt.want {
				t.Errorf("NormalizeQuery(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestRemoveYearFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		year  int
		want  string
	}{
		{
			name:  "year with video game annotation",
			query: "God of War (2005 video game)",
			year:  2005,
			want:  "God of War",
		},
		{
			name:  "bare year",
			query: "Doom (1993)",
			year:  1993,
			want:  "Doom",
		},
		{
			name:  "videogame spelling",
			query: "Doom (1993 videogame)",
			year:  1993,
			want:  "Doom",
		},
		{
			name:  "series annotation",
			query: "Fallout (1997 series)",
			year:  1997,
			want:  "Fallout",
		},
		{
			name:  "no-op when year not inline",
			query: "Celeste",
			year:  2018,
			want:  "Celeste",
		},
		{
			name:  "different year untouched",
			query: "Doom (2016)",
			year:  1993,
			want:  "Doom (2016)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemoveYearFromQuery(tt.query, tt.year); got != tt.want {
				t.Errorf("RemoveYearFromQuery(%q, %d) = %q, want %q", tt.query, tt.year, got, tt.want)
			}
		})
	}
}

func TestCacheKey(t *testing.T) {
	t.Run("PunctuationAndCaseInsensitive", func(t *testing.T) {
		a := CacheKey("Halo: Combat Evolved")
		b := CacheKey("halo combat evolved")
		if a != b {
			t.Errorf("cache keys differ: %q vs %q", a, b)
		}
	})

	t.Run("WhitespaceInsensitive", func(t *testing.T) {
		a := CacheKey("The  Witcher   3")
		b := CacheKey("the witcher 3")
		if a != b {
			t.Errorf("cache keys differ: %q vs %q", a, b)
		}
	})

	t.Run("DistinctTitlesStayDistinct", func(t *testing.T) {
		if CacheKey("Doom") == CacheKey("Doom 2") {
			t.Error("distinct titles must not share a cache key")
		}
	})
}
