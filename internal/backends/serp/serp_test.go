package serp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New("test-key")
	c.SetBaseURL(srv.URL)
	return c
}

func TestSearchPlaytimeAnswerBox(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.json" {
			t.Errorf("path = %s, want /search.json", r.URL.Path)
		}
		q := r.URL.Query()
		if got := q.Get("q"); got != "howlongtobeat celeste" {
			t.Errorf("q = %q, want %q", got, "howlongtobeat celeste")
		}
		if got := q.Get("engine"); got != "google" {
			t.Errorf("engine = %q, want google", got)
		}
		if got := q.Get("api_key"); got != "test-key" {
			t.Errorf("api_key = %q, want test-key", got)
		}
		if got := q.Get("num"); got != "5" {
			t.Errorf("num = %q, want 5", got)
		}
		w.Write([]byte(`{"answer_box": {"answer": "8 Hours"}}`))
	})

	pt := c.SearchPlaytime(context.Background(), "celeste")
	if pt == nil {
		t.Fatal("expected estimate")
	}
	if pt.GameName != "celeste" {
		t.Errorf("game name = %q, want celeste", pt.GameName)
	}
	if pt.Source != "serp" {
		t.Errorf("source = %q, want serp", pt.Source)
	}
	if pt.MainStory == nil || *pt.MainStory != 8 {
		t.Errorf("main story = %v, want 8", pt.MainStory)
	}
	if pt.AllStyles != nil {
		t.Errorf("all styles = %v, want nil", *pt.AllStyles)
	}
}

func TestSearchPlaytimeAnswerBoxSnippet(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"answer_box": {"snippet": "Main Story: 12 Hours. Completionist: 30 Hours."}}`))
	})

	pt := c.SearchPlaytime(context.Background(), "hades")
	if pt == nil {
		t.Fatal("expected estimate")
	}
	if pt.MainStory == nil || *pt.MainStory != 12 {
		t.Errorf("main story = %v, want 12", pt.MainStory)
	}
	if pt.Completionist == nil || *pt.Completionist != 30 {
		t.Errorf("completionist = %v, want 30", pt.Completionist)
	}
}

func TestSearchPlaytimeOrganicFallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"organic_results": [
				{"link": "https://example.com/review", "title": "Review", "snippet": "90 Hours of fun"},
				{"link": "https://howlongtobeat.com/game/68151", "title": "How long is Hades?", "snippet": "Main Story: 21 Hours"}
			]
		}`))
	})

	pt := c.SearchPlaytime(context.Background(), "hades")
	if pt == nil {
		t.Fatal("expected estimate")
	}
	if pt.MainStory == nil || *pt.MainStory != 21 {
		t.Errorf("main story = %v, want 21", pt.MainStory)
	}
}

func TestSearchPlaytimeNoResult(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"empty response",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{}`))
			},
		},
		{
			"nothing extractable",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"answer_box": {"answer": "It varies by player"}}`))
			},
		},
		{
			"server error",
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "quota exceeded", http.StatusTooManyRequests)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			if pt := c.SearchPlaytime(context.Background(), "celeste"); pt != nil {
				t.Errorf("expected nil, got %+v", pt)
			}
		})
	}
}

func TestLookupTitle(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "silksong videogame site:wikipedia.org" {
			t.Errorf("q = %q, want %q", got, "silksong videogame site:wikipedia.org")
		}
		w.Write([]byte(`{
			"organic_results": [
				{"link": "https://en.wikipedia.org/wiki/Hollow_Knight:_Silksong", "title": "Hollow Knight: Silksong - Wikipedia", "snippet": "..."}
			]
		}`))
	})

	title, ok := c.LookupTitle(context.Background(), "silksong")
	if !ok {
		t.Fatal("expected a recovered title")
	}
	if title != "Hollow Knight: Silksong" {
		t.Errorf("title = %q, want %q", title, "Hollow Knight: Silksong")
	}
}

func TestLookupTitleNoResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"organic_results": []}`))
	})

	if title, ok := c.LookupTitle(context.Background(), "nonexistent"); ok {
		t.Errorf("expected no title, got %q", title)
	}
}
