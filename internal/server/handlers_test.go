package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gamelength/internal/cache"
	"gamelength/internal/core"
)

type stubResolver struct {
	estimate *core.PlaytimeEstimate
	calls    int
}

func (s *stubResolver) Resolve(ctx context.Context, rawTitle string) *core.PlaytimeEstimate {
	s.calls++
	return s.estimate
}

func celesteEstimate() *core.PlaytimeEstimate {
	return &core.PlaytimeEstimate{
		GameName:      "Celeste",
		MainStory:     core.Hours(8),
		Completionist: core.Hours(40),
		Source:        core.SourceHLTB,
	}
}

func searchRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/search-game", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSearchGame(t *testing.T) {
	resolver := &stubResolver{estimate: celesteEstimate()}
	srv := New(resolver, cache.NewMemoryStore(0), nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, searchRequest(`{"game_name": "celeste"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var got core.PlaytimeEstimate
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.GameName != "Celeste" {
		t.Errorf("game_name = %q, want Celeste", got.GameName)
	}
	if got.MainStory == nil || *got.MainStory != 8 {
		t.Errorf("main_story = %v, want 8", got.MainStory)
	}
	if got.MainExtra != nil {
		t.Errorf("main_extra = %v, want null", *got.MainExtra)
	}
	if got.Source != core.SourceHLTB {
		t.Errorf("source = %q, want hltb", got.Source)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response missing X-Request-ID header")
	}
}

func TestSearchGameCached(t *testing.T) {
	resolver := &stubResolver{estimate: celesteEstimate()}
	store := cache.NewMemoryStore(0)
	srv := New(resolver, store, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, searchRequest(`{"game_name": "celeste"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}

	// The second request, with an equivalent title, must be served from the
	// cache without touching the resolver.
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, searchRequest(`{"game_name": "  CELESTE!  "}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("second request status = %d, want 200", rec.Code)
	}
	if resolver.calls != 1 {
		t.Errorf("resolver calls = %d, want 1", resolver.calls)
	}
}

func TestSearchGameNotFound(t *testing.T) {
	srv := New(&stubResolver{}, cache.NewMemoryStore(0), nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, searchRequest(`{"game_name": "definitely unknown"}`))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error.Type != "not_found_error" {
		t.Errorf("error type = %q, want not_found_error", resp.Error.Type)
	}
}

func TestSearchGameBadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty game_name", `{"game_name": ""}`},
		{"missing game_name", `{}`},
		{"malformed json", `{"game_name":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &stubResolver{estimate: celesteEstimate()}
			srv := New(resolver, cache.NewMemoryStore(0), nil)

			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, searchRequest(tt.body))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
			}
			if resolver.calls != 0 {
				t.Errorf("resolver calls = %d, want 0", resolver.calls)
			}
		})
	}
}

func TestSearchGameAuth(t *testing.T) {
	srv := New(&stubResolver{estimate: celesteEstimate()}, cache.NewMemoryStore(0), &Config{
		MasterKey: "secret-key",
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic secret-key", http.StatusUnauthorized},
		{"wrong key", "Bearer wrong", http.StatusUnauthorized},
		{"valid key", "Bearer secret-key", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := searchRequest(`{"game_name": "celeste"}`)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestHealthSkipsAuth(t *testing.T) {
	srv := New(&stubResolver{}, cache.NewMemoryStore(0), &Config{MasterKey: "secret-key"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status field = %q, want ok", resp["status"])
	}
}

func TestRequestIDPropagation(t *testing.T) {
	srv := New(&stubResolver{estimate: celesteEstimate()}, cache.NewMemoryStore(0), nil)

	req := searchRequest(`{"game_name": "celeste"}`)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("X-Request-ID = %q, want req-123", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := New(&stubResolver{}, cache.NewMemoryStore(0), &Config{
		MasterKey:       "secret-key",
		MetricsEnabled:  true,
		MetricsEndpoint: "/metrics",
	})

	// Metrics are public even when a master key is configured.
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("expected Prometheus exposition output")
	}
}

func TestBodySizeLimit(t *testing.T) {
	srv := New(&stubResolver{}, cache.NewMemoryStore(0), &Config{BodySizeLimit: 64})

	big := `{"game_name": "` + strings.Repeat("a", 256) + `"}`
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, searchRequest(big))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}
