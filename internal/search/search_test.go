package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestGoogleCSE_ParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "k" || r.URL.Query().Get("cx") != "c" {
			t.Errorf("credentials not forwarded: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"title": " Acme — About ", "link": "https://acme.fi/about"},
				{"title": "No link", "link": ""},
			},
		})
	}))
	defer srv.Close()

	g := &GoogleCSE{APIKey: "k", CX: "c", HTTPClient: srv.Client(), BaseURL: srv.URL}
	got, err := g.Search(context.Background(), "acme business model", 10)
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 valid result, got %d", len(got))
	}
	if got[0].Title != "Acme — About" || got[0].URL != "https://acme.fi/about" {
		t.Fatalf("unexpected result: %+v", got[0])
	}
	if got[0].Source != "google" {
		t.Fatalf("expected source tag 'google', got %q", got[0].Source)
	}
}

func TestGoogleCSE_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := &GoogleCSE{APIKey: "k", CX: "c", HTTPClient: srv.Client(), BaseURL: srv.URL}
	_, err := g.Search(context.Background(), "q", 10)
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestBing_ParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Ocp-Apim-Subscription-Key") != "bk" {
			t.Errorf("subscription key not forwarded")
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"webPages": map[string]any{
				"value": []map[string]any{
					{"name": "Acme services", "url": "https://acme.fi/services"},
				},
			},
		})
	}))
	defer srv.Close()

	b := &Bing{APIKey: "bk", HTTPClient: srv.Client(), BaseURL: srv.URL}
	got, err := b.Search(context.Background(), "acme", 10)
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(got) != 1 || got[0].URL != "https://acme.fi/services" {
		t.Fatalf("unexpected results: %+v", got)
	}
	if got[0].Source != "bing" {
		t.Fatalf("expected source tag 'bing', got %q", got[0].Source)
	}
}

func TestSelectProvider_Precedence(t *testing.T) {
	p := SelectProvider(Credentials{GoogleAPIKey: "k", GoogleCX: "c", BingAPIKey: "b"})
	if p.Name() != "google" {
		t.Fatalf("google credentials must win, got %q", p.Name())
	}
	p = SelectProvider(Credentials{BingAPIKey: "b"})
	if p.Name() != "bing" {
		t.Fatalf("expected bing, got %q", p.Name())
	}
	// A partial google pair is not usable.
	p = SelectProvider(Credentials{GoogleAPIKey: "k"})
	if p.Name() != "none" {
		t.Fatalf("expected none for partial credentials, got %q", p.Name())
	}
	p = SelectProvider(Credentials{})
	if p.Name() != "none" {
		t.Fatalf("expected none, got %q", p.Name())
	}
}

func TestNoop_ReturnsEmpty(t *testing.T) {
	got, err := Noop{}.Search(context.Background(), "anything", 10)
	if err != nil || len(got) != 0 {
		t.Fatalf("noop must return empty without error, got %v %v", got, err)
	}
}

type failingProvider struct{ err error }

func (f failingProvider) Name() string { return "failing" }
func (f failingProvider) Search(context.Context, string, int) ([]Result, error) {
	return nil, f.err
}

func TestClient_SwallowsErrorsAndRecordsDiary(t *testing.T) {
	var entries []DiaryEntry
	c := &Client{
		Provider: failingProvider{err: errors.New("boom")},
		Diary:    func(e DiaryEntry) { entries = append(entries, e) },
	}
	got := c.Search(context.Background(), "Acme", "acme query")
	if len(got) != 0 {
		t.Fatalf("expected empty results on failure, got %+v", got)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 diary entry for a failed query, got %d", len(entries))
	}
	e := entries[0]
	if e.Company != "Acme" || e.Query != "acme query" || e.Engine != "failing" {
		t.Fatalf("unexpected diary entry: %+v", e)
	}
	if e.Results == nil || len(e.Results) != 0 {
		t.Fatalf("failed query must record an empty result list, got %+v", e.Results)
	}
	if _, err := time.Parse(time.RFC3339, e.Timestamp); err != nil {
		t.Fatalf("diary timestamp not RFC3339: %q", e.Timestamp)
	}
}

func TestClient_RateLimitedIsNotFatal(t *testing.T) {
	c := &Client{Provider: failingProvider{err: ErrRateLimited}}
	if got := c.Search(context.Background(), "Acme", "q"); len(got) != 0 {
		t.Fatalf("expected empty results when rate limited, got %+v", got)
	}
}

func TestClient_PacedByLimiter(t *testing.T) {
	c := &Client{
		Provider: Noop{},
		Limiter:  rate.NewLimiter(rate.Every(30*time.Millisecond), 1),
	}
	start := time.Now()
	for i := 0; i < 3; i++ {
		c.Search(context.Background(), "Acme", "q")
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("expected limiter to pace queries, elapsed %v", elapsed)
	}
}

func TestFileProvider_FiltersByQuery(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/results.json"
	data := `[{"Title": "Acme business model", "URL": "https://acme.fi/about"},
	          {"Title": "Other page", "URL": "https://other.fi"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	f := &FileProvider{Path: path}
	got, err := f.Search(context.Background(), "acme", 10)
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(got) != 1 || got[0].URL != "https://acme.fi/about" {
		t.Fatalf("unexpected results: %+v", got)
	}
	if got[0].Source != "file" {
		t.Fatalf("expected source 'file', got %q", got[0].Source)
	}
}
