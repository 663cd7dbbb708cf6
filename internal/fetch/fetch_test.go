package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetch_SuccessComputesHash(t *testing.T) {
	body := []byte("<html><body>Hello</body></html>")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	c := &Client{HTTPClient: srv.Client()}
	p, err := c.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch error: %v", err)
	}
	if string(p.Body) != string(body) {
		t.Fatalf("unexpected body: %q", p.Body)
	}
	sum := sha256.Sum256(body)
	if p.SHA256 != hex.EncodeToString(sum[:]) {
		t.Fatalf("hash mismatch: %s", p.SHA256)
	}
	if p.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", p.StatusCode)
	}
	if !strings.HasPrefix(p.ContentType, "text/html") {
		t.Fatalf("unexpected content type: %q", p.ContentType)
	}
	if p.IsPDF {
		t.Fatalf("html response flagged as pdf")
	}
	if p.FetchedAt.IsZero() {
		t.Fatalf("fetch timestamp not set")
	}
}

func TestFetch_Non2xxFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := &Client{HTTPClient: srv.Client()}
	if _, err := c.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected error for 404")
	}
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := &Client{HTTPClient: srv.Client(), MaxAttempts: 2}
	p, err := c.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if string(p.Body) != "ok" {
		t.Fatalf("unexpected body after retry: %q", p.Body)
	}
	if calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls)
	}
}

func TestFetch_RecordsFinalURLAfterRedirect(t *testing.T) {
	var target string
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target, http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("landed"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	target = srv.URL + "/final"

	c := &Client{HTTPClient: srv.Client()}
	p, err := c.Fetch(context.Background(), srv.URL+"/start")
	if err != nil {
		t.Fatalf("fetch error: %v", err)
	}
	if p.FinalURL != target {
		t.Fatalf("expected final url %q, got %q", target, p.FinalURL)
	}
}

func TestFetch_RejectsNonHTTPScheme(t *testing.T) {
	c := &Client{}
	if _, err := c.Fetch(context.Background(), "ftp://example.com/file"); err == nil {
		t.Fatalf("expected scheme rejection")
	}
}

func TestFetch_TimeoutBoundsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	c := &Client{HTTPClient: srv.Client(), PerRequestTimeout: 50 * time.Millisecond}
	start := time.Now()
	if _, err := c.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected timeout error")
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("timeout did not bound the request")
	}
}

func TestLooksLikePDF(t *testing.T) {
	if !looksLikePDF("https://example.com/annual-report.pdf", "text/html") {
		t.Fatalf("pdf extension not detected")
	}
	if !looksLikePDF("https://example.com/doc", "application/pdf") {
		t.Fatalf("pdf content type not detected")
	}
	if looksLikePDF("https://example.com/page", "text/html") {
		t.Fatalf("html misdetected as pdf")
	}
}
