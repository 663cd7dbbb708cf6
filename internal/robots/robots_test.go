package robots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestManager_FetchesOncePerHost(t *testing.T) {
	t.Parallel()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private\n"))
	}))
	t.Cleanup(srv.Close)

	m := &Manager{HTTPClient: srv.Client(), UserAgent: "collector-test/1.0", TTL: time.Hour}
	ctx := context.Background()

	if !m.Allowed(ctx, srv.URL+"/about") {
		t.Fatalf("/about should be allowed")
	}
	if m.Allowed(ctx, srv.URL+"/private/report.html") {
		t.Fatalf("/private should be disallowed")
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("expected 1 robots fetch, got %d", got)
	}
}

func TestManager_ExpiredEntryRefetches(t *testing.T) {
	t.Parallel()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte("User-agent: *\nDisallow:\n"))
	}))
	t.Cleanup(srv.Close)

	m := &Manager{HTTPClient: srv.Client(), TTL: time.Hour}
	ctx := context.Background()
	m.Allowed(ctx, srv.URL+"/a")

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	m.Allowed(ctx, srv.URL+"/b")
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Fatalf("expected refetch after expiry, got %d fetches", got)
	}
}

func TestManager_MissingRobotsAllowsAll(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	m := &Manager{HTTPClient: srv.Client()}
	if !m.Allowed(context.Background(), srv.URL+"/anything") {
		t.Fatalf("missing robots.txt must allow all paths")
	}
}

func TestManager_UnreachableHostAllows(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	m := &Manager{TTL: time.Hour}
	if !m.Allowed(context.Background(), url+"/page") {
		t.Fatalf("unreachable robots endpoint must fail open")
	}
}

func TestRules_DirectiveSpecificity(t *testing.T) {
	t.Parallel()
	rules := Parse("User-agent: *\nDisallow: /docs\nAllow: /docs/public\n")
	if rules.IsAllowed("any", "/docs/internal") {
		t.Fatalf("/docs/internal should be disallowed")
	}
	if !rules.IsAllowed("any", "/docs/public/guide.html") {
		t.Fatalf("more specific Allow should win")
	}
	if !rules.IsAllowed("any", "/") {
		t.Fatalf("unmatched path defaults to allow")
	}
}

func TestRules_AgentGroupSelection(t *testing.T) {
	t.Parallel()
	rules := Parse(`User-agent: *
Disallow:

User-agent: researchbot
Disallow: /
`)
	if rules.IsAllowed("ResearchBot/2.1", "/about") {
		t.Fatalf("named group must beat wildcard for matching agent")
	}
	if !rules.IsAllowed("otherbot", "/about") {
		t.Fatalf("non-matching agent falls back to wildcard group")
	}
}

func TestRules_WildcardAndAnchor(t *testing.T) {
	t.Parallel()
	rules := Parse("User-agent: *\nDisallow: /*.pdf$\n")
	if rules.IsAllowed("any", "/files/report.pdf") {
		t.Fatalf("anchored wildcard should match pdf path")
	}
	if !rules.IsAllowed("any", "/files/report.pdf.html") {
		t.Fatalf("anchor must not match longer path")
	}
}

func TestRules_CrawlDelay(t *testing.T) {
	t.Parallel()
	rules := Parse("User-agent: *\nCrawl-delay: 2\nDisallow: /tmp\n")
	d := rules.CrawlDelayFor("any")
	if d == nil || *d != 2*time.Second {
		t.Fatalf("expected 2s crawl delay, got %v", d)
	}
}
