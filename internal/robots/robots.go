package robots

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Rules holds the parsed directive groups of a single robots.txt file.
type Rules struct {
	Groups []Group
}

type Group struct {
	Agents     []string
	Allow      []string
	Disallow   []string
	CrawlDelay *time.Duration
}

// Manager answers robots.txt questions for page URLs. Rules are fetched
// once per host and kept in memory for TTL. Fetch failures and missing
// robots files resolve to allow-all: a collection run should degrade to
// the site's default posture rather than abort.
type Manager struct {
	HTTPClient *http.Client
	UserAgent  string
	TTL        time.Duration

	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	rules  Rules
	expiry time.Time
}

// Allowed reports whether the given page URL may be fetched under the
// host's robots.txt for the manager's user agent.
func (m *Manager) Allowed(ctx context.Context, pageURL string) bool {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return false
	}
	rules := m.rulesFor(ctx, u)
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return rules.IsAllowed(m.UserAgent, path)
}

// Delay returns the crawl delay the host requests for the manager's user
// agent, or zero when none is declared.
func (m *Manager) Delay(ctx context.Context, pageURL string) time.Duration {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return 0
	}
	if d := m.rulesFor(ctx, u).CrawlDelayFor(m.UserAgent); d != nil {
		return *d
	}
	return 0
}

func (m *Manager) rulesFor(ctx context.Context, u *url.URL) Rules {
	if m.now == nil {
		m.now = time.Now
	}
	key := strings.ToLower(u.Scheme + "://" + u.Host)

	m.mu.Lock()
	if m.entries == nil {
		m.entries = make(map[string]entry)
	}
	if ent, ok := m.entries[key]; ok && m.now().Before(ent.expiry) {
		m.mu.Unlock()
		return ent.rules
	}
	m.mu.Unlock()

	rules := m.fetch(ctx, key+"/robots.txt")

	ttl := m.TTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	m.mu.Lock()
	m.entries[key] = entry{rules: rules, expiry: m.now().Add(ttl)}
	m.mu.Unlock()
	return rules
}

func (m *Manager) fetch(ctx context.Context, robotsURL string) Rules {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return Rules{}
	}
	if m.UserAgent != "" {
		req.Header.Set("User-Agent", m.UserAgent)
	}
	client := m.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Debug().Str("url", robotsURL).Err(err).Msg("robots fetch failed, assuming allow")
		return Rules{}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Rules{}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Rules{}
	}
	return Parse(string(data))
}

// Parse reads robots.txt text into directive groups. Unknown directives
// and comments are ignored; a User-agent line after rules starts a new
// group.
func Parse(text string) Rules {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var groups []Group
	current := Group{}
	flush := func() {
		if len(current.Agents) == 0 && len(current.Allow) == 0 && len(current.Disallow) == 0 && current.CrawlDelay == nil {
			return
		}
		groups = append(groups, current)
		current = Group{}
	}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		colon := strings.IndexByte(line, ':')
		if colon <= 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[:colon]))
		val := strings.TrimSpace(line[colon+1:])
		switch key {
		case "user-agent", "useragent":
			if len(current.Agents) > 0 && (len(current.Allow) > 0 || len(current.Disallow) > 0 || current.CrawlDelay != nil) {
				flush()
			}
			current.Agents = append(current.Agents, strings.ToLower(val))
		case "allow":
			current.Allow = append(current.Allow, val)
		case "disallow":
			current.Disallow = append(current.Disallow, val)
		case "crawl-delay", "crawldelay":
			if s := strings.TrimSpace(val); s != "" {
				if d, err := time.ParseDuration(s + "s"); err == nil {
					dd := d
					current.CrawlDelay = &dd
				}
			}
		}
	}
	flush()
	return Rules{Groups: groups}
}

// IsAllowed evaluates the path (optionally with query string) against the
// rules for the given user agent. The most specific matching user-agent
// group is selected; within it the most specific matching directive wins,
// Allow beating Disallow on ties. No matching directive means allow.
func (r Rules) IsAllowed(userAgent, pathWithOptionalQuery string) bool {
	grpIdx := r.selectGroupIndex(userAgent)
	if grpIdx < 0 || grpIdx >= len(r.Groups) {
		return true
	}
	grp := r.Groups[grpIdx]

	bestScore := -1
	bestAllow := true
	evaluate := func(patterns []string, isAllow bool) {
		for _, p := range patterns {
			if p == "" {
				continue
			}
			if patternMatches(p, pathWithOptionalQuery) {
				score := patternSpecificity(p)
				if score > bestScore || (score == bestScore && isAllow && !bestAllow) {
					bestScore = score
					bestAllow = isAllow
				}
			}
		}
	}
	evaluate(grp.Disallow, false)
	evaluate(grp.Allow, true)

	if bestScore == -1 {
		return true
	}
	return bestAllow
}

// CrawlDelayFor returns the crawl delay of the most specific matching
// user-agent group, or nil when none is set.
func (r Rules) CrawlDelayFor(userAgent string) *time.Duration {
	grpIdx := r.selectGroupIndex(userAgent)
	if grpIdx < 0 || grpIdx >= len(r.Groups) {
		return nil
	}
	return r.Groups[grpIdx].CrawlDelay
}

// selectGroupIndex prefers the longest non-wildcard agent token contained
// in the user agent string; "*" matches everything but loses to any named
// match. Ties keep the first group encountered.
func (r Rules) selectGroupIndex(userAgent string) int {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	bestIdx := -1
	bestScore := -1
	for i, g := range r.Groups {
		for _, a := range g.Agents {
			token := strings.ToLower(strings.TrimSpace(a))
			if token == "" {
				continue
			}
			var score int
			if token == "*" {
				score = 0
			} else if strings.Contains(ua, token) {
				score = len(token)
			} else {
				continue
			}
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
	}
	return bestIdx
}

// patternMatches supports '*' wildcards and a trailing '$' end anchor,
// with matching anchored at the start of the path.
func patternMatches(pattern, path string) bool {
	anchorEnd := strings.HasSuffix(pattern, "$")
	p := pattern
	if anchorEnd {
		p = strings.TrimSuffix(p, "$")
	}
	var b strings.Builder
	b.WriteString("^")
	for _, rn := range p {
		if rn == '*' {
			b.WriteString(".*")
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(rn)))
	}
	if anchorEnd {
		b.WriteString("$")
	}
	re := regexp.MustCompile(b.String())
	return re.MatchString(path)
}

// patternSpecificity scores a pattern by its concrete length, ignoring
// '*' wildcards and a trailing '$'.
func patternSpecificity(pattern string) int {
	p := strings.TrimSuffix(pattern, "$")
	p = strings.ReplaceAll(p, "*", "")
	return len(p)
}
