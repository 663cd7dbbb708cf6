package search

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// ErrRateLimited marks provider responses that indicate quota exhaustion
// (HTTP 429). It gets a distinct warning so operators know the daily quota is
// likely spent.
var ErrRateLimited = errors.New("search provider rate limited")

// DiaryEntry is the replicable log record for one issued query, written for
// every query whether it succeeded or not.
type DiaryEntry struct {
	Company   string   `json:"company"`
	Query     string   `json:"query"`
	Timestamp string   `json:"timestamp_utc"`
	Engine    string   `json:"engine"`
	Results   []Result `json:"results"`
}

// DefaultDelay is the fixed inter-query pause that keeps us inside provider
// quotas.
const DefaultDelay = 3 * time.Second

// Client wraps a Provider with rate limiting, per-query error isolation and
// query diary emission. A search failure never crashes the run: it is logged
// and an empty result set is returned.
type Client struct {
	Provider Provider
	// PageSize caps results per query. Zero means 10.
	PageSize int
	// Limiter paces queries. Nil means DefaultDelay.
	Limiter *rate.Limiter
	// Diary receives one entry per issued query. Nil disables the diary.
	Diary func(DiaryEntry)

	now func() time.Time
}

// NewClient builds a Client with the fixed inter-query delay.
func NewClient(p Provider, delay time.Duration) *Client {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Client{
		Provider: p,
		Limiter:  rate.NewLimiter(rate.Every(delay), 1),
	}
}

// Search issues one query against the configured backend. The company name is
// carried only for the diary entry.
func (c *Client) Search(ctx context.Context, company, query string) []Result {
	limit := c.PageSize
	if limit <= 0 {
		limit = 10
	}
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			log.Warn().Err(err).Str("query", query).Msg("rate limiter interrupted")
			c.record(company, query, nil)
			return nil
		}
	}
	results, err := c.Provider.Search(ctx, query, limit)
	if err != nil {
		if errors.Is(err, ErrRateLimited) {
			log.Warn().Str("engine", c.Provider.Name()).Str("query", query).
				Msg("search rate limit exceeded; daily quota likely reached")
		} else {
			log.Warn().Err(err).Str("engine", c.Provider.Name()).Str("query", query).
				Msg("search failed")
		}
		c.record(company, query, nil)
		return nil
	}
	log.Debug().Str("engine", c.Provider.Name()).Str("query", query).
		Int("results", len(results)).Msg("search ok")
	c.record(company, query, results)
	return results
}

func (c *Client) record(company, query string, results []Result) {
	if c.Diary == nil {
		return
	}
	nowFn := c.now
	if nowFn == nil {
		nowFn = time.Now
	}
	if results == nil {
		results = []Result{}
	}
	c.Diary(DiaryEntry{
		Company:   company,
		Query:     query,
		Timestamp: nowFn().UTC().Format(time.RFC3339),
		Engine:    c.Provider.Name(),
		Results:   results,
	})
}
