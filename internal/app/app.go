package app

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sovelia/goevidence/internal/audit"
	"github.com/sovelia/goevidence/internal/evidence"
	"github.com/sovelia/goevidence/internal/fetch"
	"github.com/sovelia/goevidence/internal/page"
	"github.com/sovelia/goevidence/internal/query"
	"github.com/sovelia/goevidence/internal/robots"
	"github.com/sovelia/goevidence/internal/search"
	"github.com/sovelia/goevidence/internal/snippet"
	"github.com/sovelia/goevidence/internal/urlfilter"
)

// App wires the collection pipeline: query expansion, search, URL filtering,
// fetching, parsing, snippet extraction, record assembly and the audit trail.
// Processing is strictly sequential; the only pacing primitive is the search
// client's inter-query delay.
type App struct {
	cfg      Config
	store    *audit.Store
	searcher *search.Client
	fetcher  *fetch.Client
	filter   *urlfilter.Filter
	robots   *robots.Manager

	// Prompt is consulted between companies when Interactive is set. It
	// returns false to stop the run. Nil means always continue.
	Prompt func(done, total int) bool
}

// New validates the configuration, creates the output tree and selects the
// search backend for the whole run.
func New(cfg Config) (*App, error) {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if cfg.DefaultCountry == "" {
		cfg.DefaultCountry = DefaultCountryCode
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if len(cfg.QueryTemplates) == 0 {
		cfg.QueryTemplates = query.DefaultTemplates
	}
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = snippet.DefaultKeywords
	}

	store, err := audit.Open(cfg.OutputRoot)
	if err != nil {
		return nil, err
	}

	var provider search.Provider
	if cfg.FileSearchPath != "" {
		provider = &search.FileProvider{Path: cfg.FileSearchPath}
	} else {
		provider = search.SelectProvider(cfg.Credentials)
	}
	if provider.Name() == "none" {
		log.Warn().Msg("no search credentials configured; searches will return empty results")
	} else {
		log.Info().Str("engine", provider.Name()).Msg("search backend selected")
	}

	searcher := search.NewClient(provider, cfg.SearchDelay)
	searcher.PageSize = cfg.PageSize
	searcher.Diary = func(e search.DiaryEntry) {
		if err := store.WriteDiary(e); err != nil {
			log.Warn().Err(err).Str("query", e.Query).Msg("query diary write failed")
		}
	}

	fetcher := &fetch.Client{
		UserAgent:         cfg.UserAgent,
		MaxAttempts:       2,
		PerRequestTimeout: cfg.FetchTimeout,
		RedirectMaxHops:   5,
	}

	a := &App{
		cfg:      cfg,
		store:    store,
		searcher: searcher,
		fetcher:  fetcher,
		filter:   &urlfilter.Filter{HostDeny: cfg.HostDeny, ExtDeny: cfg.ExtDeny},
	}
	if !cfg.IgnoreRobots {
		a.robots = &robots.Manager{UserAgent: cfg.UserAgent}
	}
	return a, nil
}

// Run processes every company in the input CSV, writing one evidence CSV per
// company. Per-company failures are logged and do not stop the batch.
func (a *App) Run(ctx context.Context) error {
	companies, err := ReadCompanies(a.cfg.InputPath)
	if err != nil {
		return err
	}
	log.Info().Int("companies", len(companies)).
		Int("queries_each", len(a.cfg.QueryTemplates)).Msg("starting collection")

	for i, c := range companies {
		if c.Name == "" || c.Domain == "" {
			log.Warn().Str("company", c.Name).Str("domain", c.Domain).Msg("skipping invalid row")
			continue
		}
		rows, err := a.processCompany(ctx, c)
		if err != nil {
			log.Error().Err(err).Str("company", c.Name).Msg("company failed")
			continue
		}
		log.Info().Str("company", c.Name).Int("rows", rows).
			Str("csv", a.store.CSVPath(c.Name)).Msg("company done")

		if a.cfg.Interactive && a.Prompt != nil && i < len(companies)-1 {
			if !a.Prompt(i+1, len(companies)) {
				log.Info().Int("processed", i+1).Msg("stopping at operator request")
				return nil
			}
		}
	}
	return nil
}

func (a *App) processCompany(ctx context.Context, c Company) (int, error) {
	country := c.Country
	if country == "" {
		country = a.cfg.DefaultCountry
	}
	log.Info().Str("company", c.Name).Str("domain", c.Domain).Msg("searching")

	queries := query.Expand(c.Name, c.Domain, a.cfg.QueryTemplates)
	var hits []evidence.Hit
	for _, q := range queries {
		results := a.searcher.Search(ctx, c.Name, q)
		ts := time.Now().UTC()
		for rank, r := range results {
			if !a.filter.Allowed(r.URL) {
				continue
			}
			hits = append(hits, evidence.Hit{
				Company:   c.Name,
				Query:     q,
				Rank:      rank + 1,
				Title:     r.Title,
				URL:       r.URL,
				Source:    r.Source,
				FetchedAt: ts,
			})
		}
	}
	hits = evidence.DedupHits(hits)
	if max := a.cfg.PageSize * len(queries); len(hits) > max {
		hits = hits[:max]
	}

	var records []evidence.Record
	seenHash := map[string]string{} // content hash -> first URL this company
	for _, h := range hits {
		recs, err := a.processHit(ctx, c, country, h, seenHash)
		if err != nil {
			log.Warn().Err(err).Str("url", h.URL).Msg("fetch failed; skipping source")
			continue
		}
		records = append(records, recs...)
	}

	if err := a.writeCompanyCSV(c.Name, records); err != nil {
		return 0, err
	}
	if a.cfg.DigestPDF {
		if err := a.writeDigestPDF(c.Name, records); err != nil {
			log.Warn().Err(err).Str("company", c.Name).Msg("digest pdf failed")
		}
	}
	return len(records), nil
}

// processHit fetches one URL and turns it into evidence records. Fetch errors
// propagate so the caller can isolate them per URL; everything after a
// successful fetch is best-effort.
func (a *App) processHit(ctx context.Context, c Company, country string, h evidence.Hit, seenHash map[string]string) ([]evidence.Record, error) {
	if a.robots != nil {
		if !a.robots.Allowed(ctx, h.URL) {
			return nil, fmt.Errorf("disallowed by robots.txt")
		}
		if d := a.robots.Delay(ctx, h.URL); d > 0 {
			if d > 10*time.Second {
				d = 10 * time.Second
			}
			time.Sleep(d)
		}
	}
	pg, err := a.fetcher.Fetch(ctx, h.URL)
	if err != nil {
		return nil, err
	}
	host := hostOf(h.URL)

	if err := a.store.WriteRaw(c.Name, host, pg.SHA256, pg.IsPDF, pg.Body); err != nil {
		log.Warn().Err(err).Str("url", h.URL).Msg("raw write failed")
	}

	var doc page.Document
	if !pg.IsPDF {
		doc = page.Parse(pg.Body, pg.ContentType)
	}

	dup := seenHash[pg.SHA256]
	if dup == "" {
		seenHash[pg.SHA256] = h.URL
	}
	meta := audit.Metadata{
		Company:     c.Name,
		Query:       h.Query,
		Rank:        h.Rank,
		Title:       pickNonEmpty(doc.Title, h.Title),
		URL:         h.URL,
		FinalURL:    pg.FinalURL,
		Host:        host,
		PubDate:     doc.PubDate,
		ContentType: pg.ContentType,
		SHA256:      pg.SHA256,
		FetchedAt:   pg.FetchedAt.Format(time.RFC3339),
		IsPDF:       pg.IsPDF,
		DuplicateOf: dup,
	}
	if err := a.store.WriteMeta(meta); err != nil {
		log.Warn().Err(err).Str("url", h.URL).Msg("meta write failed")
	}

	var quotes []evidence.Quote
	if doc.Text != "" {
		for _, sn := range snippet.Extract(doc.Text, a.cfg.Keywords, snippet.Options{
			MaxLen:      a.cfg.MaxSnippetLen,
			MaxSnippets: a.cfg.MaxSnippets,
		}) {
			quotes = append(quotes, evidence.Quote{Text: sn.Text, Keyword: sn.Keyword})
		}
	}

	src := evidence.Source{
		Type:  urlfilter.SourceType(h.URL),
		Title: pickNonEmpty(doc.Title, h.Title),
		URL:   h.URL,
		Date:  doc.PubDate,
	}
	return evidence.Assemble(c.Name, country, c.Domain, src, quotes), nil
}

func (a *App) writeCompanyCSV(company string, records []evidence.Record) error {
	path := a.store.CSVPath(company)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create evidence csv: %w", err)
	}
	defer f.Close()
	if err := evidence.WriteCSV(f, records); err != nil {
		return fmt.Errorf("write evidence csv: %w", err)
	}
	return nil
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}

func pickNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
