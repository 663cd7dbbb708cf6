package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GoogleCSE implements Provider against the Google Custom Search JSON API.
type GoogleCSE struct {
	APIKey     string
	CX         string
	HTTPClient *http.Client
	// BaseURL overrides the API endpoint, used in tests.
	BaseURL string
}

const googleEndpoint = "https://www.googleapis.com/customsearch/v1"

func (g *GoogleCSE) Name() string { return "google" }

func (g *GoogleCSE) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if g.APIKey == "" || g.CX == "" {
		return nil, fmt.Errorf("missing google api key or cx")
	}
	if limit <= 0 {
		limit = 10
	}
	base := g.BaseURL
	if base == "" {
		base = googleEndpoint
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("key", g.APIKey)
	q.Set("cx", g.CX)
	q.Set("num", fmt.Sprintf("%d", limit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	hc := g.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 20 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("google status: %d", resp.StatusCode)
	}
	var gr googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(gr.Items))
	for _, it := range gr.Items {
		if it.Link == "" {
			continue
		}
		out = append(out, Result{
			Title:  strings.TrimSpace(it.Title),
			URL:    strings.TrimSpace(it.Link),
			Source: g.Name(),
		})
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

type googleResponse struct {
	Items []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	} `json:"items"`
}
