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

// Bing implements Provider against the Bing Web Search v7 API.
type Bing struct {
	APIKey     string
	HTTPClient *http.Client
	// BaseURL overrides the API endpoint, used in tests.
	BaseURL string
}

const bingEndpoint = "https://api.bing.microsoft.com/v7.0/search"

func (b *Bing) Name() string { return "bing" }

func (b *Bing) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if b.APIKey == "" {
		return nil, fmt.Errorf("missing bing api key")
	}
	if limit <= 0 {
		limit = 10
	}
	base := b.BaseURL
	if base == "" {
		base = bingEndpoint
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("count", fmt.Sprintf("%d", limit))
	q.Set("responseFilter", "Webpages")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", b.APIKey)
	hc := b.HTTPClient
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
		return nil, fmt.Errorf("bing status: %d", resp.StatusCode)
	}
	var br bingResponse
	if err := json.NewDecoder(resp.Body).Decode(&br); err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(br.WebPages.Value))
	for _, it := range br.WebPages.Value {
		if it.URL == "" {
			continue
		}
		out = append(out, Result{
			Title:  strings.TrimSpace(it.Name),
			URL:    strings.TrimSpace(it.URL),
			Source: b.Name(),
		})
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

type bingResponse struct {
	WebPages struct {
		Value []struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"value"`
	} `json:"webPages"`
}
