package search

import (
	"context"
	"strings"
)

// Result represents a single search hit from any provider.
type Result struct {
	Title  string
	URL    string
	Source string // provider name for the query diary
}

// Provider is a minimal interface for search backends.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
	Name() string
}

// Noop is the degraded backend used when no credentials are configured.
// Searches return empty results so the rest of the pipeline, and its logging,
// stays exercisable offline.
type Noop struct{}

func (Noop) Name() string { return "none" }

func (Noop) Search(context.Context, string, int) ([]Result, error) {
	return nil, nil
}

// Credentials carries the backend credential pairs read once at startup.
// Provider selection is an explicit configuration decision made here, never
// inside the pipeline.
type Credentials struct {
	GoogleAPIKey string
	GoogleCX     string
	BingAPIKey   string
}

// SelectProvider picks the backend for the whole run. A Google key pair takes
// priority over a Bing key; with neither present the run degrades to Noop.
func SelectProvider(c Credentials) Provider {
	if strings.TrimSpace(c.GoogleAPIKey) != "" && strings.TrimSpace(c.GoogleCX) != "" {
		return &GoogleCSE{APIKey: c.GoogleAPIKey, CX: c.GoogleCX}
	}
	if strings.TrimSpace(c.BingAPIKey) != "" {
		return &Bing{APIKey: c.BingAPIKey}
	}
	return Noop{}
}
