package app

import (
	"time"

	"github.com/sovelia/goevidence/internal/search"
)

// Config holds runtime configuration for one collection run.
type Config struct {
	// InputPath is the companies CSV.
	InputPath string
	// OutputRoot is the directory receiving raw/, meta/, logs/ and csv/.
	OutputRoot string

	// Search
	Credentials    search.Credentials
	FileSearchPath string // offline fixture provider, used in tests and dry runs
	SearchDelay    time.Duration
	PageSize       int

	// Fetch
	FetchTimeout time.Duration
	UserAgent    string

	// Extraction
	QueryTemplates []string
	Keywords       []string
	MaxSnippets    int
	MaxSnippetLen  int

	// URL filtering. Empty slices keep the package defaults.
	HostDeny []string
	ExtDeny  []string

	// Behavior
	DefaultCountry string
	Interactive    bool
	DigestPDF      bool
	IgnoreRobots   bool
	Verbose        bool
}

// Defaults applied where Config fields are zero.
const (
	DefaultPageSize     = 10
	DefaultFetchTimeout = 20 * time.Second
	DefaultCountryCode  = "FI"
	DefaultUserAgent    = "Mozilla/5.0 (compatible; PublicResearchBot/1.0; +https://example.org/methods)"
)
