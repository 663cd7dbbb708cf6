package urlfilter

import (
	"net/url"
	"path"
	"strings"
)

// DefaultHostDeny lists social-media hosts whose pages carry no codeable
// evidence. Matching is by host suffix so subdomains are covered.
var DefaultHostDeny = []string{"facebook.com", "twitter.com", "x.com"}

// DefaultExtDeny lists binary/media/office extensions we never fetch.
var DefaultExtDeny = []string{
	".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".ico",
	".mp3", ".mp4", ".zip", ".rar", ".7z",
	".doc", ".docx", ".xls", ".xlsx",
}

// Filter accepts or rejects candidate URLs before fetching. Zero-value lists
// fall back to the defaults.
type Filter struct {
	HostDeny []string
	ExtDeny  []string
}

func (f *Filter) hostDeny() []string {
	if f != nil && len(f.HostDeny) > 0 {
		return f.HostDeny
	}
	return DefaultHostDeny
}

func (f *Filter) extDeny() []string {
	if f != nil && len(f.ExtDeny) > 0 {
		return f.ExtDeny
	}
	return DefaultExtDeny
}

// Allowed reports whether a URL may enter the fetch stage. Malformed URLs are
// rejected rather than surfaced as errors.
func (f *Filter) Allowed(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	// Plain suffix match, no dot boundary: a host merely ending with a
	// denylist entry is rejected.
	for _, deny := range f.hostDeny() {
		if strings.HasSuffix(host, deny) {
			return false
		}
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if ext != "" {
		for _, deny := range f.extDeny() {
			if ext == deny {
				return false
			}
		}
	}
	return true
}

// SourceType classifies a URL host into the coarse categories used in the
// evidence CSV. Unknown hosts are plain websites.
func SourceType(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "Website"
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case strings.Contains(host, "linkedin.com"):
		return "LinkedIn"
	case strings.Contains(host, "github.com"):
		return "GitHub"
	case strings.Contains(host, "hilma") || strings.Contains(host, "hankintailmoitukset"):
		return "Public procurement"
	case strings.Contains(host, "prh.fi") || strings.Contains(host, "ytj.fi"):
		return "Registry"
	default:
		return "Website"
	}
}
