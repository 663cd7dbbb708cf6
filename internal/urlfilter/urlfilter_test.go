package urlfilter

import "testing"

func TestAllowed_SchemeAndHost(t *testing.T) {
	f := &Filter{}
	cases := []struct {
		url  string
		want bool
	}{
		{"https://example.com/about", true},
		{"http://example.com", true},
		{"ftp://example.com/file", false},
		{"mailto:someone@example.com", false},
		{"https://facebook.com/somecompany", false},
		{"https://www.facebook.com/somecompany", false},
		{"https://x.com/somecompany", false},
		{"https://twitter.com/somecompany", false},
		{"https://netflix.com/about", false}, // plain suffix: ends with "x.com"
		{"https://sometwitter.com/page", false},
		{"https://example.com/logo.png", false},
		{"https://example.com/report.PDF", true}, // pdf is fetched, not denied
		{"https://example.com/deck.docx", false},
		{"https://example.com/archive.zip", false},
		{"://not a url", false},
		{"", false},
	}
	for _, c := range cases {
		if got := f.Allowed(c.url); got != c.want {
			t.Fatalf("Allowed(%q) = %v, want %v", c.url, got, c.want)
		}
	}
}

func TestAllowed_CustomDenylists(t *testing.T) {
	f := &Filter{HostDeny: []string{"spam.example"}, ExtDeny: []string{".exe"}}
	if f.Allowed("https://sub.spam.example/page") {
		t.Fatalf("expected custom host denylist to apply")
	}
	if f.Allowed("https://example.com/setup.exe") {
		t.Fatalf("expected custom ext denylist to apply")
	}
	// defaults no longer apply when overridden
	if !f.Allowed("https://facebook.com/page") {
		t.Fatalf("default host denylist should be replaced by custom list")
	}
}

func TestSourceType(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.linkedin.com/company/acme", "LinkedIn"},
		{"https://github.com/acme/tool", "GitHub"},
		{"https://www.hankintailmoitukset.fi/fi/notice/1", "Public procurement"},
		{"https://tietopalvelu.ytj.fi/yritys/123", "Registry"},
		{"https://acme.fi/services", "Website"},
	}
	for _, c := range cases {
		if got := SourceType(c.url); got != c.want {
			t.Fatalf("SourceType(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}
