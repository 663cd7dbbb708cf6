package query

import (
	"strings"
	"testing"
)

func TestExpand_SubstitutesPlaceholders(t *testing.T) {
	templates := []string{
		`site:{domain} "business model"`,
		`{company} "SaaS"`,
		`{company} at {domain}`,
	}
	got := Expand("Acme Oy", "acme.fi", templates)
	if len(got) != 3 {
		t.Fatalf("expected 3 queries, got %d", len(got))
	}
	if got[0] != `site:acme.fi "business model"` {
		t.Fatalf("unexpected expansion: %q", got[0])
	}
	if got[1] != `Acme Oy "SaaS"` {
		t.Fatalf("unexpected expansion: %q", got[1])
	}
	if got[2] != `Acme Oy at acme.fi` {
		t.Fatalf("unexpected expansion: %q", got[2])
	}
}

func TestExpand_PreservesOrderAndDuplicates(t *testing.T) {
	templates := []string{"{company} a", "{company} b", "{company} a"}
	got := Expand("X", "x.fi", templates)
	if len(got) != 3 {
		t.Fatalf("expansion must not deduplicate: got %d queries", len(got))
	}
	if got[0] != "X a" || got[1] != "X b" || got[2] != "X a" {
		t.Fatalf("order not preserved: %v", got)
	}
}

func TestExpand_DefaultTemplates(t *testing.T) {
	got := Expand("Acme", "acme.fi", nil)
	if len(got) != len(DefaultTemplates) {
		t.Fatalf("expected %d default queries, got %d", len(DefaultTemplates), len(got))
	}
	for _, q := range got {
		if strings.Contains(q, "{company}") || strings.Contains(q, "{domain}") {
			t.Fatalf("unexpanded placeholder in %q", q)
		}
	}
}
