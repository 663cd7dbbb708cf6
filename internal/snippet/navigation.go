package snippet

import "strings"

// boilerplatePhrases mark menu, skip-link, cookie, legal and footer text in
// the two site languages we encounter.
var boilerplatePhrases = []string{
	"siirry sisältöön", "avaa valikko", "sulje valikko", "skip to content",
	"main menu", "navigation", "sitemap", "breadcrumb", "footer",
	"copyright", "©", "all rights reserved", "privacy policy",
	"cookie policy", "terms of service", "contact us",
}

// IsNavigation reports whether a sentence unit looks like navigation or other
// boilerplate rather than content prose. Three independent triggers, any one
// suffices: a known boilerplate phrase; many short words (menu-link lists);
// a low distinct-word ratio (repeated-label menus).
func IsNavigation(unit string) bool {
	lower := strings.ToLower(unit)
	for _, p := range boilerplatePhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}

	words := strings.Fields(unit)
	if len(words) > 8 {
		total := 0
		for _, w := range words {
			total += len([]rune(w))
		}
		if float64(total)/float64(len(words)) < 6 {
			return true
		}
	}

	if len(words) > 5 {
		distinct := map[string]struct{}{}
		for _, w := range words {
			distinct[w] = struct{}{}
		}
		if float64(len(distinct))/float64(len(words)) < 0.6 {
			return true
		}
	}
	return false
}
