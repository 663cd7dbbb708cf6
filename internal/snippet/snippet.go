package snippet

import (
	"regexp"
	"strings"
	"unicode"
)

// Snippet is a short human-readable evidence quote anchored on a keyword
// occurrence in page text.
type Snippet struct {
	Text    string
	Keyword string
}

// Options bounds extraction. Zero values fall back to the defaults used for
// analyst-facing evidence quotes.
type Options struct {
	// MaxLen is the maximum snippet length in runes; longer candidates are
	// truncated with a trailing ellipsis.
	MaxLen int
	// MaxSnippets caps how many snippets one page may contribute.
	MaxSnippets int
}

const (
	defaultMaxLen      = 280
	defaultMaxSnippets = 3

	// Sentence units at or below this rune count are treated as noise
	// fragments and never anchor a snippet.
	minUnitRunes = 20
	// Cleaned context windows below this rune count carry too little
	// information to quote.
	minSnippetRunes = 30
)

var sentenceSplit = regexp.MustCompile(`[.!?]+\s+`)

// Extract selects evidence quotes from page text. Keywords are scanned in the
// given order, which is the priority order: earlier keywords win the limited
// snippet slots. Each returned snippet contains its trigger keyword
// case-insensitively in the pre-truncation text.
func Extract(text string, keywords []string, opts Options) []Snippet {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = defaultMaxLen
	}
	maxSnips := opts.MaxSnippets
	if maxSnips <= 0 {
		maxSnips = defaultMaxSnippets
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	units := splitUnits(text)
	if len(units) == 0 {
		return nil
	}

	out := make([]Snippet, 0, maxSnips)
	seen := map[string]struct{}{}

	for _, kw := range keywords {
		kwLower := strings.ToLower(kw)
		if kwLower == "" {
			continue
		}

		// Collect candidate context windows for this keyword.
		var best string
		var bestLen int
		for i, unit := range units {
			if !strings.Contains(strings.ToLower(unit), kwLower) {
				continue
			}
			if IsNavigation(unit) {
				continue
			}
			// Context window: matching unit plus its neighbors, clamped at
			// the text boundaries.
			lo, hi := i-1, i+2
			if lo < 0 {
				lo = 0
			}
			if hi > len(units) {
				hi = len(units)
			}
			cand := clean(strings.Join(units[lo:hi], " "))
			n := len([]rune(cand))
			if n < minSnippetRunes {
				continue
			}
			if _, dup := seen[cand]; dup {
				continue
			}
			// Length as a completeness proxy: longest candidate wins.
			if n > bestLen {
				best, bestLen = cand, n
			}
		}
		if bestLen == 0 {
			continue
		}

		if bestLen > maxLen {
			best = string([]rune(best)[:maxLen-1]) + "…"
		}
		seen[best] = struct{}{}
		out = append(out, Snippet{Text: best, Keyword: kw})
		if len(out) >= maxSnips {
			return out
		}
	}
	return out
}

// splitUnits breaks text into sentence-like units on terminal punctuation
// followed by whitespace, dropping short noise fragments.
func splitUnits(text string) []string {
	parts := sentenceSplit.Split(text, -1)
	units := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len([]rune(p)) > minUnitRunes {
			units = append(units, p)
		}
	}
	return units
}

var leadingNoise = regexp.MustCompile(`^[0-9\s\-—–]+`)

// clean normalizes a joined context window into quotable prose.
func clean(s string) string {
	s = collapseSpaces(s)
	s = leadingNoise.ReplaceAllString(s, "")
	s = strings.TrimLeftFunc(s, isNonWord)
	s = strings.TrimRightFunc(s, isNonWord)
	r := []rune(s)
	if len(r) > 10 && unicode.IsLower(r[0]) {
		r[0] = unicode.ToUpper(r[0])
		s = string(r)
	}
	return strings.TrimSpace(s)
}

func isNonWord(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}

func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return strings.TrimSpace(b.String())
}
