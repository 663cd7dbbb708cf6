package page

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Document is the parsed view of one fetched HTML page.
type Document struct {
	Title string
	// PubDate is a best-guess publication date in ISO YYYY-MM-DD form, or
	// empty when no ISO-shaped candidate was found.
	PubDate string
	// Text is the page's visible text with whitespace runs collapsed to
	// single spaces.
	Text string
}

// dateMetaKeys are the meta property/name values scanned for publication date
// candidates, in scan order.
var dateMetaKeys = []string{
	"article:published_time", "og:updated_time", "date",
	"dc.date", "dc.date.issued", "publication_date",
}

var isoPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// Parse extracts title, publication date and visible text from raw HTML
// bytes. The body is decoded to UTF-8 using the content type and in-document
// hints before parsing. Malformed HTML yields best-effort output, never an
// error.
func Parse(body []byte, contentType string) Document {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		r = bytes.NewReader(body)
	}
	node, err := html.Parse(r)
	if err != nil || node == nil {
		return Document{}
	}
	doc := goquery.NewDocumentFromNode(node)

	title := strings.TrimSpace(doc.Find("title").First().Text())
	pub := pubDate(doc)
	text := visibleText(node)
	return Document{Title: title, PubDate: pub, Text: text}
}

// pubDate scans meta tags and time elements for date-like values and returns
// the first ISO-shaped candidate truncated to ten characters. Scan order is
// tie-break order: the first match wins, not the most recent date.
func pubDate(doc *goquery.Document) string {
	var candidates []string
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		prop, _ := s.Attr("property")
		name, _ := s.Attr("name")
		for _, k := range dateMetaKeys {
			if prop == k || name == k {
				if v, ok := s.Attr("content"); ok {
					if v = strings.TrimSpace(v); v != "" {
						candidates = append(candidates, v)
					}
				}
			}
		}
	})
	doc.Find("time").Each(func(_ int, s *goquery.Selection) {
		v, ok := s.Attr("datetime")
		if !ok || strings.TrimSpace(v) == "" {
			v = s.Text()
		}
		if v = strings.TrimSpace(v); v != "" {
			candidates = append(candidates, v)
		}
	})
	for _, c := range candidates {
		if isoPrefix.MatchString(c) {
			return c[:10]
		}
	}
	return ""
}

// visibleText walks the DOM collecting text nodes, skipping elements that
// never render, and collapses whitespace runs to single spaces.
func visibleText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.ElementNode {
			switch strings.ToLower(cur.Data) {
			case "script", "style", "noscript":
				return
			}
		}
		if cur.Type == html.TextNode {
			if t := strings.TrimSpace(cur.Data); t != "" {
				b.WriteString(t)
				b.WriteByte(' ')
			}
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return collapseSpaces(b.String())
}

func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
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
