package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/sovelia/goevidence/internal/search"
)

// Store is the persistence boundary for the run's audit trail. All values it
// writes are computed elsewhere; the store only names files and serializes.
// Layout under Root:
//
//	raw/   raw HTML/PDF bytes, content-addressed
//	meta/  one JSON sidecar per fetched URL
//	logs/  one query-diary JSON per issued query
//	csv/   one evidence CSV per company
type Store struct {
	Root string
}

// Metadata mirrors the fetched-page and parsed-content fields for one URL.
type Metadata struct {
	Company     string `json:"company"`
	Query       string `json:"query"`
	Rank        int    `json:"rank"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	FinalURL    string `json:"final_url"`
	Host        string `json:"host"`
	PubDate     string `json:"pubdate"`
	ContentType string `json:"content_type"`
	SHA256      string `json:"sha256"`
	FetchedAt   string `json:"fetched_at_utc"`
	IsPDF       bool   `json:"is_pdf"`
	// DuplicateOf is the first URL seen this run with identical content
	// bytes, or empty. Duplicate sources still produce evidence records;
	// this field only lets analysts discount repeats.
	DuplicateOf string `json:"duplicate_of,omitempty"`
}

// Open creates the output directory tree. A failure here aborts the run:
// an unwritable output root is one of the two fatal conditions.
func Open(root string) (*Store, error) {
	for _, d := range []string{"raw", "meta", "logs", "csv"} {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return nil, fmt.Errorf("create output dir %s: %w", d, err)
		}
	}
	return &Store{Root: root}, nil
}

// WriteDiary persists one query-diary entry as indented JSON, named by
// company and a short digest of the literal query text.
func (s *Store) WriteDiary(e search.DiaryEntry) error {
	name := SanitizeFilename(e.Company) + "_" + shortHash(e.Query) + ".json"
	return s.writeJSON(filepath.Join("logs", name), e)
}

// WriteRaw persists fetched bytes content-addressed by company, host and
// content hash.
func (s *Store) WriteRaw(company, host, sha string, isPDF bool, body []byte) error {
	ext := "html"
	if isPDF {
		ext = "pdf"
	}
	name := SanitizeFilename(fmt.Sprintf("%s_%s_%s.%s", company, host, sha, ext))
	path := filepath.Join(s.Root, "raw", name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write raw: %w", err)
	}
	return nil
}

// WriteMeta persists the per-URL metadata sidecar.
func (s *Store) WriteMeta(m Metadata) error {
	name := SanitizeFilename(fmt.Sprintf("%s_%s_%s.json", m.Company, m.Host, m.SHA256))
	return s.writeJSON(filepath.Join("meta", name), m)
}

// CSVPath returns the evidence CSV path for one company.
func (s *Store) CSVPath(company string) string {
	return filepath.Join(s.Root, "csv", SanitizeFilename(company)+"_evidence.csv")
}

func (s *Store) writeJSON(rel string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", rel, err)
	}
	if err := os.WriteFile(filepath.Join(s.Root, rel), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SanitizeFilename maps arbitrary text to a safe filename, capped at 200
// characters.
func SanitizeFilename(name string) string {
	out := unsafeChars.ReplaceAllString(name, "_")
	if len(out) > 200 {
		out = out[:200]
	}
	return out
}

func shortHash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])[:8]
}
