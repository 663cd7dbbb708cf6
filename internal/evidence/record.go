package evidence

import "time"

// Hit is one accepted search result queued for fetching.
type Hit struct {
	Company   string
	Query     string
	Rank      int // 1-based position within its query's result list
	Title     string
	URL       string
	Source    string // backend identifier
	FetchedAt time.Time
}

// DedupHits drops hits whose URL was already seen, keeping the first
// occurrence and preserving the order of the rest.
func DedupHits(hits []Hit) []Hit {
	seen := map[string]struct{}{}
	out := make([]Hit, 0, len(hits))
	for _, h := range hits {
		if _, ok := seen[h.URL]; ok {
			continue
		}
		seen[h.URL] = struct{}{}
		out = append(out, h)
	}
	return out
}

// Evidence strength scores: records carrying an actual quote rank above
// placeholder records emitted for sources with no keyword match.
const (
	StrengthQuoted      = 3
	StrengthPlaceholder = 2

	defaultAnalystConfidence = 2
)

// Record is one flat output row of the per-company evidence CSV. The
// manual-coding block (ModelCategory through Geographies) is left blank for
// the analyst.
type Record struct {
	Company             string
	Country             string
	Website             string
	SourceType          string
	SourceTitle         string
	SourceURL           string
	SourceDate          string
	EvidenceQuote       string
	TriggerKeyword      string
	ModelCategory       string
	RevenueMix          string
	PricingModel        string
	ProductizationLevel int
	RiskSharingLevel    int
	DeliveryModel       string
	IPOSSStrategy       string
	Differentiators     string
	HardToCopyFactors   string
	ValueMechanisms     string
	CustomerSegments    string
	Geographies         string
	EvidenceStrength    int
	AnalystConfidence   int
	Notes               string
}

// Source identifies one visited URL when assembling records.
type Source struct {
	Type  string
	Title string
	URL   string
	Date  string
}

// Quote pairs one snippet with its trigger keyword.
type Quote struct {
	Text    string
	Keyword string
}

// Assemble joins one visited source with its snippets into output records:
// one record per snippet, or exactly one placeholder record with an empty
// quote when no snippet matched, so every visited source stays auditable.
func Assemble(company, country, domain string, src Source, quotes []Quote) []Record {
	if len(quotes) == 0 {
		quotes = []Quote{{}}
	}
	out := make([]Record, 0, len(quotes))
	for _, q := range quotes {
		strength := StrengthQuoted
		if q.Text == "" {
			strength = StrengthPlaceholder
		}
		out = append(out, Record{
			Company:           company,
			Country:           country,
			Website:           "https://" + domain,
			SourceType:        src.Type,
			SourceTitle:       src.Title,
			SourceURL:         src.URL,
			SourceDate:        src.Date,
			EvidenceQuote:     q.Text,
			TriggerKeyword:    q.Keyword,
			EvidenceStrength:  strength,
			AnalystConfidence: defaultAnalystConfidence,
		})
	}
	return out
}
