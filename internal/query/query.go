package query

import "strings"

// DefaultTemplates are the per-company query templates, in priority order.
// Order is significant: the diary and rank interpretation depend on it.
// Bilingual alternations (EN/FI) widen recall on Finnish company sites.
var DefaultTemplates = []string{
	// Core business model queries
	`site:{domain} "business model" OR "liiketoimintamalli"`,
	`site:{domain} "revenue model" OR "tuottomalli"`,
	`site:{domain} "pricing strategy" OR "hinnoittelustrategia"`,
	`site:{domain} "value proposition" OR "arvolupaus"`,

	// Strategic content pages
	`site:{domain} inurl:about "strategy" OR "strategia"`,
	`site:{domain} inurl:services "approach" OR "malli"`,
	`site:{domain} "methodology" OR "menetelmä" OR "lähestymistapa"`,

	// Business model types, company-focused
	`{company} "software as a service" OR "SaaS"`,
	`{company} "business model" OR "competitive advantage"`,
	`{company} "platform business" OR "consulting model"`,

	// High-value content
	`site:{domain} "case study" OR "asiakastarina" OR "referenssi"`,
	`site:{domain} "partnerships" OR "kumppanuudet" OR "integraatiot"`,
}

// Expand substitutes {company} and {domain} placeholders in each template.
// The result preserves template order and is not deduplicated: each expanded
// query is issued independently.
func Expand(company, domain string, templates []string) []string {
	if len(templates) == 0 {
		templates = DefaultTemplates
	}
	out := make([]string, 0, len(templates))
	r := strings.NewReplacer("{company}", company, "{domain}", domain)
	for _, t := range templates {
		out = append(out, r.Replace(t))
	}
	return out
}
