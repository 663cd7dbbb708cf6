package snippet

// DefaultKeywords is the evidence keyword list in priority order: earlier
// entries are preferred when the per-page snippet cap is reached. English
// terms are paired with their Finnish equivalents.
var DefaultKeywords = []string{
	// Business model core terms
	"business model", "liiketoimintamalli", "revenue model", "tuottomalli",
	"pricing strategy", "hinnoittelustrategia", "value proposition", "arvolupaus",
	"competitive advantage", "kilpailuetu", "methodology", "menetelmä",

	// SaaS and subscription models
	"software as a service", "SaaS", "subscription", "tilaus", "recurring revenue",
	"monthly recurring revenue", "MRR", "multi-tenant", "pay-per-user",
	"cloud-based", "pilvipalvelu",

	// Platform and marketplace
	"platform business", "alustatalous", "two-sided market", "marketplace",
	"ecosystem", "ekosysteemi", "network effects", "verkostovaikutus",
	"API strategy", "third-party developers", "integrations", "integraatiot",

	// Consulting and professional services
	"custom development", "räätälöinti", "bespoke solutions", "professional services",
	"consulting", "konsultointi", "project-based", "projektipohjainen",
	"time and materials", "implementation", "toteutus",

	// Product and licensing
	"product strategy", "tuotestrategia", "license", "lisenssi",
	"perpetual license", "one-time purchase", "product sales",

	// Freemium and pricing models
	"freemium", "free tier", "upgrade path", "premium features",
	"value-based pricing", "arvopohjainen hinnoittelu", "outcome-based",
	"tulospohjainen", "performance-based", "suorituspohjainen",

	// Service delivery
	"service delivery", "palvelutoimitustapa", "customer onboarding",
	"implementation process", "delivery model", "toimitusmalli",
	"customer approach", "asiakaslähtöisyys", "customer success",

	// Partnerships and growth
	"partnerships", "kumppanuudet", "venture", "portfolio",
	"growth strategy", "kasvustrategia", "scalable", "skaalautuva",
	"automation", "automaatio", "innovation", "innovaatio",

	// General positioning terms
	"managed service", "hallinnoitu palvelu", "open source", "avoin lähdekoodi",
	"differentiation", "erottautuminen", "niche", "markkinarako",
	"customer segment", "asiakassegmentti", "case study", "asiakastarina",
}
