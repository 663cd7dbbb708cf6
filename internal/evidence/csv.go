package evidence

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Columns is the fixed, ordered header of the evidence CSV. It matches the
// coding template analysts import, so order changes break downstream sheets.
var Columns = []string{
	"Company", "Country", "Website", "SourceType", "SourceTitle", "SourceURL",
	"SourceDate", "EvidenceQuote", "TriggerKeyword",
	"ModelCategory", "RevenueMix", "PricingModel", "ProductizationLevel",
	"RiskSharingLevel", "DeliveryModel", "IP_OSS_Strategy", "Differentiators",
	"HardToCopyFactors", "ValueMechanisms", "CustomerSegments", "Geographies",
	"EvidenceStrength", "AnalystConfidence", "Notes",
}

// WriteCSV emits the header and one row per record in fixed column order.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Company, r.Country, r.Website, r.SourceType, r.SourceTitle,
			r.SourceURL, r.SourceDate, r.EvidenceQuote, r.TriggerKeyword,
			r.ModelCategory, r.RevenueMix, r.PricingModel,
			strconv.Itoa(r.ProductizationLevel),
			strconv.Itoa(r.RiskSharingLevel),
			r.DeliveryModel, r.IPOSSStrategy, r.Differentiators,
			r.HardToCopyFactors, r.ValueMechanisms, r.CustomerSegments,
			r.Geographies,
			strconv.Itoa(r.EvidenceStrength),
			strconv.Itoa(r.AnalystConfidence),
			r.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
