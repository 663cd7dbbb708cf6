package app

import (
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/sovelia/goevidence/internal/evidence"
)

// writeDigestPDF renders a compact per-company digest of the collected
// evidence for analysts who review on paper. Layout is intentionally simple:
// one heading per source, quotes as indented paragraphs.
func (a *App) writeDigestPDF(company string, records []evidence.Record) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr(company+" — evidence digest"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.Ln(2)

	lastURL := ""
	for _, r := range records {
		if r.SourceURL != lastURL {
			lastURL = r.SourceURL
			pdf.Ln(3)
			pdf.SetFont("Helvetica", "B", 11)
			title := r.SourceTitle
			if title == "" {
				title = r.SourceURL
			}
			if r.SourceDate != "" {
				title += " (" + r.SourceDate + ")"
			}
			pdf.MultiCell(0, 5, tr(title), "", "L", false)
			pdf.SetFont("Helvetica", "I", 9)
			pdf.MultiCell(0, 4, tr(r.SourceURL), "", "L", false)
			pdf.SetFont("Helvetica", "", 11)
		}
		if strings.TrimSpace(r.EvidenceQuote) == "" {
			continue
		}
		pdf.Ln(1)
		pdf.MultiCell(0, 5, tr("\""+r.EvidenceQuote+"\""), "", "L", false)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 4, tr("trigger: "+r.TriggerKeyword), "", "L", false)
		pdf.SetFont("Helvetica", "", 11)
	}

	out := strings.TrimSuffix(a.store.CSVPath(company), "_evidence.csv") + "_digest.pdf"
	return pdf.OutputFileAndClose(out)
}
