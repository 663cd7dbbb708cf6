package app

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Company is one input row: who to collect evidence about.
type Company struct {
	Name    string
	Domain  string
	Country string
}

// ReadCompanies parses the input CSV. Required columns are company and
// domain; country is optional and defaults per row at processing time.
// Header matching is case-insensitive. An unreadable file is fatal to the
// run.
func ReadCompanies(path string) ([]Company, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open companies csv: %w", err)
	}
	defer f.Close()
	return parseCompanies(f)
}

func parseCompanies(r io.Reader) ([]Company, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	ci, ok := idx["company"]
	if !ok {
		return nil, fmt.Errorf("companies csv: missing 'company' column")
	}
	di, ok := idx["domain"]
	if !ok {
		return nil, fmt.Errorf("companies csv: missing 'domain' column")
	}
	coi, hasCountry := idx["country"]

	var out []Company
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		c := Company{
			Name:   strings.TrimSpace(field(row, ci)),
			Domain: strings.TrimSpace(field(row, di)),
		}
		if hasCountry {
			c.Country = strings.TrimSpace(field(row, coi))
		}
		out = append(out, c)
	}
	return out, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
