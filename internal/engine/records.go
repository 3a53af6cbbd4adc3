package engine

import (
	"strconv"
	"strings"

	"github.com/vulnticket/vulnticket/internal/sheet"
	"github.com/vulnticket/vulnticket/internal/types"
)

// Decode converts table rows to records. groupKey names the column whose value
// becomes Record.Finding; it defaults to the synopsis column.
func Decode(t *sheet.Table, cols types.Columns, groupKey string) []types.VulnerabilityRecord {
	if groupKey == "" {
		groupKey = cols.Synopsis
	}
	out := make([]types.VulnerabilityRecord, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		score := t.Value(i, cols.SeverityScore)
		r := types.VulnerabilityRecord{
			Finding:         t.Value(i, groupKey),
			Hostname:        t.Value(i, cols.Hostname),
			Vulnerability:   t.Value(i, cols.Vulnerability),
			Synopsis:        t.Value(i, cols.Synopsis),
			Remediation:     t.Value(i, cols.Remediation),
			Role:            t.Value(i, cols.Role),
			Environment:     t.Value(i, cols.Environment),
			Severity:        types.Severity(t.Value(i, cols.Severity)),
			SeverityScore:   score,
			FirstDiscovered: t.Value(i, cols.FirstDiscovered),
			CVEs:            ParseCVEs(t.Value(i, cols.CVE)),
			PluginText:      t.Value(i, cols.PluginText),
		}
		if f, err := strconv.ParseFloat(score, 64); err == nil {
			r.Score = f
		}
		out = append(out, r)
	}
	return out
}

// ParseCVEs splits a CVE cell on commas, semicolons and whitespace, dropping
// duplicates while keeping first-seen order.
func ParseCVEs(cell string) []string {
	fields := strings.FieldsFunc(cell, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\n' || r == '\r' || r == '\t'
	})
	seen := map[string]bool{}
	var out []string
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
