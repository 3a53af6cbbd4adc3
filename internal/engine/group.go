package engine

import (
	"sort"
	"strings"

	"github.com/vulnticket/vulnticket/internal/types"
)

// Enrich returns copies of recs with Application and EnvironmentName resolved
// and Finding and Severity trimmed, so grouping agrees with severity ranking.
// Hosts missing from hosts get types.NotAvailable; an application found there
// is renamed through apps when present. Environments missing from envMap keep
// their raw code.
func Enrich(recs []types.VulnerabilityRecord, hosts, apps, envMap map[string]string) []types.VulnerabilityRecord {
	out := make([]types.VulnerabilityRecord, len(recs))
	for i, r := range recs {
		r.Finding = strings.TrimSpace(r.Finding)
		r.Severity = types.Severity(strings.TrimSpace(string(r.Severity)))
		r.Application = types.NotAvailable
		if app, ok := hosts[strings.TrimSpace(r.Hostname)]; ok && strings.TrimSpace(app) != "" {
			r.Application = app
			if display, ok := apps[app]; ok && display != "" {
				r.Application = display
			}
		}
		r.EnvironmentName = r.Environment
		if name, ok := envMap[strings.TrimSpace(r.Environment)]; ok && name != "" {
			r.EnvironmentName = name
		}
		out[i] = r
	}
	return out
}

// Sort orders records by finding name, then severity rank (most severe first).
// Unranked labels share a rank, so the label itself breaks ties to keep equal
// keys adjacent. The sort is stable.
func Sort(recs []types.VulnerabilityRecord, order types.SeverityOrder) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Finding != b.Finding {
			return a.Finding < b.Finding
		}
		ra, rb := order.Rank(a.Severity), order.Rank(b.Severity)
		if ra != rb {
			return ra < rb
		}
		return a.Severity < b.Severity
	})
}

// Group collects consecutive records sharing (finding, severity). recs must
// already be sorted; member order follows input order.
func Group(recs []types.VulnerabilityRecord) []types.TicketGroup {
	var groups []types.TicketGroup
	for _, r := range recs {
		k := types.GroupKey{Finding: r.Finding, Severity: r.Severity}
		if n := len(groups); n > 0 && groups[n-1].Key == k {
			groups[n-1].Records = append(groups[n-1].Records, r)
			continue
		}
		groups = append(groups, types.TicketGroup{Key: k, Records: []types.VulnerabilityRecord{r}})
	}
	return groups
}
