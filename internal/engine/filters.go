package engine

import (
	"strings"

	"github.com/vulnticket/vulnticket/internal/types"
)

// Filter keeps records whose environment is selected and, when severities is
// non-empty, whose severity is selected. A selected environment code also
// matches rows carrying that code's display name from envMap. Input order is
// preserved. No match yields *EmptyResultError.
func Filter(recs []types.VulnerabilityRecord, envMap map[string]string, environments, severities []string) ([]types.VulnerabilityRecord, error) {
	envs := allowedEnvironments(envMap, environments)
	sevs := set(severities)
	var out []types.VulnerabilityRecord
	for _, r := range recs {
		if !envs[strings.TrimSpace(r.Environment)] {
			continue
		}
		if len(sevs) > 0 && !sevs[strings.TrimSpace(string(r.Severity))] {
			continue
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, &EmptyResultError{
			Environments: clean(environments),
			Severities:   clean(severities),
			Rows:         len(recs),
		}
	}
	return out, nil
}

func allowedEnvironments(envMap map[string]string, selected []string) map[string]bool {
	allowed := map[string]bool{}
	for _, code := range clean(selected) {
		allowed[code] = true
		if name := strings.TrimSpace(envMap[code]); name != "" {
			allowed[name] = true
		}
	}
	return allowed
}

func set(values []string) map[string]bool {
	m := map[string]bool{}
	for _, v := range clean(values) {
		m[v] = true
	}
	return m
}

// clean trims values and drops blanks.
func clean(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
