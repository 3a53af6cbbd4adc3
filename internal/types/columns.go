package types

import (
	"fmt"
	"sort"
	"strings"
)

// Columns maps record fields to the header names used in the input table.
type Columns struct {
	Hostname        string
	Vulnerability   string
	Remediation     string
	Role            string
	Environment     string
	Synopsis        string
	PluginText      string
	Severity        string
	SeverityScore   string
	FirstDiscovered string
	CVE             string
}

// DefaultColumns returns the header names of a standard scan export.
func DefaultColumns() Columns {
	return Columns{
		Hostname:        "Hostname",
		Vulnerability:   "Vulnerability",
		Remediation:     "Remediation",
		Role:            "Role",
		Environment:     "Environment",
		Synopsis:        "Synopsis",
		PluginText:      "Plugin Text",
		Severity:        "VPR",
		SeverityScore:   "VPR Score",
		FirstDiscovered: "First Discovered",
		CVE:             "CVE",
	}
}

// Names returns the header names in export order.
func (c Columns) Names() []string {
	return []string{
		c.Hostname, c.Vulnerability, c.Remediation, c.Role, c.Environment,
		c.Synopsis, c.PluginText, c.Severity, c.SeverityScore, c.FirstDiscovered, c.CVE,
	}
}

func (c *Columns) field(key string) *string {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "hostname":
		return &c.Hostname
	case "vulnerability":
		return &c.Vulnerability
	case "remediation":
		return &c.Remediation
	case "role":
		return &c.Role
	case "environment":
		return &c.Environment
	case "synopsis":
		return &c.Synopsis
	case "plugin_text":
		return &c.PluginText
	case "severity", "vpr":
		return &c.Severity
	case "severity_score", "vpr_score":
		return &c.SeverityScore
	case "first_discovered":
		return &c.FirstDiscovered
	case "cve":
		return &c.CVE
	}
	return nil
}

// Override renames columns from a field-key -> header map, e.g.
// {"remediation": "Remediation (Solution)"}. Unknown keys are an error.
func (c Columns) Override(m map[string]string) (Columns, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p := c.field(k)
		if p == nil {
			return c, fmt.Errorf("unknown column key %q", k)
		}
		if v := strings.TrimSpace(m[k]); v != "" {
			*p = v
		}
	}
	return c, nil
}
