package report

import (
	"sort"
	"strings"

	"github.com/vulnticket/vulnticket/internal/types"
)

// FormatOptions control description rendering.
type FormatOptions struct {
	// CodeBlock wraps each plugin output excerpt in a Jira {code} block.
	CodeBlock bool
}

const descriptionHeader = "Affected Hosts:\n"

// FormatGroups renders one ticket per group, preserving group order.
func FormatGroups(groups []types.TicketGroup, opts FormatOptions) []types.TicketRecord {
	out := make([]types.TicketRecord, 0, len(groups))
	for _, g := range groups {
		out = append(out, FormatGroup(g, opts))
	}
	return out
}

// FormatGroup renders the title and description for a single group.
func FormatGroup(g types.TicketGroup, opts FormatOptions) types.TicketRecord {
	apps := applications(g.Records)
	t := types.TicketRecord{
		Key:          TicketKey(g.Key),
		Title:        Title(g),
		Description:  Description(g, opts),
		Finding:      g.Key.Finding,
		Severity:     g.Key.Severity,
		Applications: apps,
		Hosts:        hosts(g.Records),
	}
	for _, r := range g.Records {
		if r.Score > t.MaxScore {
			t.MaxScore = r.Score
		}
	}
	return t
}

// Title returns "<applications> - <severity> - <vulnerability>".
func Title(g types.TicketGroup) string {
	name := g.Key.Finding
	if len(g.Records) > 0 && g.Records[0].Vulnerability != "" {
		name = g.Records[0].Vulnerability
	}
	return strings.Join([]string{
		strings.Join(applications(g.Records), ", "),
		orNA(string(g.Key.Severity)),
		orNA(name),
	}, " - ")
}

// applications returns sorted unique application names. The N/A sentinel is
// only kept when no host mapped to an application.
func applications(recs []types.VulnerabilityRecord) []string {
	seen := map[string]bool{}
	for _, r := range recs {
		seen[orNA(r.Application)] = true
	}
	if len(seen) > 1 {
		delete(seen, types.NotAvailable)
	}
	apps := make([]string, 0, len(seen))
	for a := range seen {
		apps = append(apps, a)
	}
	sort.Strings(apps)
	if len(apps) == 0 {
		apps = []string{types.NotAvailable}
	}
	return apps
}

func hosts(recs []types.VulnerabilityRecord) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range recs {
		if r.Hostname == "" || seen[r.Hostname] {
			continue
		}
		seen[r.Hostname] = true
		out = append(out, r.Hostname)
	}
	return out
}

// Description returns the header line followed by one block per member record.
func Description(g types.TicketGroup, opts FormatOptions) string {
	var sb strings.Builder
	sb.WriteString(descriptionHeader)
	for _, r := range g.Records {
		env := r.EnvironmentName
		if env == "" {
			env = r.Environment
		}
		sb.WriteString("* Host: " + orNA(r.Hostname) + "\n")
		sb.WriteString("  Environment: " + orNA(env) + "\n")
		sb.WriteString("  Role: " + orNA(r.Role) + "\n")
		sb.WriteString("  Remediation: " + orNA(r.Remediation) + "\n")
		sb.WriteString("  First Discovered: " + orNA(r.FirstDiscovered) + "\n")
		sb.WriteString("  CVE: " + orNA(strings.Join(r.CVEs, ", ")) + "\n")
		sb.WriteString("  Plugin Text:\n")
		text := orNA(CleanPluginText(r.PluginText))
		if opts.CodeBlock {
			sb.WriteString("{code}" + text + "{code}\n\n")
		} else {
			sb.WriteString(text + "\n\n")
		}
	}
	return sb.String()
}

var pluginTags = []string{"<plugin_output>", "</plugin_output>"}

// CleanPluginText removes the scanner's <plugin_output> wrapper tags (ASCII
// case-insensitive) and trims surrounding whitespace. Any other markup is
// passed through unchanged.
func CleanPluginText(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		if n := tagAt(s, i); n > 0 {
			i += n
			continue
		}
		sb.WriteByte(s[i])
		i++
	}
	return strings.TrimSpace(sb.String())
}

func tagAt(s string, i int) int {
	for _, tag := range pluginTags {
		if len(s)-i >= len(tag) && strings.EqualFold(s[i:i+len(tag)], tag) {
			return len(tag)
		}
	}
	return 0
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return types.NotAvailable
	}
	return s
}
