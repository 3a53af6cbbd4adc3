package types

// NotAvailable is the placeholder rendered for missing values and unmapped hosts.
const NotAvailable = "N/A"

// VulnerabilityRecord is one row of a scan export: a single finding observed on
// a single host. Application and EnvironmentName are display values filled in by
// the enricher; everything else is read from the input table.
type VulnerabilityRecord struct {
	// Finding is the grouping key value (the Synopsis column unless configured otherwise).
	Finding         string   `json:"finding"`
	Hostname        string   `json:"hostname"`
	Vulnerability   string   `json:"vulnerability"`
	Synopsis        string   `json:"synopsis"`
	Remediation     string   `json:"remediation"`
	Role            string   `json:"role"`
	Environment     string   `json:"environment"`
	Severity        Severity `json:"severity"`
	SeverityScore   string   `json:"severity_score,omitempty"`
	Score           float64  `json:"score,omitempty"` // parsed SeverityScore, 0 when not numeric
	FirstDiscovered string   `json:"first_discovered,omitempty"`
	CVEs            []string `json:"cves,omitempty"`
	PluginText      string   `json:"plugin_text,omitempty"`

	Application     string `json:"application,omitempty"`
	EnvironmentName string `json:"environment_name,omitempty"`
}

// GroupKey identifies a ticket: one finding at one severity.
type GroupKey struct {
	Finding  string   `json:"finding"`
	Severity Severity `json:"severity"`
}

// TicketGroup is the ordered set of records sharing a GroupKey.
type TicketGroup struct {
	Key     GroupKey
	Records []VulnerabilityRecord
}

// TicketRecord is one output row. Title and Description are the two exported
// columns; the remaining fields feed the summary, baseline and JSON outputs.
type TicketRecord struct {
	Key          string   `json:"key"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Finding      string   `json:"finding"`
	Severity     Severity `json:"severity"`
	Applications []string `json:"applications,omitempty"`
	Hosts        []string `json:"hosts,omitempty"`
	MaxScore     float64  `json:"max_score,omitempty"`
}

// Output column headers.
const (
	ColumnTicketTitle     = "Ticket_Title"
	ColumnJiraDescription = "JIRA_Description"
)
