package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/vulnticket/vulnticket/internal/audit"
	"github.com/vulnticket/vulnticket/internal/types"
)

// SummaryOptions control the console summary printed after an export.
type SummaryOptions struct {
	NoColor     bool
	Order       types.SeverityOrder
	InputRows   int
	MatchedRows int
	Skipped     int // tickets dropped by --new-only
	Duration    time.Duration
	Output      string
}

var (
	sevCriticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	sevHighStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	sevMediumStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sevLowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	sevOtherStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// ColorSeverity renders a severity label in its console colour.
func ColorSeverity(s types.Severity) string {
	switch s {
	case types.SevCritical:
		return sevCriticalStyle.Render(string(s))
	case types.SevHigh:
		return sevHighStyle.Render(string(s))
	case types.SevMedium:
		return sevMediumStyle.Render(string(s))
	case types.SevLow:
		return sevLowStyle.Render(string(s))
	}
	return sevOtherStyle.Render(orNA(string(s)))
}

type sevCount struct {
	sev     types.Severity
	tickets int
	hosts   int
}

// countBySeverity returns per-severity ticket and host counts in rank order.
func countBySeverity(tickets []types.TicketRecord, order types.SeverityOrder) []sevCount {
	idx := map[types.Severity]int{}
	var out []sevCount
	for _, t := range tickets {
		i, ok := idx[t.Severity]
		if !ok {
			i = len(out)
			idx[t.Severity] = i
			out = append(out, sevCount{sev: t.Severity})
		}
		out[i].tickets++
		out[i].hosts += len(t.Hosts)
	}
	// insertion sort; at most a handful of labels
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && lessSev(order, out[j].sev, out[j-1].sev); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func lessSev(order types.SeverityOrder, a, b types.Severity) bool {
	ra, rb := order.Rank(a), order.Rank(b)
	if ra != rb {
		return ra < rb
	}
	return a < b
}

// PrintSummary writes a severity | tickets | hosts table with a totals footer.
func PrintSummary(w io.Writer, tickets []types.TicketRecord, opts SummaryOptions) error {
	if len(tickets) == 0 {
		fmt.Fprintln(w, "No tickets to export")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("Severity", "Tickets", "Hosts")
		totalHosts := 0
		for _, c := range countBySeverity(tickets, opts.Order) {
			sev := orNA(string(c.sev))
			if !opts.NoColor {
				sev = ColorSeverity(c.sev)
			}
			totalHosts += c.hosts
			if err := table.Append([]string{sev, strconv.Itoa(c.tickets), strconv.Itoa(c.hosts)}); err != nil {
				return err
			}
		}
		table.Footer("Total", strconv.Itoa(len(tickets)), strconv.Itoa(totalHosts))
		if err := table.Render(); err != nil {
			return err
		}
	}
	if opts.InputRows > 0 {
		fmt.Fprintf(w, "Rows: %d read, %d matched\n", opts.InputRows, opts.MatchedRows)
	}
	if opts.Skipped > 0 {
		fmt.Fprintf(w, "Skipped %d baselined tickets\n", opts.Skipped)
	}
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.Output != "" {
		fmt.Fprintf(w, "Wrote %s\n", opts.Output)
	}
	return nil
}

// PrintHistory writes audit records as a table, in the order given.
func PrintHistory(w io.Writer, records []audit.ExportRecord, limit int) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No exports recorded")
		return nil
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	table := tablewriter.NewWriter(w)
	table.Header("When", "Input", "Format", "Environments", "Rows", "Tickets", "Output")
	for _, r := range records {
		row := []string{
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			r.Input,
			r.Format,
			strings.Join(r.Environments, ","),
			fmt.Sprintf("%d/%d", r.MatchedRows, r.InputRows),
			strconv.Itoa(r.Tickets),
			r.Output,
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
