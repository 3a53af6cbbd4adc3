package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulnticket/vulnticket/internal/audit"
	"github.com/vulnticket/vulnticket/internal/types"
)

func TestCountBySeverity_RankOrder(t *testing.T) {
	tickets := []types.TicketRecord{
		{Severity: types.SevLow, Hosts: []string{"a"}},
		{Severity: "Weird", Hosts: []string{"b"}},
		{Severity: types.SevCritical, Hosts: []string{"c", "d"}},
		{Severity: types.SevLow, Hosts: []string{"e"}},
	}
	got := countBySeverity(tickets, types.DefaultSeverityOrder())
	require.Len(t, got, 3)
	assert.Equal(t, sevCount{sev: types.SevCritical, tickets: 1, hosts: 2}, got[0])
	assert.Equal(t, sevCount{sev: types.SevLow, tickets: 2, hosts: 2}, got[1])
	assert.Equal(t, types.Severity("Weird"), got[2].sev)
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	tickets := []types.TicketRecord{
		{Severity: types.SevHigh, Hosts: []string{"H2"}},
		{Severity: types.SevCritical, Hosts: []string{"H1"}},
	}
	err := PrintSummary(&buf, tickets, SummaryOptions{
		NoColor: true, Order: types.DefaultSeverityOrder(),
		InputRows: 10, MatchedRows: 2, Skipped: 1, Duration: time.Second, Output: "out.xlsx",
	})
	require.NoError(t, err)
	out := buf.String()
	assert.NotContains(t, out, "\x1b[", "no colour codes with NoColor")
	assert.Less(t, strings.Index(out, "Critical"), strings.Index(out, "High"))
	assert.Contains(t, strings.ToUpper(out), "TOTAL")
	assert.Contains(t, out, "Rows: 10 read, 2 matched")
	assert.Contains(t, out, "Skipped 1 baselined tickets")
	assert.Contains(t, out, "Wrote out.xlsx")
}

func TestPrintSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintSummary(&buf, nil, SummaryOptions{NoColor: true}))
	assert.Equal(t, "No tickets to export\n", buf.String())
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintHistory(&buf, nil, 0))
	assert.Contains(t, buf.String(), "No exports recorded")

	buf.Reset()
	recs := []audit.ExportRecord{
		{Timestamp: time.Now(), Input: "new.xlsx", Format: "xlsx", Environments: []string{"PRD", "ACP"}, InputRows: 10, MatchedRows: 4, Tickets: 2},
		{Timestamp: time.Now().Add(-time.Hour), Input: "old.xlsx", Format: "csv"},
	}
	require.NoError(t, PrintHistory(&buf, recs, 1))
	assert.Contains(t, buf.String(), "new.xlsx")
	assert.Contains(t, buf.String(), "PRD,ACP")
	assert.NotContains(t, buf.String(), "old.xlsx")
}
