package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulnticket/vulnticket/internal/types"
	"github.com/xuri/excelize/v2"
)

func sampleTickets() []types.TicketRecord {
	return []types.TicketRecord{
		{Key: "a1", Title: "OneSumX - Critical - OpenSSL Bug", Description: "Affected Hosts:\n* Host: H1\n", Severity: types.SevCritical},
		{Key: "b2", Title: "N/A - High - OpenSSL Bug", Description: "Affected Hosts:\n* Host: H2, \"quoted\"\n", Severity: types.SevHigh},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" JIRA-CSV ")
	require.NoError(t, err)
	assert.Equal(t, FormatJiraCSV, f)
	_, err = ParseFormat("pdf")
	assert.Error(t, err)

	assert.Equal(t, FormatCSV, FormatForPath("out/x.CSV"))
	assert.Equal(t, FormatJSON, FormatForPath("x.json"))
	assert.Equal(t, FormatXLSX, FormatForPath("x"))
	assert.Equal(t, "JiraVulnerabilityImport_SEC.csv", DefaultOutputName(FormatJiraCSV, "SEC"))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTickets()))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Ticket_Title", "JIRA_Description"}, rows[0])
	assert.Equal(t, sampleTickets()[1].Description, rows[2][1])
}

func TestWriteJiraCSV(t *testing.T) {
	opts := JiraOptions{Project: "SEC", IssueType: "task"}
	require.NoError(t, opts.Validate())
	assert.Equal(t, "Task", opts.IssueType)

	var buf bytes.Buffer
	require.NoError(t, WriteJiraCSV(&buf, sampleTickets(), opts))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Issue Type", "Project", "Summary", "Description"}, rows[0])
	assert.Equal(t, []string{"Task", "SEC", "OneSumX - Critical - OpenSSL Bug", "Affected Hosts:\n* Host: H1\n"}, rows[1])

	opts.Priorities = map[string]string{"Critical": "Highest"}
	opts.Labels = []string{"vulnerability", "scan-import"}
	buf.Reset()
	require.NoError(t, WriteJiraCSV(&buf, sampleTickets(), opts))
	rows, err = csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Issue Type", "Project", "Summary", "Description", "Priority", "Labels"}, rows[0])
	assert.Equal(t, "Highest", rows[1][4])
	assert.Equal(t, "", rows[2][4], "unmapped severity leaves priority blank")
	assert.Equal(t, "vulnerability scan-import", rows[2][5])
}

func TestJiraOptions_Validate(t *testing.T) {
	o := JiraOptions{}
	assert.Error(t, o.Validate(), "project is required")

	o = JiraOptions{Project: "SEC"}
	require.NoError(t, o.Validate())
	assert.Equal(t, DefaultIssueType, o.IssueType)

	o = JiraOptions{Project: "SEC", IssueType: "Incident"}
	assert.Error(t, o.Validate())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, sampleTickets()))
	var got []types.TicketRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleTickets(), got)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleTickets()))

	x, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = x.Close() }()

	assert.Equal(t, []string{SheetName}, x.GetSheetList())
	rows, err := x.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Ticket_Title", "JIRA_Description"}, rows[0])
	assert.Equal(t, "N/A - High - OpenSSL Bug", rows[2][0])

	panes, err := x.GetPanes(SheetName)
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 1, panes.YSplit)

	w, err := x.GetColWidth(SheetName, "A")
	require.NoError(t, err)
	assert.InDelta(t, float64(len("OneSumX - Critical - OpenSSL Bug")+2), w, 0.01)
}

func TestColumnWidths_Capped(t *testing.T) {
	long := []types.TicketRecord{{Title: "t", Description: strings.Repeat("x", 500)}}
	w := ColumnWidths([]string{"Ticket_Title", "JIRA_Description"}, long)
	assert.Equal(t, []float64{14, 100}, w)
}

func TestWriteFile_RemovesPartialOutput(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "out.csv")
	err := WriteFile(p, sampleTickets(), WriteOptions{Format: "pdf"})
	require.Error(t, err)
	_, statErr := os.Stat(p)
	assert.True(t, os.IsNotExist(statErr), "partial file should be removed")

	err = WriteFile(p, sampleTickets(), WriteOptions{Format: FormatJiraCSV})
	require.Error(t, err, "missing project")
	_, statErr = os.Stat(p)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteFile_Formats(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []Format{FormatXLSX, FormatCSV, FormatJiraCSV, FormatJSON} {
		p := filepath.Join(dir, DefaultOutputName(f, "SEC"))
		require.NoError(t, WriteFile(p, sampleTickets(), WriteOptions{Format: f, Jira: JiraOptions{Project: "SEC"}}), f)
		st, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, st.Size())
	}
}

func TestWriteFile_ByteIdentical(t *testing.T) {
	dir := t.TempDir()
	opts := JiraOptions{Project: "SEC", Priorities: map[string]string{"Critical": "Highest"}, Labels: []string{"security"}}
	for _, f := range []Format{FormatXLSX, FormatCSV, FormatJiraCSV, FormatJSON} {
		t.Run(string(f), func(t *testing.T) {
			var outs [2][]byte
			for i := range outs {
				p := filepath.Join(dir, string(f)+"-"+string(rune('a'+i)))
				require.NoError(t, WriteFile(p, sampleTickets(), WriteOptions{Format: f, Jira: opts}))
				b, err := os.ReadFile(p)
				require.NoError(t, err)
				outs[i] = b
			}
			assert.True(t, bytes.Equal(outs[0], outs[1]), "%s output differs between runs", f)
		})
	}
}
