package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/vulnticket/vulnticket/internal/types"
	"github.com/xuri/excelize/v2"
)

// Format is an output file format.
type Format string

const (
	FormatXLSX    Format = "xlsx"
	FormatCSV     Format = "csv"
	FormatJiraCSV Format = "jira-csv"
	FormatJSON    Format = "json"
)

// SheetName is the worksheet written by the xlsx writer.
const SheetName = "Final Format"

const (
	headerFill   = "366092"
	maxColWidth  = 100
	colWidthSlop = 2
)

// IssueTypes are the Jira issue types accepted by the Jira CSV writer.
var IssueTypes = []string{"Bug", "Task", "Story", "Epic"}

// DefaultIssueType is used when no issue type is configured.
const DefaultIssueType = "Bug"

// ParseFormat accepts a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatXLSX, FormatCSV, FormatJiraCSV, FormatJSON:
		return f, nil
	case "jira":
		return FormatJiraCSV, nil
	}
	return "", fmt.Errorf("unknown format %q (want xlsx, csv, jira-csv or json)", s)
}

// FormatForPath infers a format from the output file extension. Unknown
// extensions fall back to xlsx.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	}
	return FormatXLSX
}

// DefaultOutputName returns the file name used when no --output is given.
func DefaultOutputName(f Format, project string) string {
	switch f {
	case FormatCSV:
		return "JiraVulnerabilityExport.csv"
	case FormatJiraCSV:
		if project == "" {
			return "JiraVulnerabilityImport.csv"
		}
		return "JiraVulnerabilityImport_" + project + ".csv"
	case FormatJSON:
		return "JiraVulnerabilityExport.json"
	}
	return "JiraVulnerabilityExport.xlsx"
}

// JiraOptions configure the Jira importer CSV.
type JiraOptions struct {
	Project    string
	IssueType  string
	Priorities map[string]string // severity -> Jira priority
	Labels     []string
}

// Validate checks the project key and normalises the issue type.
func (o *JiraOptions) Validate() error {
	o.Project = strings.TrimSpace(o.Project)
	if o.Project == "" {
		return errors.New("jira-csv output needs a project key (--project or jira.project)")
	}
	it := strings.TrimSpace(o.IssueType)
	if it == "" {
		o.IssueType = DefaultIssueType
		return nil
	}
	for _, known := range IssueTypes {
		if strings.EqualFold(it, known) {
			o.IssueType = known
			return nil
		}
	}
	return fmt.Errorf("unknown issue type %q (want one of %s)", it, strings.Join(IssueTypes, ", "))
}

// WriteOptions select the output format and its settings.
type WriteOptions struct {
	Format Format
	Jira   JiraOptions
}

// WriteFile writes tickets to path in the selected format. The file is created,
// written and closed within this call; on any error the partial file is removed.
func WriteFile(path string, tickets []types.TicketRecord, opts WriteOptions) (err error) {
	if opts.Format == FormatJiraCSV {
		if err := opts.Jira.Validate(); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	switch opts.Format {
	case FormatCSV:
		return WriteCSV(f, tickets)
	case FormatJiraCSV:
		return WriteJiraCSV(f, tickets, opts.Jira)
	case FormatJSON:
		return WriteJSON(f, tickets)
	case FormatXLSX, "":
		return WriteXLSX(f, tickets)
	}
	return fmt.Errorf("unknown format %q", opts.Format)
}

// WriteCSV writes the two ticket columns.
func WriteCSV(w io.Writer, tickets []types.TicketRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{types.ColumnTicketTitle, types.ColumnJiraDescription}); err != nil {
		return err
	}
	for _, t := range tickets {
		if err := cw.Write([]string{t.Title, t.Description}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJiraCSV writes a file for the Jira CSV importer. Priority and Labels
// columns are only present when configured.
func WriteJiraCSV(w io.Writer, tickets []types.TicketRecord, opts JiraOptions) error {
	header := []string{"Issue Type", "Project", "Summary", "Description"}
	withPriority := len(opts.Priorities) > 0
	withLabels := len(opts.Labels) > 0
	if withPriority {
		header = append(header, "Priority")
	}
	if withLabels {
		header = append(header, "Labels")
	}
	labels := strings.Join(opts.Labels, " ")

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, t := range tickets {
		row := []string{opts.IssueType, opts.Project, t.Title, t.Description}
		if withPriority {
			row = append(row, opts.Priorities[string(t.Severity)])
		}
		if withLabels {
			row = append(row, labels)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes tickets as an indented JSON array.
func WriteJSON(w io.Writer, tickets []types.TicketRecord) error {
	if tickets == nil {
		tickets = []types.TicketRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tickets)
}

// WriteXLSX writes the "Final Format" workbook: a styled, frozen header row and
// wrapped data cells in columns sized to their content.
func WriteXLSX(w io.Writer, tickets []types.TicketRecord) error {
	x := excelize.NewFile()
	defer func() { _ = x.Close() }()

	if err := x.SetSheetName(x.GetSheetName(0), SheetName); err != nil {
		return err
	}
	header := []string{types.ColumnTicketTitle, types.ColumnJiraDescription}
	headerStyle, err := x.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Border:    border(),
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}
	wrapStyle, err := x.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}

	if err := x.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}
	for i, t := range tickets {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := x.SetSheetRow(SheetName, cell, &[]string{t.Title, t.Description}); err != nil {
			return err
		}
	}

	widths := ColumnWidths(header, tickets)
	for i := range header {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := x.SetColWidth(SheetName, col, col, widths[i]); err != nil {
			return err
		}
		if err := x.SetColStyle(SheetName, col, wrapStyle); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := x.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
		return err
	}
	if err := x.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	return x.Write(w)
}

func border() []excelize.Border {
	var out []excelize.Border
	for _, side := range []string{"left", "top", "right", "bottom"} {
		out = append(out, excelize.Border{Type: side, Color: "000000", Style: 1})
	}
	return out
}

// ColumnWidths returns min(100, max(header, longest cell) + 2) for the title
// and description columns. Lengths are counted in characters.
func ColumnWidths(header []string, tickets []types.TicketRecord) []float64 {
	out := make([]float64, len(header))
	for i, h := range header {
		longest := utf8.RuneCountInString(h)
		for _, t := range tickets {
			v := t.Title
			if i == 1 {
				v = t.Description
			}
			if n := utf8.RuneCountInString(v); n > longest {
				longest = n
			}
		}
		out[i] = float64(min(maxColWidth, longest+colWidthSlop))
	}
	return out
}
