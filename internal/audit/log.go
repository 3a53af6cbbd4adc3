package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vulnticket/vulnticket/internal/types"
)

// LogName is the audit file kept next to the exported files.
const LogName = ".vulnticket_audit.jsonl"

type ExportRecord struct {
	Timestamp    time.Time      `json:"timestamp"`
	RunID        string         `json:"run_id"`
	Input        string         `json:"input"`
	Output       string         `json:"output"`
	Format       string         `json:"format"`
	Environments []string       `json:"environments"`
	Severities   []string       `json:"severities,omitempty"`
	InputRows    int            `json:"input_rows"`
	MatchedRows  int            `json:"matched_rows"`
	Tickets      int            `json:"tickets"`
	Skipped      int            `json:"skipped_baselined,omitempty"`
	BySeverity   map[string]int `json:"by_severity"`
	Duration     string         `json:"duration"`
	TopTickets   []TicketRef    `json:"top_tickets,omitempty"`
}

type TicketRef struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

type AuditLog struct {
	logPath string
}

// NewAuditLog returns the log stored in dir.
func NewAuditLog(dir string) *AuditLog {
	return &AuditLog{logPath: filepath.Join(dir, LogName)}
}

func (a *AuditLog) Path() string { return a.logPath }

// LoadHistory returns all records, newest first. Lines that fail to decode are skipped.
func (a *AuditLog) LoadHistory() ([]ExportRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []ExportRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record ExportRecord
		if err := decoder.Decode(&record); err != nil {
			break
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (a *AuditLog) LogExport(record ExportRecord) error {
	if record.RunID == "" {
		record.RunID = fmt.Sprintf("export_%d", time.Now().UnixNano())
	}

	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// Selection is what the user asked for in one export.
type Selection struct {
	Input        string
	Output       string
	Format       string
	Environments []string
	Severities   []string
}

// Counts summarises the work done by one export.
type Counts struct {
	InputRows   int
	MatchedRows int
	Skipped     int
	Duration    time.Duration
}

// CreateExportRecord builds the record for an export of tickets. Only the
// first ten ticket titles are kept.
func CreateExportRecord(sel Selection, tickets []types.TicketRecord, c Counts) ExportRecord {
	bySeverity := make(map[string]int)
	for _, t := range tickets {
		bySeverity[string(t.Severity)]++
	}

	top := make([]TicketRef, 0, 10)
	for i, t := range tickets {
		if i >= 10 {
			break
		}
		top = append(top, TicketRef{Key: t.Key, Title: t.Title})
	}

	return ExportRecord{
		Timestamp:    time.Now(),
		Input:        sel.Input,
		Output:       sel.Output,
		Format:       sel.Format,
		Environments: sel.Environments,
		Severities:   sel.Severities,
		InputRows:    c.InputRows,
		MatchedRows:  c.MatchedRows,
		Tickets:      len(tickets),
		Skipped:      c.Skipped,
		BySeverity:   bySeverity,
		Duration:     c.Duration.String(),
		TopTickets:   top,
	}
}
