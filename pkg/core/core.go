package core

import (
	"github.com/vulnticket/vulnticket/internal/config"
	"github.com/vulnticket/vulnticket/internal/engine"
	"github.com/vulnticket/vulnticket/internal/sheet"
	"github.com/vulnticket/vulnticket/internal/types"
	"github.com/vulnticket/vulnticket/internal/validate"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type Config = engine.Config
type Result = engine.Result
type Table = sheet.Table
type Ticket = types.TicketRecord
type EmptyResultError = engine.EmptyResultError
type MissingFieldsError = validate.MissingFieldsError

// DefaultConfig returns the built-in columns, environment table and severity
// order. Callers still need to set SelectedEnvironments.
func DefaultConfig() Config {
	cfg := engine.DefaultConfig()
	cfg.Environments = config.DefaultEnvironments()
	return cfg
}

// NewTable builds an in-memory table from a header row and data rows.
func NewTable(header []string, rows [][]string) *Table {
	return sheet.NewTable(header, rows)
}

// Transform is the stable entrypoint for other programs.
func Transform(cfg Config, t *Table) (Result, error) {
	return engine.Run(cfg, t)
}

// TransformFile reads an .xlsx or .csv export and transforms it. sheetName
// selects a worksheet; empty means the first one.
func TransformFile(cfg Config, path, sheetName string) (Result, error) {
	t, err := sheet.ReadFile(path, sheet.Options{Sheet: sheetName})
	if err != nil {
		return Result{}, err
	}
	return engine.Run(cfg, t)
}
