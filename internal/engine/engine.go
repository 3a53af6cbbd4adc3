package engine

import (
	"time"

	"github.com/vulnticket/vulnticket/internal/report"
	"github.com/vulnticket/vulnticket/internal/sheet"
	"github.com/vulnticket/vulnticket/internal/types"
	"github.com/vulnticket/vulnticket/internal/validate"
)

// Config carries the static lookup tables and the user's selection. It is
// read-only for the duration of a run.
type Config struct {
	Columns         types.Columns
	RequiredColumns []string // nil means Columns.Names()
	GroupKey        string   // column used as finding name; "" means Columns.Synopsis

	Environments  map[string]string // code -> display name
	Hosts         map[string]string // hostname -> application
	Applications  map[string]string // application -> display name
	SeverityOrder types.SeverityOrder

	SelectedEnvironments []string
	SelectedSeverities   []string // empty selects every severity

	Format report.FormatOptions
}

// Stats describes one run.
type Stats struct {
	InputRows   int                    `json:"input_rows"`
	MatchedRows int                    `json:"matched_rows"`
	Tickets     int                    `json:"tickets"`
	BySeverity  map[types.Severity]int `json:"by_severity"`
}

// Result holds the produced tickets in output order.
type Result struct {
	Tickets  []types.TicketRecord
	Stats    Stats
	Duration time.Duration
}

// DefaultConfig returns a Config with the built-in columns, environments and
// severity order and an empty selection.
func DefaultConfig() Config {
	return Config{
		Columns:       types.DefaultColumns(),
		SeverityOrder: types.DefaultSeverityOrder(),
		Format:        report.FormatOptions{CodeBlock: true},
	}
}

func (c Config) required() []string {
	req := c.RequiredColumns
	if req == nil {
		req = c.Columns.Names()
	}
	if c.GroupKey != "" {
		req = append(append([]string{}, req...), c.GroupKey)
	}
	return req
}

func (c Config) order() types.SeverityOrder {
	if len(c.SeverityOrder.Labels()) == 0 {
		return types.DefaultSeverityOrder()
	}
	return c.SeverityOrder
}

// Run validates t, then transforms its rows into tickets. It fails with
// *validate.MissingFieldsError or *EmptyResultError and does no partial work.
func Run(cfg Config, t *sheet.Table) (Result, error) {
	start := time.Now()
	if err := validate.RequiredFields(t.Columns, cfg.required()); err != nil {
		return Result{}, err
	}
	res, err := Process(cfg, Decode(t, cfg.Columns, cfg.GroupKey))
	res.Duration = time.Since(start)
	return res, err
}

// Process runs filter, enrich, group and format over already decoded records.
func Process(cfg Config, recs []types.VulnerabilityRecord) (Result, error) {
	start := time.Now()
	res := Result{Stats: Stats{InputRows: len(recs), BySeverity: map[types.Severity]int{}}}

	kept, err := Filter(recs, cfg.Environments, cfg.SelectedEnvironments, cfg.SelectedSeverities)
	if err != nil {
		return res, err
	}
	res.Stats.MatchedRows = len(kept)

	enriched := Enrich(kept, cfg.Hosts, cfg.Applications, cfg.Environments)
	Sort(enriched, cfg.order())
	groups := Group(enriched)

	res.Tickets = report.FormatGroups(groups, cfg.Format)
	res.Stats.Tickets = len(res.Tickets)
	for _, tk := range res.Tickets {
		res.Stats.BySeverity[tk.Severity]++
	}
	res.Duration = time.Since(start)
	return res, nil
}
