package vulnticket

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vulnticket/vulnticket/internal/audit"
	"github.com/vulnticket/vulnticket/internal/cache"
	"github.com/vulnticket/vulnticket/internal/config"
	"github.com/vulnticket/vulnticket/internal/report"
	"github.com/vulnticket/vulnticket/internal/types"
)

type exportOptions struct {
	runRequest
	Output    string
	Format    string
	Project   string
	IssueType string
	NewOnly   bool
	Baseline  string
	DryRun    bool
}

var exportOpts exportOptions

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Group a scan export into tickets and write them to a file",
		Example: `  vulnticket export -i scan.xlsx --env PRD,ACP
  vulnticket export -i 'exports/*2025-06*' --env PRD --severity Critical,High -o tickets.csv
  vulnticket export --interactive
  vulnticket export -i scan.xlsx --env PRD --format jira-csv --project SEC --new-only`,
		RunE: func(_ *cobra.Command, _ []string) error {
			fc, err := loadConfig(".")
			if err != nil {
				return err
			}
			return doExport(fc, exportOpts)
		},
	}
	rootCmd.AddCommand(cmd)

	exportOpts.register(cmd)
	cmd.Flags().StringVarP(&exportOpts.Output, "output", "o", "", "output file (default: JiraVulnerabilityExport.<ext>)")
	cmd.Flags().StringVar(&exportOpts.Format, "format", "", "xlsx | csv | jira-csv | json (default: from --output extension, then config)")
	cmd.Flags().StringVar(&exportOpts.Project, "project", "", "Jira project key for jira-csv")
	cmd.Flags().StringVar(&exportOpts.IssueType, "issue-type", "", "Jira issue type for jira-csv: Bug | Task | Story | Epic")
	cmd.Flags().BoolVar(&exportOpts.NewOnly, "new-only", false, "skip tickets recorded in the baseline file")
	cmd.Flags().StringVar(&exportOpts.Baseline, "baseline", report.DefaultBaselinePath, "baseline file used by --new-only")
	cmd.Flags().BoolVar(&exportOpts.DryRun, "dry-run", false, "print the summary without writing any file")
}

// resolveFormat applies --format, then the output extension, then config.
func resolveFormat(flag, output string, fc config.FileConfig) (report.Format, error) {
	if flag != "" {
		return report.ParseFormat(flag)
	}
	if output != "" {
		return report.FormatForPath(output), nil
	}
	if fc.Format != nil && *fc.Format != "" {
		return report.ParseFormat(*fc.Format)
	}
	return report.FormatXLSX, nil
}

func doExport(fc config.FileConfig, opts exportOptions) error {
	format, err := resolveFormat(opts.Format, opts.Output, fc)
	if err != nil {
		return err
	}
	jc := fc.GetJira()
	wopts := report.WriteOptions{
		Format: format,
		Jira: report.JiraOptions{
			Project:    orDefault(opts.Project, jc.GetProject()),
			IssueType:  orDefault(opts.IssueType, jc.GetIssueType()),
			Priorities: jc.Priorities,
			Labels:     jc.Labels,
		},
	}
	if format == report.FormatJiraCSV {
		// fail before reading the input
		if err := wopts.Jira.Validate(); err != nil {
			return err
		}
	}

	run, err := runPipeline(fc, opts.runRequest)
	if err != nil {
		return err
	}
	tickets := run.Result.Tickets
	debugf("environments: %s; severities: %s", joinOr(run.Envs, "none"), joinOr(run.Sevs, "all"))

	skipped := 0
	if opts.NewOnly {
		base, err := report.LoadBaseline(opts.Baseline)
		if err != nil {
			return err
		}
		fresh := report.FilterNewTickets(tickets, base)
		skipped = len(tickets) - len(fresh)
		tickets = fresh
		debugf("baseline %s: %d tickets already exported", opts.Baseline, skipped)
	}

	output := opts.Output
	if output == "" {
		output = report.DefaultOutputName(format, wopts.Jira.Project)
	}

	summary := report.SummaryOptions{
		NoColor:     !useColor(fc),
		Order:       run.Order,
		InputRows:   run.Result.Stats.InputRows,
		MatchedRows: run.Result.Stats.MatchedRows,
		Skipped:     skipped,
		Duration:    run.Result.Duration,
	}

	if opts.DryRun {
		logf("Dry run: would write %d tickets to %s (%s)", len(tickets), output, format)
		return printSummary(tickets, summary)
	}

	if err := report.WriteFile(output, tickets, wopts); err != nil {
		return err
	}
	summary.Output = output

	dir := filepath.Dir(output)
	rec := audit.CreateExportRecord(audit.Selection{
		Input:        run.Input,
		Output:       output,
		Format:       string(format),
		Environments: run.Envs,
		Severities:   run.Sevs,
	}, tickets, audit.Counts{
		InputRows:   run.Result.Stats.InputRows,
		MatchedRows: run.Result.Stats.MatchedRows,
		Skipped:     skipped,
		Duration:    run.Result.Duration,
	})
	if err := audit.NewAuditLog(dir).LogExport(rec); err != nil {
		logf("warning: %v", err)
	}
	if err := cache.SaveTickets(dir, run.Input, tickets); err != nil {
		logf("warning: could not cache export: %v", err)
	}

	return printSummary(tickets, summary)
}

func printSummary(tickets []types.TicketRecord, opts report.SummaryOptions) error {
	if flagQuiet {
		return nil
	}
	return report.PrintSummary(logOut, tickets, opts)
}

// orDefault returns flag unless it is empty.
func orDefault(flag, fromConfig string) string {
	if strings.TrimSpace(flag) != "" {
		return flag
	}
	return fromConfig
}

// joinOr renders a list for log lines.
func joinOr(values []string, empty string) string {
	if len(values) == 0 {
		return empty
	}
	return strings.Join(values, ", ")
}
