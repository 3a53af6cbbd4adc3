package vulnticket

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vulnticket/vulnticket/internal/cache"
	"github.com/vulnticket/vulnticket/internal/report"
	"github.com/vulnticket/vulnticket/internal/types"
)

var (
	baselineReq  runRequest
	baselineFile string
	baselineLast bool
	baselineDir  string
)

func init() {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage the record of tickets already raised",
	}

	update := &cobra.Command{
		Use:   "update",
		Short: "Record the current tickets so export --new-only skips them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tickets, err := baselineTickets()
			if err != nil {
				return err
			}
			if err := report.SaveBaseline(baselineFile, tickets); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Baseline updated with %d tickets.\n", len(tickets))
			return nil
		},
	}

	rootCmd.AddCommand(cmd)
	cmd.AddCommand(update)

	baselineReq.register(update)
	update.Flags().StringVar(&baselineFile, "file", report.DefaultBaselinePath, "baseline file")
	update.Flags().BoolVar(&baselineLast, "last", false, "use the tickets of the last export instead of re-reading the input")
	update.Flags().StringVar(&baselineDir, "dir", ".", "directory holding the last export (with --last)")
}

func baselineTickets() ([]types.TicketRecord, error) {
	if baselineLast {
		res, err := cache.LoadTickets(baselineDir)
		if err != nil {
			return nil, fmt.Errorf("no cached export in %s: %w", baselineDir, err)
		}
		return res.Tickets, nil
	}
	fc, err := loadConfig(".")
	if err != nil {
		return nil, err
	}
	run, err := runPipeline(fc, baselineReq)
	if err != nil {
		return nil, err
	}
	return run.Result.Tickets, nil
}
