package vulnticket

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vulnticket/vulnticket/internal/cache"
	"github.com/vulnticket/vulnticket/internal/tui"
	"github.com/vulnticket/vulnticket/internal/types"
)

var (
	previewReq  runRequest
	previewLast bool
	previewDir  string
)

// runPreview opens the ticket browser; tests replace it.
var runPreview = tui.RunPreview

func init() {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Browse the tickets an export would produce",
		Long: "preview runs the same grouping as export without writing a file and opens a ticket\n" +
			"browser. With --last it reopens the tickets of the most recent export instead.\n" +
			"When stdout is not a terminal the tickets are printed as plain text.",
		RunE: func(_ *cobra.Command, _ []string) error {
			tickets, opts, err := loadPreview()
			if err != nil {
				return err
			}
			if !isInteractive() {
				return printTickets(os.Stdout, tickets)
			}
			return runPreview(tickets, opts)
		},
	}
	rootCmd.AddCommand(cmd)

	previewReq.register(cmd)
	cmd.Flags().BoolVar(&previewLast, "last", false, "show the tickets of the last export")
	cmd.Flags().StringVar(&previewDir, "dir", ".", "directory holding the last export (with --last)")
}

func loadPreview() ([]types.TicketRecord, tui.PreviewOptions, error) {
	if previewLast {
		res, err := cache.LoadTickets(previewDir)
		if err != nil {
			return nil, tui.PreviewOptions{}, fmt.Errorf("no cached export in %s: %w", previewDir, err)
		}
		return res.Tickets, tui.PreviewOptions{Source: res.Input, CachedAt: res.Timestamp}, nil
	}
	fc, err := loadConfig(".")
	if err != nil {
		return nil, tui.PreviewOptions{}, err
	}
	run, err := runPipeline(fc, previewReq)
	if err != nil {
		return nil, tui.PreviewOptions{}, err
	}
	return run.Result.Tickets, tui.PreviewOptions{Source: run.Input}, nil
}

// printTickets writes tickets as title, underline and description blocks.
func printTickets(w io.Writer, tickets []types.TicketRecord) error {
	for i, t := range tickets {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n%s", t.Title, underline(t.Title), t.Description); err != nil {
			return err
		}
	}
	return nil
}

func underline(s string) string {
	b := make([]byte, len([]rune(s)))
	for i := range b {
		b[i] = '='
	}
	return string(b)
}
