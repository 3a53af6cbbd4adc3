package vulnticket

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"
	"github.com/vulnticket/vulnticket/internal/audit"
	"github.com/vulnticket/vulnticket/internal/report"
)

var (
	historyDir   string
	historyLimit int
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past exports, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := audit.NewAuditLog(historyDir).LoadHistory()
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			return report.PrintHistory(cmd.OutOrStdout(), records, historyLimit)
		},
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&historyDir, "dir", ".", "output directory whose exports to list")
	cmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "show at most this many exports (0 = all)")
}
