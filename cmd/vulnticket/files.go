package vulnticket

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vulnticket/vulnticket/internal/files"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "files [dir]",
		Short: "List the scan exports found in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			found, err := files.Discover(dir)
			if err != nil {
				return err
			}
			if len(found) == 0 {
				return fmt.Errorf("%w in %s", files.ErrNoInputs, dir)
			}
			for _, f := range found {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	})
}
