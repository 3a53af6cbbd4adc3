package vulnticket

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagNoColor bool
	flagVerbose bool
	flagQuiet   bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the vulnticket CLI.
var rootCmd = &cobra.Command{
	Use:   "vulnticket",
	Short: "Turn vulnerability scan exports into Jira tickets",
	Long: "vulnticket reads a vulnerability scan export (.xlsx or .csv), keeps the rows for the selected\n" +
		"environments and severities, and writes one ticket per finding and severity with a\n" +
		"description listing every affected host.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the vulnticket CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: local .vulnticket.yml over global config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "print debug information")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "only print errors")
}
