package vulnticket

import (
	"fmt"
	"runtime/debug"

	semver "github.com/blang/semver/v4"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the vulnticket version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	})
}

// versionString returns the semantic version, plus the VCS revision when the
// binary was built from a checkout.
func versionString() string {
	v, err := semver.ParseTolerant(version)
	if err != nil {
		v = semver.MustParse("0.0.0")
	}
	s := "vulnticket " + v.String()
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, kv := range info.Settings {
			if kv.Key == "vcs.revision" && len(kv.Value) >= 7 {
				s += " (" + kv.Value[:7] + ")"
			}
		}
	}
	return s
}
