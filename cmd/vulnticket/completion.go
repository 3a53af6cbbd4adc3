package vulnticket

import (
	"io"

	"github.com/spf13/cobra"
)

var completionScripts = map[string]func(w io.Writer) error{
	"bash":       rootCmd.GenBashCompletion,
	"zsh":        rootCmd.GenZshCompletion,
	"fish":       func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
	"powershell": rootCmd.GenPowerShellCompletionWithDesc,
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:       "completion bash|zsh|fish|powershell",
		Short:     "Print a shell completion script",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Example: `  vulnticket completion bash > /etc/bash_completion.d/vulnticket
  vulnticket completion zsh > "${fpath[1]}/_vulnticket"
  vulnticket completion fish > ~/.config/fish/completions/vulnticket.fish`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionScripts[args[0]](cmd.OutOrStdout())
		},
	})
}
