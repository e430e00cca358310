package cli

import "github.com/spf13/cobra"

// completionCommand creates the shell completion command.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for benchviz.

To load completions:

Bash:
  $ source <(benchviz completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ benchviz completion bash > /etc/bash_completion.d/benchviz
  # macOS:
  $ benchviz completion bash > $(brew --prefix)/etc/bash_completion.d/benchviz

Zsh:
  $ benchviz completion zsh > "${fpath[1]}/_benchviz"
  # then start a new shell

Fish:
  $ benchviz completion fish | source

  # To load completions for each session, execute once:
  $ benchviz completion fish > ~/.config/fish/completions/benchviz.fish

PowerShell:
  PS> benchviz completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> benchviz completion powershell > benchviz.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}
