package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for gitlab-manager.

Completions cover the resource commands (packages, releases, pipelines,
repo, projects) and their flags, so tabbing through "packages upload
--version" or "pipelines trigger --variable" works in your shell.

Load for the current session:

  Bash:        source <(gitlab-manager completion bash)
  Zsh:         source <(gitlab-manager completion zsh)
  Fish:        gitlab-manager completion fish | source
  PowerShell:  gitlab-manager completion powershell | Out-String | Invoke-Expression

Install permanently by writing the script where your shell picks it up,
for example:

  gitlab-manager completion bash > /etc/bash_completion.d/gitlab-manager
  gitlab-manager completion zsh  > "${fpath[1]}/_gitlab-manager"
  gitlab-manager completion fish > ~/.config/fish/completions/gitlab-manager.fish
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
