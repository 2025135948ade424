package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	clierrors "github.com/salmonumbrella/sheetdump/internal/errors"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <bash|zsh|fish|powershell>",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for sheetdump.

Bash:
  $ source <(sheetdump completion bash)

Zsh:
  $ sheetdump completion zsh > "${fpath[1]}/_sheetdump"

Fish:
  $ sheetdump completion fish > ~/.config/fish/completions/sheetdump.fish

PowerShell:
  PS> sheetdump completion powershell | Out-String | Invoke-Expression
`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: completionShells,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := stdoutFromContext(cmd.Context())
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return clierrors.NewUserError(fmt.Sprintf("unsupported shell %q", args[0]), "Use one of: bash, zsh, fish, powershell")
			}
		},
	}
}
