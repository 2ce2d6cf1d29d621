package cli

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgdu/internal/config"
)

var completionShells = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        (*cobra.Command).GenZshCompletion,
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": (*cobra.Command).GenPowerShellCompletionWithDesc,
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for the given shell. Package name
arguments and --exclude values complete from the local database.

  $ pkgdu completion bash > /usr/share/bash-completion/completions/pkgdu
  $ pkgdu completion zsh > /usr/share/zsh/site-functions/_pkgdu
  $ pkgdu completion fish > ~/.config/fish/completions/pkgdu.fish`,
		DisableFlagsInUseLine: true,
		// Completion must work even when the defaults file is broken.
		PersistentPreRunE:     func(*cobra.Command, []string) error { return nil },
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionShells[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// completePattern completes the single PATTERN argument.
func (c *CLI) completePattern(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return c.completePackages(cmd, args, toComplete)
}

// completePackages offers installed package names starting with toComplete,
// read from the database a real run would open. A broken defaults file is
// ignored here and the CLI state is left untouched.
func (c *CLI) completePackages(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	file, err := config.LoadDefault()
	if err != nil {
		file = config.File{}
	}

	db, err := c.openDB(ctx, file)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	all, err := db.Packages()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, name := range all {
		if strings.HasPrefix(name, toComplete) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
