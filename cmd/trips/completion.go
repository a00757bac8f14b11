package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksmith/trips/internal/cli"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for trips.

To load completions:

Bash:
  $ source <(trips completion bash)
  # To load completions for each session, execute once:
  $ trips completion bash > /etc/bash_completion.d/trips

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  $ trips completion zsh > "${fpath[1]}/_trips"

Fish:
  $ trips completion fish > ~/.config/fish/completions/trips.fish
`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletion(os.Stdout)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(os.Stdout)
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenFishCompletion(os.Stdout, true)
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// completeTripIDs completes trip ids, described by their titles.
// Nothing is offered while signed out.
func completeTripIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	rootQuiet = true
	a, err := loadApp(commandContext(cmd))
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer a.Close()

	var completions []string
	toCompleteLower := strings.ToLower(toComplete)
	for _, id := range a.Manager.IDs() {
		if !strings.HasPrefix(strings.ToLower(id), toCompleteLower) {
			continue
		}
		trip, err := a.Manager.Get(id)
		if err != nil {
			continue
		}
		completions = append(completions, id+"\t"+cli.Truncate(trip.Title, cli.DefaultMaxTitleWidth))
	}

	return completions, cobra.ShellCompDirectiveNoFileComp
}
