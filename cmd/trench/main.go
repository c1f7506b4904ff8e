package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/trench/internal/cli"
	"github.com/example/trench/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "trench",
		Short:   "trench - state store for managed git worktrees",
		Version: version.String(),
		Long: `trench tracks the state behind a fleet of git worktrees: which repos are
known, which worktrees exist under them, the lifecycle events and captured
output of operations on them, their tags, and session state.

The git and process layers do the actual work; trench records it.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.RepoCmd())
	rootCmd.AddCommand(cli.WorktreeCmd())
	rootCmd.AddCommand(cli.EventCmd())
	rootCmd.AddCommand(cli.LogCmd())
	rootCmd.AddCommand(cli.TagCmd())
	rootCmd.AddCommand(cli.SessionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
