package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/trench/internal/db"
	"github.com/example/trench/internal/ports/primary"
	"github.com/example/trench/internal/ports/secondary"
	"github.com/example/trench/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show tracked repos, worktrees, and the current worktree",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			dbPath, err := db.GetDBPath()
			if err != nil {
				return err
			}
			fmt.Printf("State: %s\n\n", dbPath)

			current, err := wire.SessionService().GetSession(ctx, primary.SessionKeyCurrentWorktree)
			if err != nil && !errors.Is(err, secondary.ErrNotFound) {
				return err
			}

			repos, err := wire.RepoService().ListRepos(ctx)
			if err != nil {
				return fmt.Errorf("failed to list repos: %w", err)
			}

			if len(repos) == 0 {
				fmt.Println("No repos registered. Run 'trench repo register' first.")
				return nil
			}

			for _, r := range repos {
				fmt.Printf("%s  %s (%s)\n", r.ID, color.New(color.Bold).Sprint(r.Name), r.Path)

				worktrees, err := wire.WorktreeService().ListWorktrees(ctx, r.ID)
				if err != nil {
					return fmt.Errorf("failed to list worktrees: %w", err)
				}

				for _, wt := range worktrees {
					marker := ""
					if wt.Name == current {
						marker = color.New(color.FgHiMagenta).Sprint(" ←")
					}
					mode := ""
					if !wt.Managed {
						mode = color.New(color.FgCyan).Sprint(" [adopted]")
					}
					if wt.RemovedAt != "" {
						mode += color.New(color.FgRed).Sprint(" [removed]")
					}

					tags, err := wire.TagService().ListTags(ctx, wt.ID)
					if err != nil {
						return fmt.Errorf("failed to list tags: %w", err)
					}
					tagStr := ""
					if len(tags) > 0 {
						tagStr = color.New(color.FgYellow).Sprintf(" #%s", joinTags(tags))
					}

					fmt.Printf("  %s  %s @ %s%s%s%s\n", wt.ID, wt.Name, wt.Branch, mode, tagStr, marker)
				}
			}

			return nil
		},
	}

	return cmd
}

func joinTags(tags []string) string {
	out := ""
	for i, t := range tags {
		if i > 0 {
			out += " #"
		}
		out += t
	}
	return out
}
