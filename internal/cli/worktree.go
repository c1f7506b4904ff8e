package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/trench/internal/ports/primary"
	"github.com/example/trench/internal/wire"
)

// WorktreeCmd returns the worktree command
func WorktreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worktree",
		Short: "Track worktrees under a repo",
		Long: `Track git worktrees for a registered repo.

'create' records a worktree trench made itself (managed); 'adopt' starts
tracking one that already existed. The actual git worktree operations are
done by the git layer - these commands only maintain state.`,
	}

	cmd.AddCommand(worktreeCreateCmd())
	cmd.AddCommand(worktreeAdoptCmd())
	cmd.AddCommand(worktreeListCmd())
	cmd.AddCommand(worktreeSwitchCmd())
	cmd.AddCommand(worktreeRemovedCmd())

	return cmd
}

func trackFlags(cmd *cobra.Command, baseBranch *string) {
	cmd.Flags().StringVarP(baseBranch, "base", "b", "", "Base branch the worktree was cut from")
}

func worktreeCreateCmd() *cobra.Command {
	var baseBranch string

	cmd := &cobra.Command{
		Use:   "create [repo-id] [name] [branch] [path]",
		Short: "Track a managed worktree",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrack(args, baseBranch, true)
		},
	}

	trackFlags(cmd, &baseBranch)

	return cmd
}

func worktreeAdoptCmd() *cobra.Command {
	var baseBranch string

	cmd := &cobra.Command{
		Use:   "adopt [repo-id] [name] [branch] [path]",
		Short: "Adopt a pre-existing worktree",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrack(args, baseBranch, false)
		},
	}

	trackFlags(cmd, &baseBranch)

	return cmd
}

func runTrack(args []string, baseBranch string, managed bool) error {
	ctx := NewContext()

	if err := validateEntityID(args[0], "repo"); err != nil {
		return err
	}

	req := primary.TrackWorktreeRequest{
		RepoID:     args[0],
		Name:       args[1],
		Branch:     args[2],
		Path:       args[3],
		BaseBranch: baseBranch,
	}

	var (
		resp *primary.TrackWorktreeResponse
		err  error
		verb string
	)
	if managed {
		resp, err = wire.WorktreeService().CreateWorktree(ctx, req)
		verb = "Created"
	} else {
		resp, err = wire.WorktreeService().AdoptWorktree(ctx, req)
		verb = "Adopted"
	}
	if err != nil {
		return fmt.Errorf("failed to track worktree: %w", err)
	}

	fmt.Printf("✓ %s worktree %s: %s\n", verb, resp.WorktreeID, resp.Worktree.Name)
	fmt.Printf("  Branch: %s\n", resp.Worktree.Branch)
	fmt.Printf("  Path: %s\n", resp.Worktree.Path)

	return nil
}

func worktreeListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [repo-id]",
		Short: "List a repo's worktrees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if err := validateEntityID(args[0], "repo"); err != nil {
				return err
			}

			worktrees, err := wire.WorktreeService().ListWorktrees(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list worktrees: %w", err)
			}

			if len(worktrees) == 0 {
				fmt.Println("No worktrees tracked.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tBRANCH\tPATH\tMODE\tLAST ACCESSED")
			for _, wt := range worktrees {
				mode := "managed"
				if !wt.Managed {
					mode = "adopted"
				}
				if wt.RemovedAt != "" {
					mode += " (removed)"
				}
				last := wt.LastAccessed
				if last == "" {
					last = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", wt.ID, wt.Name, wt.Branch, wt.Path, mode, last)
			}
			return w.Flush()
		},
	}

	return cmd
}

func worktreeSwitchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "switch [repo-id] [identifier]",
		Short: "Switch to a worktree by name or branch",
		Long: `Resolve a worktree by name or branch, touch its last_accessed
timestamp, and remember it as the current worktree.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if err := validateEntityID(args[0], "repo"); err != nil {
				return err
			}

			wt, err := wire.WorktreeService().FindWorktree(ctx, args[0], args[1])
			if err != nil {
				return err
			}

			if err := wire.WorktreeService().TouchWorktree(ctx, wt.ID); err != nil {
				return fmt.Errorf("failed to touch worktree: %w", err)
			}

			if err := wire.SessionService().SetSession(ctx, primary.SessionKeyCurrentWorktree, wt.Name); err != nil {
				return fmt.Errorf("failed to update session: %w", err)
			}

			fmt.Println(wt.Path)
			return nil
		},
	}

	return cmd
}

func worktreeRemovedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "removed [worktree-id]",
		Short: "Record that a worktree was removed from disk",
		Long: `Mark a worktree as removed and append a "removed" event to its repo.
The worktree row is kept for history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if err := validateEntityID(args[0], "worktree"); err != nil {
				return err
			}

			wt, err := wire.WorktreeService().GetWorktree(ctx, args[0])
			if err != nil {
				return err
			}

			if err := wire.WorktreeService().MarkWorktreeRemoved(ctx, wt.ID); err != nil {
				return fmt.Errorf("failed to mark worktree removed: %w", err)
			}

			if _, err := wire.EventService().RecordEvent(ctx, primary.RecordEventRequest{
				RepoID:     wt.RepoID,
				WorktreeID: wt.ID,
				EventType:  primary.EventWorktreeRemoved,
			}); err != nil {
				return fmt.Errorf("failed to record removed event: %w", err)
			}

			fmt.Printf("✓ Worktree %s marked removed\n", wt.ID)
			return nil
		},
	}

	return cmd
}
