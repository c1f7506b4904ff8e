package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/trench/internal/ports/primary"
	"github.com/example/trench/internal/wire"
)

// EventCmd returns the event command
func EventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Record and inspect lifecycle events",
		Long: `Append immutable lifecycle events to a repo, optionally scoped to one
of its worktrees. Events are never updated or deleted.`,
	}

	cmd.AddCommand(eventRecordCmd())
	cmd.AddCommand(eventListCmd())

	return cmd
}

func eventRecordCmd() *cobra.Command {
	var worktreeID, payload string

	cmd := &cobra.Command{
		Use:   "record [repo-id] [event-type]",
		Short: "Record a lifecycle event",
		Long: `Record an event against a repo. With --worktree, the worktree must
belong to that repo; the store rejects mismatches without writing a row.

The payload is opaque to trench and stored verbatim.

Examples:
  trench event record REPO-001 build_started --worktree WT-002
  trench event record REPO-001 command_run --worktree WT-002 --payload '{"cmd":"make"}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if err := validateEntityID(args[0], "repo"); err != nil {
				return err
			}
			if err := validateEntityID(worktreeID, "worktree"); err != nil {
				return err
			}

			resp, err := wire.EventService().RecordEvent(ctx, primary.RecordEventRequest{
				RepoID:     args[0],
				WorktreeID: worktreeID,
				EventType:  args[1],
				Payload:    payload,
			})
			if err != nil {
				return fmt.Errorf("failed to record event: %w", err)
			}

			fmt.Printf("✓ Recorded event %s: %s\n", resp.EventID, resp.Event.EventType)
			return nil
		},
	}

	cmd.Flags().StringVarP(&worktreeID, "worktree", "w", "", "Worktree the event is scoped to")
	cmd.Flags().StringVarP(&payload, "payload", "p", "", "Opaque payload stored verbatim")

	return cmd
}

func eventListCmd() *cobra.Command {
	var worktreeID, eventType string
	var limit int

	cmd := &cobra.Command{
		Use:   "list [repo-id]",
		Short: "List a repo's events in creation order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if err := validateEntityID(args[0], "repo"); err != nil {
				return err
			}
			if err := validateEntityID(worktreeID, "worktree"); err != nil {
				return err
			}

			events, err := wire.EventService().ListEvents(ctx, primary.EventFilters{
				RepoID:     args[0],
				WorktreeID: worktreeID,
				EventType:  eventType,
				Limit:      limit,
			})
			if err != nil {
				return fmt.Errorf("failed to list events: %w", err)
			}

			if len(events) == 0 {
				fmt.Println("No events recorded.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tWORKTREE\tCREATED")
			for _, e := range events {
				wt := e.WorktreeID
				if wt == "" {
					wt = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.EventType, wt, e.CreatedAt)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&worktreeID, "worktree", "w", "", "Filter to one worktree")
	cmd.Flags().StringVarP(&eventType, "type", "t", "", "Filter by event type")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit the number of events")

	return cmd
}
