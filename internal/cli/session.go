package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/trench/internal/wire"
)

// SessionCmd returns the session command
func SessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Read and write session state",
		Long: `Singleton key-value state for the trench process, e.g. the current
worktree. Each key holds exactly one value; 'set' replaces it wholesale.`,
	}

	cmd.AddCommand(sessionSetCmd())
	cmd.AddCommand(sessionGetCmd())

	return cmd
}

func sessionSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set a session key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if err := wire.SessionService().SetSession(ctx, args[0], args[1]); err != nil {
				return fmt.Errorf("failed to set session key: %w", err)
			}

			fmt.Printf("✓ %s = %s\n", args[0], args[1])
			return nil
		},
	}

	return cmd
}

func sessionGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get a session key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			value, err := wire.SessionService().GetSession(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(value)
			return nil
		},
	}

	return cmd
}
