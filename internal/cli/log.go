package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/trench/internal/ports/primary"
	"github.com/example/trench/internal/wire"
)

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Append and read captured output lines",
		Long: `Store ordered output lines against an event. Line numbers are assigned
per (event, stream), start at 1, and never have gaps - the process layer
calls 'append' once per captured line.`,
	}

	cmd.AddCommand(logAppendCmd())
	cmd.AddCommand(logShowCmd())

	return cmd
}

func logAppendCmd() *cobra.Command {
	var stream string
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "append [event-id] [line]",
		Short: "Append output lines to an event's stream",
		Long: `Append one line, or with --stdin one line per input line.

Examples:
  trench log append EVT-0001 "compiling"
  make 2>&1 | trench log append EVT-0001 --stdin`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if err := validateEntityID(args[0], "event"); err != nil {
				return err
			}

			if fromStdin {
				scanner := bufio.NewScanner(os.Stdin)
				for scanner.Scan() {
					_, err := wire.LogService().AppendLine(ctx, primary.AppendLineRequest{
						EventID: args[0],
						Stream:  stream,
						Line:    scanner.Text(),
					})
					if err != nil {
						return fmt.Errorf("failed to append line: %w", err)
					}
				}
				return scanner.Err()
			}

			if len(args) < 2 {
				return fmt.Errorf("provide a line or --stdin")
			}

			line, err := wire.LogService().AppendLine(ctx, primary.AppendLineRequest{
				EventID: args[0],
				Stream:  stream,
				Line:    args[1],
			})
			if err != nil {
				return fmt.Errorf("failed to append line: %w", err)
			}

			fmt.Printf("✓ %s %s:%d\n", line.EventID, line.Stream, line.LineNumber)
			return nil
		},
	}

	cmd.Flags().StringVarP(&stream, "stream", "s", primary.StreamStdout, "Stream name (stdout, stderr, ...)")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read lines from standard input")

	return cmd
}

func logShowCmd() *cobra.Command {
	var stream string

	cmd := &cobra.Command{
		Use:   "show [event-id]",
		Short: "Print an event's captured output in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if err := validateEntityID(args[0], "event"); err != nil {
				return err
			}

			lines, err := wire.LogService().ReadLines(ctx, args[0], stream)
			if err != nil {
				return fmt.Errorf("failed to read log lines: %w", err)
			}

			for _, l := range lines {
				if stream == "" {
					fmt.Printf("[%s %4d] %s\n", l.Stream, l.LineNumber, l.Line)
				} else {
					fmt.Println(l.Line)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&stream, "stream", "s", "", "Filter to one stream")

	return cmd
}
