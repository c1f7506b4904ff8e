package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/trench/internal/wire"
)

// tagOp is one parsed tag operation from CLI input.
type tagOp struct {
	name   string
	remove bool
}

// parseTagArgs parses raw CLI tag arguments into structured operations.
// "+name" adds, "-name" removes; anything else is an error.
func parseTagArgs(args []string) ([]tagOp, error) {
	var ops []tagOp
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "+"):
			name := strings.TrimPrefix(arg, "+")
			if name == "" {
				return nil, fmt.Errorf("tag name cannot be empty: '%s'", arg)
			}
			ops = append(ops, tagOp{name: name})
		case strings.HasPrefix(arg, "-"):
			name := strings.TrimPrefix(arg, "-")
			if name == "" {
				return nil, fmt.Errorf("tag name cannot be empty: '%s'", arg)
			}
			ops = append(ops, tagOp{name: name, remove: true})
		default:
			return nil, fmt.Errorf("invalid tag argument '%s': must start with '+' (add) or '-' (remove)", arg)
		}
	}
	return ops, nil
}

// TagCmd returns the tag command
func TagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag [worktree-id] [+name|-name ...]",
		Short: "Label worktrees",
		Long: `List or change the tags on a worktree.

Without tag arguments, lists current tags. '+name' adds a tag, '-name'
removes one. Adding a tag that already exists is an error.

Examples:
  trench tag WT-001
  trench tag WT-001 +wip +review
  trench tag WT-001 -wip`,
		// Flag parsing is off so "-name" reaches us as an argument.
		DisableFlagParsing: true,
		RunE:               runTag,
	}

	return cmd
}

func runTag(cmd *cobra.Command, args []string) error {
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return cmd.Help()
		}
	}
	if len(args) == 0 {
		return fmt.Errorf("requires at least 1 arg(s), only received 0")
	}

	ctx := NewContext()

	if err := validateEntityID(args[0], "worktree"); err != nil {
		return err
	}
	worktreeID := args[0]

	if len(args) == 1 {
		names, err := wire.TagService().ListTags(ctx, worktreeID)
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}
		if len(names) == 0 {
			fmt.Printf("No tags on worktree %s.\n", worktreeID)
			return nil
		}
		fmt.Println(strings.Join(names, ", "))
		return nil
	}

	ops, err := parseTagArgs(args[1:])
	if err != nil {
		return err
	}

	for _, op := range ops {
		if op.remove {
			err = wire.TagService().RemoveTag(ctx, worktreeID, op.name)
		} else {
			_, err = wire.TagService().AddTag(ctx, worktreeID, op.name)
		}
		if err != nil {
			return err
		}
	}

	names, err := wire.TagService().ListTags(ctx, worktreeID)
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}
	if len(names) == 0 {
		fmt.Printf("All tags removed from worktree %s.\n", worktreeID)
		return nil
	}
	fmt.Printf("Tags on %s: %s\n", worktreeID, strings.Join(names, ", "))
	return nil
}
