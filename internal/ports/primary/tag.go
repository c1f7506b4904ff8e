package primary

import "context"

// TagService defines the primary port for the tag index.
type TagService interface {
	// AddTag attaches a label to a worktree. Re-adding an existing
	// (worktree, name) pair is an error, not a silent no-op.
	AddTag(ctx context.Context, worktreeID, name string) (*Tag, error)

	// ListTags returns the tag names on a worktree, sorted.
	ListTags(ctx context.Context, worktreeID string) ([]string, error)

	// RemoveTag detaches a label from a worktree.
	RemoveTag(ctx context.Context, worktreeID, name string) error
}

// Tag represents a worktree label at the port boundary.
type Tag struct {
	ID         string
	WorktreeID string
	Name       string
	CreatedAt  string
}
