package secondary

import "errors"

// Error taxonomy shared by all persistence adapters. Services wrap these
// with context via fmt.Errorf("...: %w", err) so callers can classify
// failures with errors.Is across layers.
var (
	// ErrNotFound indicates a lookup of a nonexistent repo, worktree,
	// event, tag, or session key.
	ErrNotFound = errors.New("not found")

	// ErrDuplicatePath indicates a repo or worktree path collision.
	ErrDuplicatePath = errors.New("path already registered")

	// ErrDuplicateTag indicates a (worktree, name) tag collision.
	ErrDuplicateTag = errors.New("tag already exists")

	// ErrInvariantViolation indicates an event whose repo does not own
	// the referenced worktree.
	ErrInvariantViolation = errors.New("event repo does not match worktree repo")
)
