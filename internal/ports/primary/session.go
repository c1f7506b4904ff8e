package primary

import "context"

// SessionService defines the primary port for singleton session state.
type SessionService interface {
	// SetSession upserts a key, replacing value and updated_at wholesale.
	SetSession(ctx context.Context, key, value string) error

	// GetSession returns the current value for a key.
	GetSession(ctx context.Context, key string) (string, error)
}

// SessionKeyCurrentWorktree holds the name of the most recently
// switched-to worktree.
const SessionKeyCurrentWorktree = "current_worktree"
