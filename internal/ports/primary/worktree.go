package primary

import "context"

// WorktreeService defines the primary port for worktree tracking operations.
type WorktreeService interface {
	// CreateWorktree tracks a store-created (managed) worktree.
	CreateWorktree(ctx context.Context, req TrackWorktreeRequest) (*TrackWorktreeResponse, error)

	// AdoptWorktree begins tracking a pre-existing worktree.
	AdoptWorktree(ctx context.Context, req TrackWorktreeRequest) (*TrackWorktreeResponse, error)

	// GetWorktree retrieves a worktree by ID.
	GetWorktree(ctx context.Context, worktreeID string) (*Worktree, error)

	// FindWorktree resolves a worktree within a repo by name or branch.
	FindWorktree(ctx context.Context, repoID, identifier string) (*Worktree, error)

	// ListWorktrees lists all worktrees belonging to a repo.
	ListWorktrees(ctx context.Context, repoID string) ([]*Worktree, error)

	// TouchWorktree updates last_accessed to now.
	TouchWorktree(ctx context.Context, worktreeID string) error

	// MarkWorktreeRemoved records that an external component removed the
	// worktree from disk. The row is kept with removed_at set.
	MarkWorktreeRemoved(ctx context.Context, worktreeID string) error
}

// TrackWorktreeRequest contains parameters for creating or adopting a worktree.
type TrackWorktreeRequest struct {
	RepoID     string
	Name       string
	Branch     string
	Path       string
	BaseBranch string
}

// TrackWorktreeResponse contains the result of tracking a worktree.
type TrackWorktreeResponse struct {
	WorktreeID string
	Worktree   *Worktree
}

// Worktree represents a worktree entity at the port boundary.
type Worktree struct {
	ID           string
	RepoID       string
	Name         string
	Branch       string
	Path         string
	BaseBranch   string
	Managed      bool
	AdoptedAt    string
	LastAccessed string
	RemovedAt    string
	CreatedAt    string
}
