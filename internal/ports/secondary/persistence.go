// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// RepoRepository defines the secondary port for repo persistence.
type RepoRepository interface {
	// Create persists a new repo. Returns ErrDuplicatePath if the path
	// is already registered.
	Create(ctx context.Context, repo *RepoRecord) error

	// GetByID retrieves a repo by its ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*RepoRecord, error)

	// GetByPath retrieves a repo by its unique filesystem path.
	GetByPath(ctx context.Context, path string) (*RepoRecord, error)

	// List retrieves all repos ordered by name.
	List(ctx context.Context) ([]*RepoRecord, error)

	// GetNextID returns the next available repo ID.
	GetNextID(ctx context.Context) (string, error)
}

// RepoRecord represents a repo as stored in persistence.
type RepoRecord struct {
	ID          string
	Name        string
	Path        string
	DefaultBase string
	CreatedAt   string
}

// WorktreeRepository defines the secondary port for worktree persistence.
type WorktreeRepository interface {
	// Create persists a new worktree. Returns ErrDuplicatePath if the
	// path is already used by any worktree, across all repos.
	Create(ctx context.Context, wt *WorktreeRecord) error

	// GetByID retrieves a worktree by its ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*WorktreeRecord, error)

	// FindByIdentifier resolves a worktree within a repo by name, falling
	// back to branch. Returns ErrNotFound if neither matches.
	FindByIdentifier(ctx context.Context, repoID, identifier string) (*WorktreeRecord, error)

	// List retrieves all worktrees belonging to a repo, oldest first.
	List(ctx context.Context, repoID string) ([]*WorktreeRecord, error)

	// Touch sets last_accessed to now. Returns ErrNotFound if absent.
	Touch(ctx context.Context, id string) error

	// MarkRemoved sets removed_at to now. The row is never deleted.
	MarkRemoved(ctx context.Context, id string) error

	// GetNextID returns the next available worktree ID.
	GetNextID(ctx context.Context) (string, error)
}

// WorktreeRecord represents a worktree as stored in persistence.
type WorktreeRecord struct {
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

// EventRepository defines the secondary port for event persistence.
// Events are append-only: no update or delete exists.
type EventRepository interface {
	// Record inserts a new event and returns it. When WorktreeID is set,
	// the insert and the repo/worktree membership check happen in one
	// transaction; a mismatch returns ErrInvariantViolation and leaves
	// no row behind.
	Record(ctx context.Context, event *EventRecord) (*EventRecord, error)

	// GetByID retrieves an event by its ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*EventRecord, error)

	// List retrieves events for a repo in creation order, optionally
	// filtered to one worktree.
	List(ctx context.Context, filters EventFilters) ([]*EventRecord, error)
}

// EventRecord represents an event as stored in persistence.
type EventRecord struct {
	ID         string
	Seq        int64
	RepoID     string
	WorktreeID string
	EventType  string
	Payload    string
	CreatedAt  string
}

// EventFilters contains filter options for querying events.
type EventFilters struct {
	RepoID     string
	WorktreeID string
	EventType  string
	Limit      int
}

// LogLineRepository defines the secondary port for log line persistence.
// Log lines are append-only and numbered per (event, stream).
type LogLineRepository interface {
	// Append inserts the next line for (event, stream), allocating
	// line_number atomically with the insert. Returns ErrNotFound if the
	// event does not exist.
	Append(ctx context.Context, eventID, stream, line string) (*LogLineRecord, error)

	// Read retrieves lines for an event ordered by line_number, optionally
	// filtered to one stream. A missing or silent event yields an empty
	// slice, not an error.
	Read(ctx context.Context, eventID, stream string) ([]*LogLineRecord, error)

	// PruneOlderThan deletes lines older than the given number of days
	// and returns the count removed. No automatic policy calls this.
	PruneOlderThan(ctx context.Context, days int) (int, error)
}

// LogLineRecord represents a captured output line as stored in persistence.
type LogLineRecord struct {
	ID         string
	EventID    string
	Stream     string
	Line       string
	LineNumber int
	CreatedAt  string
}

// TagRepository defines the secondary port for tag persistence.
type TagRepository interface {
	// Create persists a new tag. Returns ErrDuplicateTag if the
	// (worktree, name) pair already exists.
	Create(ctx context.Context, tag *TagRecord) error

	// ListNames retrieves the tag names on a worktree, sorted.
	ListNames(ctx context.Context, worktreeID string) ([]string, error)

	// Delete removes a tag by (worktree, name). Returns ErrNotFound if
	// the pair does not exist.
	Delete(ctx context.Context, worktreeID, name string) error

	// GetNextID returns the next available tag ID.
	GetNextID(ctx context.Context) (string, error)
}

// TagRecord represents a tag as stored in persistence.
type TagRecord struct {
	ID         string
	WorktreeID string
	Name       string
	CreatedAt  string
}

// SessionRepository defines the secondary port for session key-value state.
type SessionRepository interface {
	// Set upserts a key: created if absent, otherwise value and
	// updated_at are replaced wholesale.
	Set(ctx context.Context, key, value string) error

	// Get retrieves the current value for a key. Returns ErrNotFound if
	// the key was never set.
	Get(ctx context.Context, key string) (*SessionRecord, error)
}

// SessionRecord represents one session key-value pair.
type SessionRecord struct {
	Key       string
	Value     string
	UpdatedAt string
}
