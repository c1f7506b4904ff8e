package primary

import "context"

// EventService defines the primary port for the event log.
type EventService interface {
	// RecordEvent appends a lifecycle event. When WorktreeID is set, the
	// worktree must belong to the given repo; a mismatch fails and leaves
	// no row behind.
	RecordEvent(ctx context.Context, req RecordEventRequest) (*RecordEventResponse, error)

	// GetEvent retrieves an event by ID.
	GetEvent(ctx context.Context, eventID string) (*Event, error)

	// ListEvents lists a repo's events in creation order, optionally
	// filtered to one worktree or event type.
	ListEvents(ctx context.Context, filters EventFilters) ([]*Event, error)
}

// RecordEventRequest contains parameters for recording an event.
type RecordEventRequest struct {
	RepoID     string
	WorktreeID string // optional
	EventType  string
	Payload    string // opaque, stored verbatim
}

// RecordEventResponse contains the result of recording an event.
type RecordEventResponse struct {
	EventID string
	Event   *Event
}

// Event represents an immutable lifecycle record at the port boundary.
type Event struct {
	ID         string
	Seq        int64
	RepoID     string
	WorktreeID string
	EventType  string
	Payload    string
	CreatedAt  string
}

// EventFilters contains filter options for listing events.
type EventFilters struct {
	RepoID     string
	WorktreeID string
	EventType  string
	Limit      int
}

// Well-known event types recorded by the external git-operations
// collaborator. The store never interprets these.
const (
	EventWorktreeCreated = "created"
	EventWorktreeAdopted = "adopted"
	EventWorktreeRemoved = "removed"
	EventCommandRun      = "command_run"
)
