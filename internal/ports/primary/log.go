package primary

import "context"

// LogService defines the primary port for the log stream store.
type LogService interface {
	// AppendLine appends one output line to an event's stream, assigning
	// the next contiguous line number for that (event, stream) pair.
	AppendLine(ctx context.Context, req AppendLineRequest) (*LogLine, error)

	// ReadLines returns an event's lines ordered by line number, optionally
	// filtered to one stream. Reads are stateless and restartable.
	ReadLines(ctx context.Context, eventID, stream string) ([]*LogLine, error)
}

// AppendLineRequest contains parameters for appending a log line.
type AppendLineRequest struct {
	EventID string
	Stream  string
	Line    string
}

// LogLine represents one captured output line at the port boundary.
type LogLine struct {
	ID         string
	EventID    string
	Stream     string
	Line       string
	LineNumber int
	CreatedAt  string
}

// Stream name constants used by the process-execution collaborator.
const (
	StreamStdout = "stdout"
	StreamStderr = "stderr"
)
