package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/trench/internal/ports/primary"
	"github.com/example/trench/internal/ports/secondary"
)

// LogServiceImpl implements the LogService interface.
type LogServiceImpl struct {
	logRepo secondary.LogLineRepository
}

// NewLogService creates a new LogService with injected dependencies.
func NewLogService(logRepo secondary.LogLineRepository) *LogServiceImpl {
	return &LogServiceImpl{
		logRepo: logRepo,
	}
}

// AppendLine appends one output line to an event's stream.
func (s *LogServiceImpl) AppendLine(ctx context.Context, req primary.AppendLineRequest) (*primary.LogLine, error) {
	if strings.TrimSpace(req.Stream) == "" {
		return nil, fmt.Errorf("stream name cannot be empty")
	}

	stored, err := s.logRepo.Append(ctx, req.EventID, req.Stream, req.Line)
	if err != nil {
		return nil, fmt.Errorf("failed to append log line: %w", err)
	}

	return recordToLogLine(stored), nil
}

// ReadLines returns an event's lines ordered by line number.
func (s *LogServiceImpl) ReadLines(ctx context.Context, eventID, stream string) ([]*primary.LogLine, error) {
	records, err := s.logRepo.Read(ctx, eventID, stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read log lines: %w", err)
	}

	lines := make([]*primary.LogLine, len(records))
	for i, l := range records {
		lines[i] = recordToLogLine(l)
	}
	return lines, nil
}

func recordToLogLine(l *secondary.LogLineRecord) *primary.LogLine {
	return &primary.LogLine{
		ID:         l.ID,
		EventID:    l.EventID,
		Stream:     l.Stream,
		Line:       l.Line,
		LineNumber: l.LineNumber,
		CreatedAt:  l.CreatedAt,
	}
}

// Ensure LogServiceImpl implements the interface
var _ primary.LogService = (*LogServiceImpl)(nil)
