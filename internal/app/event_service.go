package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/trench/internal/core/event"
	"github.com/example/trench/internal/ports/primary"
	"github.com/example/trench/internal/ports/secondary"
)

// EventServiceImpl implements the EventService interface.
//
// The consistency rule (a worktree-scoped event's repo must own the
// worktree) is evaluated twice: here as a pure guard on the state the
// service read, and again by the event repository inside the insert
// transaction. The second check is the one that makes the rule atomic.
type EventServiceImpl struct {
	eventRepo    secondary.EventRepository
	repoRepo     secondary.RepoRepository
	worktreeRepo secondary.WorktreeRepository
}

// NewEventService creates a new EventService with injected dependencies.
func NewEventService(eventRepo secondary.EventRepository, repoRepo secondary.RepoRepository, worktreeRepo secondary.WorktreeRepository) *EventServiceImpl {
	return &EventServiceImpl{
		eventRepo:    eventRepo,
		repoRepo:     repoRepo,
		worktreeRepo: worktreeRepo,
	}
}

// RecordEvent appends a lifecycle event.
func (s *EventServiceImpl) RecordEvent(ctx context.Context, req primary.RecordEventRequest) (*primary.RecordEventResponse, error) {
	owner, err := s.repoRepo.GetByID(ctx, req.RepoID)
	if err != nil && !errors.Is(err, secondary.ErrNotFound) {
		return nil, fmt.Errorf("failed to check repo existence: %w", err)
	}

	guardCtx := event.RecordEventContext{
		RepoExists: owner != nil,
		RepoID:     req.RepoID,
		EventType:  req.EventType,
		WorktreeID: req.WorktreeID,
	}

	if req.WorktreeID != "" {
		wt, err := s.worktreeRepo.GetByID(ctx, req.WorktreeID)
		if err != nil && !errors.Is(err, secondary.ErrNotFound) {
			return nil, fmt.Errorf("failed to check worktree existence: %w", err)
		}
		if wt != nil {
			guardCtx.WorktreeExists = true
			guardCtx.WorktreeRepoID = wt.RepoID
		}
	}

	result := event.CanRecordEvent(guardCtx)
	if err := result.Error(); err != nil {
		if guardCtx.RepoExists && guardCtx.WorktreeExists && guardCtx.WorktreeRepoID != req.RepoID {
			return nil, fmt.Errorf("%s: %w", err, secondary.ErrInvariantViolation)
		}
		if !guardCtx.RepoExists || (req.WorktreeID != "" && !guardCtx.WorktreeExists) {
			return nil, fmt.Errorf("%s: %w", err, secondary.ErrNotFound)
		}
		return nil, err
	}

	stored, err := s.eventRepo.Record(ctx, &secondary.EventRecord{
		RepoID:     req.RepoID,
		WorktreeID: req.WorktreeID,
		EventType:  req.EventType,
		Payload:    req.Payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}

	return &primary.RecordEventResponse{
		EventID: stored.ID,
		Event:   recordToEvent(stored),
	}, nil
}

// GetEvent retrieves an event by ID.
func (s *EventServiceImpl) GetEvent(ctx context.Context, eventID string) (*primary.Event, error) {
	record, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return recordToEvent(record), nil
}

// ListEvents lists events in creation order.
func (s *EventServiceImpl) ListEvents(ctx context.Context, filters primary.EventFilters) ([]*primary.Event, error) {
	records, err := s.eventRepo.List(ctx, secondary.EventFilters{
		RepoID:     filters.RepoID,
		WorktreeID: filters.WorktreeID,
		EventType:  filters.EventType,
		Limit:      filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]*primary.Event, len(records))
	for i, e := range records {
		events[i] = recordToEvent(e)
	}
	return events, nil
}

func recordToEvent(e *secondary.EventRecord) *primary.Event {
	return &primary.Event{
		ID:         e.ID,
		Seq:        e.Seq,
		RepoID:     e.RepoID,
		WorktreeID: e.WorktreeID,
		EventType:  e.EventType,
		Payload:    e.Payload,
		CreatedAt:  e.CreatedAt,
	}
}

// Ensure EventServiceImpl implements the interface
var _ primary.EventService = (*EventServiceImpl)(nil)
