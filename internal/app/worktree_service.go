package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/trench/internal/core/worktree"
	"github.com/example/trench/internal/ports/primary"
	"github.com/example/trench/internal/ports/secondary"
)

// WorktreeServiceImpl implements the WorktreeService interface.
type WorktreeServiceImpl struct {
	worktreeRepo secondary.WorktreeRepository
	repoRepo     secondary.RepoRepository
}

// NewWorktreeService creates a new WorktreeService with injected dependencies.
func NewWorktreeService(worktreeRepo secondary.WorktreeRepository, repoRepo secondary.RepoRepository) *WorktreeServiceImpl {
	return &WorktreeServiceImpl{
		worktreeRepo: worktreeRepo,
		repoRepo:     repoRepo,
	}
}

// CreateWorktree tracks a store-created (managed) worktree.
func (s *WorktreeServiceImpl) CreateWorktree(ctx context.Context, req primary.TrackWorktreeRequest) (*primary.TrackWorktreeResponse, error) {
	return s.track(ctx, req, true)
}

// AdoptWorktree begins tracking a pre-existing worktree.
func (s *WorktreeServiceImpl) AdoptWorktree(ctx context.Context, req primary.TrackWorktreeRequest) (*primary.TrackWorktreeResponse, error) {
	return s.track(ctx, req, false)
}

func (s *WorktreeServiceImpl) track(ctx context.Context, req primary.TrackWorktreeRequest, managed bool) (*primary.TrackWorktreeResponse, error) {
	// Verify owning repo exists
	owner, err := s.repoRepo.GetByID(ctx, req.RepoID)
	if err != nil && !errors.Is(err, secondary.ErrNotFound) {
		return nil, fmt.Errorf("failed to check repo existence: %w", err)
	}

	// Evaluate guard
	result := worktree.CanTrackWorktree(worktree.TrackWorktreeContext{
		RepoExists: owner != nil,
		RepoID:     req.RepoID,
		Name:       req.Name,
		Branch:     req.Branch,
		Path:       req.Path,
	})
	if err := result.Error(); err != nil {
		if owner == nil {
			return nil, fmt.Errorf("%s: %w", err, secondary.ErrNotFound)
		}
		return nil, err
	}

	// Default the base branch from the repo's default_base
	baseBranch := req.BaseBranch
	if baseBranch == "" {
		baseBranch = owner.DefaultBase
	}

	// Get next ID
	nextID, err := s.worktreeRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate worktree ID: %w", err)
	}

	record := &secondary.WorktreeRecord{
		ID:         nextID,
		RepoID:     req.RepoID,
		Name:       req.Name,
		Branch:     req.Branch,
		Path:       req.Path,
		BaseBranch: baseBranch,
		Managed:    managed,
	}

	if err := s.worktreeRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to track worktree: %w", err)
	}

	// Fetch created worktree
	created, err := s.worktreeRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tracked worktree: %w", err)
	}

	return &primary.TrackWorktreeResponse{
		WorktreeID: created.ID,
		Worktree:   recordToWorktree(created),
	}, nil
}

// GetWorktree retrieves a worktree by ID.
func (s *WorktreeServiceImpl) GetWorktree(ctx context.Context, worktreeID string) (*primary.Worktree, error) {
	record, err := s.worktreeRepo.GetByID(ctx, worktreeID)
	if err != nil {
		return nil, err
	}
	return recordToWorktree(record), nil
}

// FindWorktree resolves a worktree within a repo by name or branch.
func (s *WorktreeServiceImpl) FindWorktree(ctx context.Context, repoID, identifier string) (*primary.Worktree, error) {
	record, err := s.worktreeRepo.FindByIdentifier(ctx, repoID, identifier)
	if err != nil {
		return nil, err
	}
	return recordToWorktree(record), nil
}

// ListWorktrees lists all worktrees belonging to a repo.
func (s *WorktreeServiceImpl) ListWorktrees(ctx context.Context, repoID string) ([]*primary.Worktree, error) {
	records, err := s.worktreeRepo.List(ctx, repoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %w", err)
	}

	worktrees := make([]*primary.Worktree, len(records))
	for i, w := range records {
		worktrees[i] = recordToWorktree(w)
	}
	return worktrees, nil
}

// TouchWorktree updates last_accessed to now.
func (s *WorktreeServiceImpl) TouchWorktree(ctx context.Context, worktreeID string) error {
	return s.worktreeRepo.Touch(ctx, worktreeID)
}

// MarkWorktreeRemoved records that the worktree was removed from disk.
func (s *WorktreeServiceImpl) MarkWorktreeRemoved(ctx context.Context, worktreeID string) error {
	return s.worktreeRepo.MarkRemoved(ctx, worktreeID)
}

func recordToWorktree(w *secondary.WorktreeRecord) *primary.Worktree {
	return &primary.Worktree{
		ID:           w.ID,
		RepoID:       w.RepoID,
		Name:         w.Name,
		Branch:       w.Branch,
		Path:         w.Path,
		BaseBranch:   w.BaseBranch,
		Managed:      w.Managed,
		AdoptedAt:    w.AdoptedAt,
		LastAccessed: w.LastAccessed,
		RemovedAt:    w.RemovedAt,
		CreatedAt:    w.CreatedAt,
	}
}

// Ensure WorktreeServiceImpl implements the interface
var _ primary.WorktreeService = (*WorktreeServiceImpl)(nil)
