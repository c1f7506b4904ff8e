package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/trench/internal/core/tag"
	"github.com/example/trench/internal/ports/primary"
	"github.com/example/trench/internal/ports/secondary"
)

// TagServiceImpl implements the TagService interface.
type TagServiceImpl struct {
	tagRepo      secondary.TagRepository
	worktreeRepo secondary.WorktreeRepository
}

// NewTagService creates a new TagService with injected dependencies.
func NewTagService(tagRepo secondary.TagRepository, worktreeRepo secondary.WorktreeRepository) *TagServiceImpl {
	return &TagServiceImpl{
		tagRepo:      tagRepo,
		worktreeRepo: worktreeRepo,
	}
}

// AddTag attaches a label to a worktree.
func (s *TagServiceImpl) AddTag(ctx context.Context, worktreeID, name string) (*primary.Tag, error) {
	wt, err := s.worktreeRepo.GetByID(ctx, worktreeID)
	if err != nil && !errors.Is(err, secondary.ErrNotFound) {
		return nil, fmt.Errorf("failed to check worktree existence: %w", err)
	}

	result := tag.CanAddTag(tag.AddTagContext{
		WorktreeExists: wt != nil,
		WorktreeID:     worktreeID,
		Name:           name,
	})
	if err := result.Error(); err != nil {
		if wt == nil {
			return nil, fmt.Errorf("%s: %w", err, secondary.ErrNotFound)
		}
		return nil, err
	}

	nextID, err := s.tagRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tag ID: %w", err)
	}

	record := &secondary.TagRecord{
		ID:         nextID,
		WorktreeID: worktreeID,
		Name:       name,
	}

	if err := s.tagRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to add tag: %w", err)
	}

	return &primary.Tag{
		ID:         record.ID,
		WorktreeID: record.WorktreeID,
		Name:       record.Name,
	}, nil
}

// ListTags returns the tag names on a worktree, sorted.
func (s *TagServiceImpl) ListTags(ctx context.Context, worktreeID string) ([]string, error) {
	names, err := s.tagRepo.ListNames(ctx, worktreeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return names, nil
}

// RemoveTag detaches a label from a worktree.
func (s *TagServiceImpl) RemoveTag(ctx context.Context, worktreeID, name string) error {
	return s.tagRepo.Delete(ctx, worktreeID, name)
}

// Ensure TagServiceImpl implements the interface
var _ primary.TagService = (*TagServiceImpl)(nil)
