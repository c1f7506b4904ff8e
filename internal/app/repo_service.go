// Package app contains the service implementations behind the primary ports.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/trench/internal/core/repo"
	"github.com/example/trench/internal/ports/primary"
	"github.com/example/trench/internal/ports/secondary"
)

// RepoServiceImpl implements the RepoService interface.
type RepoServiceImpl struct {
	repoRepo secondary.RepoRepository
}

// NewRepoService creates a new RepoService with injected dependencies.
func NewRepoService(repoRepo secondary.RepoRepository) *RepoServiceImpl {
	return &RepoServiceImpl{
		repoRepo: repoRepo,
	}
}

// RegisterRepo registers a new repo by path.
func (s *RepoServiceImpl) RegisterRepo(ctx context.Context, req primary.RegisterRepoRequest) (*primary.RegisterRepoResponse, error) {
	// Check if the path is already registered
	existing, err := s.repoRepo.GetByPath(ctx, req.Path)
	if err != nil && !errors.Is(err, secondary.ErrNotFound) {
		return nil, fmt.Errorf("failed to check path uniqueness: %w", err)
	}

	// Evaluate guard
	result := repo.CanRegisterRepo(repo.RegisterRepoContext{
		Name:       req.Name,
		Path:       req.Path,
		PathExists: existing != nil,
	})
	if err := result.Error(); err != nil {
		if existing != nil {
			return nil, fmt.Errorf("%s: %w", err, secondary.ErrDuplicatePath)
		}
		return nil, err
	}

	// Get next ID
	nextID, err := s.repoRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate repo ID: %w", err)
	}

	record := &secondary.RepoRecord{
		ID:          nextID,
		Name:        req.Name,
		Path:        req.Path,
		DefaultBase: req.DefaultBase,
	}

	if err := s.repoRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to register repo: %w", err)
	}

	// Fetch created repo
	created, err := s.repoRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registered repo: %w", err)
	}

	return &primary.RegisterRepoResponse{
		RepoID: created.ID,
		Repo:   recordToRepo(created),
	}, nil
}

// GetRepo retrieves a repo by ID.
func (s *RepoServiceImpl) GetRepo(ctx context.Context, repoID string) (*primary.Repo, error) {
	record, err := s.repoRepo.GetByID(ctx, repoID)
	if err != nil {
		return nil, err
	}
	return recordToRepo(record), nil
}

// GetRepoByPath retrieves a repo by its unique filesystem path.
func (s *RepoServiceImpl) GetRepoByPath(ctx context.Context, path string) (*primary.Repo, error) {
	record, err := s.repoRepo.GetByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	return recordToRepo(record), nil
}

// ListRepos lists all registered repos.
func (s *RepoServiceImpl) ListRepos(ctx context.Context) ([]*primary.Repo, error) {
	records, err := s.repoRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list repos: %w", err)
	}

	repos := make([]*primary.Repo, len(records))
	for i, r := range records {
		repos[i] = recordToRepo(r)
	}
	return repos, nil
}

func recordToRepo(r *secondary.RepoRecord) *primary.Repo {
	return &primary.Repo{
		ID:          r.ID,
		Name:        r.Name,
		Path:        r.Path,
		DefaultBase: r.DefaultBase,
		CreatedAt:   r.CreatedAt,
	}
}

// Ensure RepoServiceImpl implements the interface
var _ primary.RepoService = (*RepoServiceImpl)(nil)
