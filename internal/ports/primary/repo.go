package primary

import "context"

// RepoService defines the primary port for repo registry operations.
type RepoService interface {
	// RegisterRepo registers a new repo by path.
	RegisterRepo(ctx context.Context, req RegisterRepoRequest) (*RegisterRepoResponse, error)

	// GetRepo retrieves a repo by ID.
	GetRepo(ctx context.Context, repoID string) (*Repo, error)

	// GetRepoByPath retrieves a repo by its unique filesystem path.
	GetRepoByPath(ctx context.Context, path string) (*Repo, error)

	// ListRepos lists all registered repos.
	ListRepos(ctx context.Context) ([]*Repo, error)
}

// RegisterRepoRequest contains parameters for registering a repo.
type RegisterRepoRequest struct {
	Name        string
	Path        string
	DefaultBase string
}

// RegisterRepoResponse contains the result of registering a repo.
type RegisterRepoResponse struct {
	RepoID string
	Repo   *Repo
}

// Repo represents a repo entity at the port boundary.
type Repo struct {
	ID          string
	Name        string
	Path        string
	DefaultBase string
	CreatedAt   string
}
