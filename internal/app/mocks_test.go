package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/trench/internal/ports/secondary"
)

// Map-backed mocks of the secondary repositories for service tests.

type mockRepoRepository struct {
	repos map[string]*secondary.RepoRecord
}

func newMockRepoRepository() *mockRepoRepository {
	return &mockRepoRepository{
		repos: make(map[string]*secondary.RepoRecord),
	}
}

func (m *mockRepoRepository) Create(ctx context.Context, repo *secondary.RepoRecord) error {
	for _, r := range m.repos {
		if r.Path == repo.Path {
			return secondary.ErrDuplicatePath
		}
	}
	stored := *repo
	if stored.CreatedAt == "" {
		stored.CreatedAt = "2026-01-01T00:00:00Z"
	}
	m.repos[repo.ID] = &stored
	return nil
}

func (m *mockRepoRepository) GetByID(ctx context.Context, id string) (*secondary.RepoRecord, error) {
	repo, ok := m.repos[id]
	if !ok {
		return nil, fmt.Errorf("repo %s: %w", id, secondary.ErrNotFound)
	}
	return repo, nil
}

func (m *mockRepoRepository) GetByPath(ctx context.Context, path string) (*secondary.RepoRecord, error) {
	for _, r := range m.repos {
		if r.Path == path {
			return r, nil
		}
	}
	return nil, fmt.Errorf("repo at %s: %w", path, secondary.ErrNotFound)
}

func (m *mockRepoRepository) List(ctx context.Context) ([]*secondary.RepoRecord, error) {
	var repos []*secondary.RepoRecord
	for _, r := range m.repos {
		repos = append(repos, r)
	}
	sort.Slice(repos, func(i, j int) bool { return repos[i].Name < repos[j].Name })
	return repos, nil
}

func (m *mockRepoRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("REPO-%03d", len(m.repos)+1), nil
}

type mockWorktreeRepository struct {
	worktrees map[string]*secondary.WorktreeRecord
}

func newMockWorktreeRepository() *mockWorktreeRepository {
	return &mockWorktreeRepository{
		worktrees: make(map[string]*secondary.WorktreeRecord),
	}
}

func (m *mockWorktreeRepository) Create(ctx context.Context, wt *secondary.WorktreeRecord) error {
	for _, w := range m.worktrees {
		if w.Path == wt.Path {
			return secondary.ErrDuplicatePath
		}
	}
	stored := *wt
	if stored.CreatedAt == "" {
		stored.CreatedAt = "2026-01-01T00:00:00Z"
	}
	if !stored.Managed && stored.AdoptedAt == "" {
		stored.AdoptedAt = "2026-01-01T00:00:00Z"
	}
	m.worktrees[wt.ID] = &stored
	return nil
}

func (m *mockWorktreeRepository) GetByID(ctx context.Context, id string) (*secondary.WorktreeRecord, error) {
	wt, ok := m.worktrees[id]
	if !ok {
		return nil, fmt.Errorf("worktree %s: %w", id, secondary.ErrNotFound)
	}
	return wt, nil
}

func (m *mockWorktreeRepository) FindByIdentifier(ctx context.Context, repoID, identifier string) (*secondary.WorktreeRecord, error) {
	for _, w := range m.worktrees {
		if w.RepoID == repoID && w.Name == identifier {
			return w, nil
		}
	}
	for _, w := range m.worktrees {
		if w.RepoID == repoID && w.Branch == identifier {
			return w, nil
		}
	}
	return nil, fmt.Errorf("worktree %s: %w", identifier, secondary.ErrNotFound)
}

func (m *mockWorktreeRepository) List(ctx context.Context, repoID string) ([]*secondary.WorktreeRecord, error) {
	var worktrees []*secondary.WorktreeRecord
	for _, w := range m.worktrees {
		if w.RepoID == repoID {
			worktrees = append(worktrees, w)
		}
	}
	sort.Slice(worktrees, func(i, j int) bool { return worktrees[i].ID < worktrees[j].ID })
	return worktrees, nil
}

func (m *mockWorktreeRepository) Touch(ctx context.Context, id string) error {
	wt, ok := m.worktrees[id]
	if !ok {
		return fmt.Errorf("worktree %s: %w", id, secondary.ErrNotFound)
	}
	wt.LastAccessed = "2026-01-02T00:00:00Z"
	return nil
}

func (m *mockWorktreeRepository) MarkRemoved(ctx context.Context, id string) error {
	wt, ok := m.worktrees[id]
	if !ok {
		return fmt.Errorf("worktree %s: %w", id, secondary.ErrNotFound)
	}
	wt.RemovedAt = "2026-01-02T00:00:00Z"
	return nil
}

func (m *mockWorktreeRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("WT-%03d", len(m.worktrees)+1), nil
}

type mockEventRepository struct {
	events []*secondary.EventRecord
}

func newMockEventRepository() *mockEventRepository {
	return &mockEventRepository{}
}

func (m *mockEventRepository) Record(ctx context.Context, event *secondary.EventRecord) (*secondary.EventRecord, error) {
	stored := *event
	stored.Seq = int64(len(m.events) + 1)
	stored.ID = fmt.Sprintf("EVT-%04d", stored.Seq)
	stored.CreatedAt = "2026-01-01T00:00:00Z"
	m.events = append(m.events, &stored)
	return &stored, nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*secondary.EventRecord, error) {
	for _, e := range m.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("event %s: %w", id, secondary.ErrNotFound)
}

func (m *mockEventRepository) List(ctx context.Context, filters secondary.EventFilters) ([]*secondary.EventRecord, error) {
	var events []*secondary.EventRecord
	for _, e := range m.events {
		if filters.RepoID != "" && e.RepoID != filters.RepoID {
			continue
		}
		if filters.WorktreeID != "" && e.WorktreeID != filters.WorktreeID {
			continue
		}
		if filters.EventType != "" && e.EventType != filters.EventType {
			continue
		}
		events = append(events, e)
		if filters.Limit > 0 && len(events) == filters.Limit {
			break
		}
	}
	return events, nil
}

type mockLogLineRepository struct {
	lines []*secondary.LogLineRecord
}

func newMockLogLineRepository() *mockLogLineRepository {
	return &mockLogLineRepository{}
}

func (m *mockLogLineRepository) Append(ctx context.Context, eventID, stream, line string) (*secondary.LogLineRecord, error) {
	next := 1
	for _, l := range m.lines {
		if l.EventID == eventID && l.Stream == stream {
			next++
		}
	}
	stored := &secondary.LogLineRecord{
		ID:         fmt.Sprintf("LOG-%06d", len(m.lines)+1),
		EventID:    eventID,
		Stream:     stream,
		Line:       line,
		LineNumber: next,
		CreatedAt:  "2026-01-01T00:00:00Z",
	}
	m.lines = append(m.lines, stored)
	return stored, nil
}

func (m *mockLogLineRepository) Read(ctx context.Context, eventID, stream string) ([]*secondary.LogLineRecord, error) {
	var lines []*secondary.LogLineRecord
	for _, l := range m.lines {
		if l.EventID != eventID {
			continue
		}
		if stream != "" && l.Stream != stream {
			continue
		}
		lines = append(lines, l)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Stream != lines[j].Stream {
			return lines[i].Stream < lines[j].Stream
		}
		return lines[i].LineNumber < lines[j].LineNumber
	})
	return lines, nil
}

func (m *mockLogLineRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	return 0, nil
}

type mockTagRepository struct {
	tags map[string]*secondary.TagRecord
}

func newMockTagRepository() *mockTagRepository {
	return &mockTagRepository{
		tags: make(map[string]*secondary.TagRecord),
	}
}

func (m *mockTagRepository) Create(ctx context.Context, tag *secondary.TagRecord) error {
	for _, t := range m.tags {
		if t.WorktreeID == tag.WorktreeID && t.Name == tag.Name {
			return secondary.ErrDuplicateTag
		}
	}
	stored := *tag
	m.tags[tag.ID] = &stored
	return nil
}

func (m *mockTagRepository) ListNames(ctx context.Context, worktreeID string) ([]string, error) {
	var names []string
	for _, t := range m.tags {
		if t.WorktreeID == worktreeID {
			names = append(names, t.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *mockTagRepository) Delete(ctx context.Context, worktreeID, name string) error {
	for id, t := range m.tags {
		if t.WorktreeID == worktreeID && t.Name == name {
			delete(m.tags, id)
			return nil
		}
	}
	return fmt.Errorf("tag %q: %w", name, secondary.ErrNotFound)
}

func (m *mockTagRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("TAG-%03d", len(m.tags)+1), nil
}

type mockSessionRepository struct {
	entries map[string]*secondary.SessionRecord
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{
		entries: make(map[string]*secondary.SessionRecord),
	}
}

func (m *mockSessionRepository) Set(ctx context.Context, key, value string) error {
	m.entries[key] = &secondary.SessionRecord{
		Key:       key,
		Value:     value,
		UpdatedAt: "2026-01-01T00:00:00Z",
	}
	return nil
}

func (m *mockSessionRepository) Get(ctx context.Context, key string) (*secondary.SessionRecord, error) {
	record, ok := m.entries[key]
	if !ok {
		return nil, fmt.Errorf("session key %q: %w", key, secondary.ErrNotFound)
	}
	return record, nil
}

// Compile-time interface checks for the mocks
var (
	_ secondary.RepoRepository     = (*mockRepoRepository)(nil)
	_ secondary.WorktreeRepository = (*mockWorktreeRepository)(nil)
	_ secondary.EventRepository    = (*mockEventRepository)(nil)
	_ secondary.LogLineRepository  = (*mockLogLineRepository)(nil)
	_ secondary.TagRepository      = (*mockTagRepository)(nil)
	_ secondary.SessionRepository  = (*mockSessionRepository)(nil)
)
