package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/trench/internal/adapters/sqlite"
	"github.com/example/trench/internal/ports/secondary"
)

func TestRepoRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRepoRepository(db)
	ctx := context.Background()

	record := &secondary.RepoRecord{
		ID:          "REPO-001",
		Name:        "app",
		Path:        "/repos/app",
		DefaultBase: "main",
	}

	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	retrieved, err := repo.GetByID(ctx, "REPO-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if retrieved.Name != "app" {
		t.Errorf("expected name 'app', got '%s'", retrieved.Name)
	}
	if retrieved.Path != "/repos/app" {
		t.Errorf("expected path '/repos/app', got '%s'", retrieved.Path)
	}
	if retrieved.DefaultBase != "main" {
		t.Errorf("expected default base 'main', got '%s'", retrieved.DefaultBase)
	}
	if retrieved.CreatedAt == "" {
		t.Error("expected created_at to be set")
	}
}

func TestRepoRepository_Create_DuplicatePath(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRepoRepository(db)
	ctx := context.Background()

	seedRepo(t, db, "REPO-001", "/repos/app")

	err := repo.Create(ctx, &secondary.RepoRecord{
		ID:   "REPO-002",
		Name: "other",
		Path: "/repos/app",
	})
	if !errors.Is(err, secondary.ErrDuplicatePath) {
		t.Errorf("expected ErrDuplicatePath, got %v", err)
	}

	// First registration still wins
	retrieved, err := repo.GetByPath(ctx, "/repos/app")
	if err != nil {
		t.Fatalf("GetByPath failed: %v", err)
	}
	if retrieved.ID != "REPO-001" {
		t.Errorf("expected REPO-001, got %s", retrieved.ID)
	}
}

func TestRepoRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRepoRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "REPO-999")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepoRepository_GetByPath_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRepoRepository(db)
	ctx := context.Background()

	_, err := repo.GetByPath(ctx, "/nowhere")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepoRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRepoRepository(db)
	ctx := context.Background()

	_, _ = db.Exec("INSERT INTO repos (id, name, path) VALUES ('REPO-001', 'zeta', '/repos/zeta')")
	_, _ = db.Exec("INSERT INTO repos (id, name, path) VALUES ('REPO-002', 'alpha', '/repos/alpha')")

	repos, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(repos) != 2 {
		t.Fatalf("expected 2 repos, got %d", len(repos))
	}

	// Sorted by name
	if repos[0].Name != "alpha" {
		t.Errorf("expected first repo 'alpha', got '%s'", repos[0].Name)
	}
	if repos[1].Name != "zeta" {
		t.Errorf("expected second repo 'zeta', got '%s'", repos[1].Name)
	}
}

func TestRepoRepository_GetNextID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRepoRepository(db)
	ctx := context.Background()

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "REPO-001" {
		t.Errorf("expected REPO-001, got %s", id)
	}

	seedRepo(t, db, "REPO-001", "/repos/app")

	id, err = repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "REPO-002" {
		t.Errorf("expected REPO-002, got %s", id)
	}
}
