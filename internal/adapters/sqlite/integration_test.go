package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/example/trench/internal/adapters/sqlite"
	"github.com/example/trench/internal/app"
	"github.com/example/trench/internal/ports/primary"
	"github.com/example/trench/internal/ports/secondary"
)

// services bundles the full stack wired over one database, the way wire
// assembles it in production.
type services struct {
	repos     primary.RepoService
	worktrees primary.WorktreeService
	events    primary.EventService
	logs      primary.LogService
}

func setupServices(t *testing.T, db *sql.DB) services {
	t.Helper()

	repoRepo := sqlite.NewRepoRepository(db)
	worktreeRepo := sqlite.NewWorktreeRepository(db)
	eventRepo := sqlite.NewEventRepository(db)
	logRepo := sqlite.NewLogLineRepository(db)

	return services{
		repos:     app.NewRepoService(repoRepo),
		worktrees: app.NewWorktreeService(worktreeRepo, repoRepo),
		events:    app.NewEventService(eventRepo, repoRepo, worktreeRepo),
		logs:      app.NewLogService(logRepo),
	}
}

// Register a repo, create a worktree, record a build event, capture its
// output, read it back.
func TestIntegration_CaptureCommandOutput(t *testing.T) {
	svc := setupServices(t, setupTestDB(t))
	ctx := context.Background()

	repoResp, err := svc.repos.RegisterRepo(ctx, primary.RegisterRepoRequest{
		Name: "app",
		Path: "/repos/app",
	})
	if err != nil {
		t.Fatalf("RegisterRepo failed: %v", err)
	}

	wtResp, err := svc.worktrees.CreateWorktree(ctx, primary.TrackWorktreeRequest{
		RepoID: repoResp.RepoID,
		Name:   "feature",
		Branch: "feature",
		Path:   "/repos/app/.wt/feature",
	})
	if err != nil {
		t.Fatalf("CreateWorktree failed: %v", err)
	}

	evResp, err := svc.events.RecordEvent(ctx, primary.RecordEventRequest{
		RepoID:     repoResp.RepoID,
		WorktreeID: wtResp.WorktreeID,
		EventType:  "build_started",
	})
	if err != nil {
		t.Fatalf("RecordEvent failed: %v", err)
	}

	for _, line := range []string{"compiling", "done"} {
		_, err := svc.logs.AppendLine(ctx, primary.AppendLineRequest{
			EventID: evResp.EventID,
			Stream:  primary.StreamStdout,
			Line:    line,
		})
		if err != nil {
			t.Fatalf("AppendLine %q failed: %v", line, err)
		}
	}

	lines, err := svc.logs.ReadLines(ctx, evResp.EventID, primary.StreamStdout)
	if err != nil {
		t.Fatalf("ReadLines failed: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Line != "compiling" || lines[0].LineNumber != 1 {
		t.Errorf("line 0: got %q (#%d)", lines[0].Line, lines[0].LineNumber)
	}
	if lines[1].Line != "done" || lines[1].LineNumber != 2 {
		t.Errorf("line 1: got %q (#%d)", lines[1].Line, lines[1].LineNumber)
	}
}

// A worktree of one repo cannot carry another repo's event, and the failed
// attempt leaves the log untouched.
func TestIntegration_CrossRepoEventRejected(t *testing.T) {
	svc := setupServices(t, setupTestDB(t))
	ctx := context.Background()

	r1, err := svc.repos.RegisterRepo(ctx, primary.RegisterRepoRequest{Name: "app", Path: "/repos/app"})
	if err != nil {
		t.Fatalf("RegisterRepo failed: %v", err)
	}
	r2, err := svc.repos.RegisterRepo(ctx, primary.RegisterRepoRequest{Name: "api", Path: "/repos/api"})
	if err != nil {
		t.Fatalf("RegisterRepo failed: %v", err)
	}

	wt, err := svc.worktrees.CreateWorktree(ctx, primary.TrackWorktreeRequest{
		RepoID: r1.RepoID,
		Name:   "feature",
		Branch: "feature",
		Path:   "/repos/app/.wt/feature",
	})
	if err != nil {
		t.Fatalf("CreateWorktree failed: %v", err)
	}

	_, err = svc.events.RecordEvent(ctx, primary.RecordEventRequest{
		RepoID:     r2.RepoID,
		WorktreeID: wt.WorktreeID,
		EventType:  "x",
	})
	if !errors.Is(err, secondary.ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation, got %v", err)
	}

	events, err := svc.events.ListEvents(ctx, primary.EventFilters{RepoID: r2.RepoID})
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events for %s, got %d", r2.RepoID, len(events))
	}
}

// The first registration of a path wins; the second fails and changes nothing.
func TestIntegration_DuplicateRepoPath(t *testing.T) {
	svc := setupServices(t, setupTestDB(t))
	ctx := context.Background()

	first, err := svc.repos.RegisterRepo(ctx, primary.RegisterRepoRequest{Name: "app", Path: "/repos/app"})
	if err != nil {
		t.Fatalf("RegisterRepo failed: %v", err)
	}

	_, err = svc.repos.RegisterRepo(ctx, primary.RegisterRepoRequest{Name: "app-again", Path: "/repos/app"})
	if !errors.Is(err, secondary.ErrDuplicatePath) {
		t.Fatalf("expected ErrDuplicatePath, got %v", err)
	}

	repo, err := svc.repos.GetRepoByPath(ctx, "/repos/app")
	if err != nil {
		t.Fatalf("GetRepoByPath failed: %v", err)
	}
	if repo.ID != first.RepoID {
		t.Errorf("expected %s to keep the path, got %s", first.RepoID, repo.ID)
	}
	if repo.Name != "app" {
		t.Errorf("expected original name 'app', got %q", repo.Name)
	}
}

// Line numbers stay {1..n} per (event, stream) with concurrent appenders.
func TestIntegration_ConcurrentAppendGapFree(t *testing.T) {
	db := setupFileTestDB(t)
	repo := sqlite.NewLogLineRepository(db)
	ctx := context.Background()

	seedRepo(t, db, "", "")
	seedEvent(t, db, "", 0, "")

	const writers = 8
	const linesPerWriter = 5

	var wg sync.WaitGroup
	errCh := make(chan error, writers*linesPerWriter)

	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < linesPerWriter; i++ {
				_, err := repo.Append(ctx, "EVT-0001", "stdout", fmt.Sprintf("writer %d line %d", w, i))
				if err != nil {
					errCh <- err
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Fatalf("concurrent Append failed: %v", err)
	}

	lines, err := repo.Read(ctx, "EVT-0001", "stdout")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(lines) != writers*linesPerWriter {
		t.Fatalf("expected %d lines, got %d", writers*linesPerWriter, len(lines))
	}

	numbers := make([]int, 0, len(lines))
	for _, l := range lines {
		numbers = append(numbers, l.LineNumber)
	}
	sort.Ints(numbers)
	for i, n := range numbers {
		if n != i+1 {
			t.Fatalf("line numbers not contiguous: position %d has %d", i, n)
		}
	}
}
