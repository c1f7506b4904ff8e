// Package wire provides dependency injection for the trench application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/trench/internal/adapters/sqlite"
	"github.com/example/trench/internal/app"
	"github.com/example/trench/internal/db"
	"github.com/example/trench/internal/ports/primary"
)

var (
	repoService     primary.RepoService
	worktreeService primary.WorktreeService
	eventService    primary.EventService
	logService      primary.LogService
	tagService      primary.TagService
	sessionService  primary.SessionService
	once            sync.Once
)

// RepoService returns the singleton RepoService instance.
func RepoService() primary.RepoService {
	once.Do(initServices)
	return repoService
}

// WorktreeService returns the singleton WorktreeService instance.
func WorktreeService() primary.WorktreeService {
	once.Do(initServices)
	return worktreeService
}

// EventService returns the singleton EventService instance.
func EventService() primary.EventService {
	once.Do(initServices)
	return eventService
}

// LogService returns the singleton LogService instance.
func LogService() primary.LogService {
	once.Do(initServices)
	return logService
}

// TagService returns the singleton TagService instance.
func TagService() primary.TagService {
	once.Do(initServices)
	return tagService
}

// SessionService returns the singleton SessionService instance.
func SessionService() primary.SessionService {
	once.Do(initServices)
	return sessionService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports)
	repoRepo := sqlite.NewRepoRepository(database)
	worktreeRepo := sqlite.NewWorktreeRepository(database)
	eventRepo := sqlite.NewEventRepository(database)
	logRepo := sqlite.NewLogLineRepository(database)
	tagRepo := sqlite.NewTagRepository(database)
	sessionRepo := sqlite.NewSessionRepository(database)

	// Create services (primary ports implementation)
	repoService = app.NewRepoService(repoRepo)
	worktreeService = app.NewWorktreeService(worktreeRepo, repoRepo)
	eventService = app.NewEventService(eventRepo, repoRepo, worktreeRepo)
	logService = app.NewLogService(logRepo)
	tagService = app.NewTagService(tagRepo, worktreeRepo)
	sessionService = app.NewSessionService(sessionRepo)
}
