// Package event contains the pure business logic for the event log.
// Guards are pure functions that evaluate preconditions without side effects.
//
// CanRecordEvent is the pure half of the consistency enforcer: it evaluates
// the repo/worktree membership rule on data the service already read. The
// sqlite event repository re-checks the same rule inside the insert
// transaction, which closes the window between guard and write.
package event

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// RecordEventContext provides context for event recording guards.
type RecordEventContext struct {
	RepoExists     bool
	RepoID         string
	EventType      string
	WorktreeID     string // empty for repo-scoped events
	WorktreeExists bool
	WorktreeRepoID string
}

// CanRecordEvent evaluates whether an event can be recorded.
// Rules:
// - Repo must exist
// - Event type must not be empty
// - When a worktree is given, it must exist and belong to the repo
func CanRecordEvent(ctx RecordEventContext) GuardResult {
	if !ctx.RepoExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("repo %s not found", ctx.RepoID),
		}
	}

	if strings.TrimSpace(ctx.EventType) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "event type cannot be empty",
		}
	}

	if ctx.WorktreeID != "" {
		if !ctx.WorktreeExists {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("worktree %s not found", ctx.WorktreeID),
			}
		}
		if ctx.WorktreeRepoID != ctx.RepoID {
			return GuardResult{
				Allowed: false,
				Reason: fmt.Sprintf("worktree %s belongs to repo %s, not %s",
					ctx.WorktreeID, ctx.WorktreeRepoID, ctx.RepoID),
			}
		}
	}

	return GuardResult{Allowed: true}
}
