// Package worktree contains the pure business logic for worktree tracking.
// Guards are pure functions that evaluate preconditions without side effects.
package worktree

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

// TrackWorktreeContext provides context for create and adopt guards.
type TrackWorktreeContext struct {
	RepoExists bool
	RepoID     string
	Name       string
	Branch     string
	Path       string
}

// CanTrackWorktree evaluates whether a worktree can be created or adopted.
// Rules:
// - Owning repo must exist
// - Name, branch, and path must not be empty
// Path uniqueness is enforced by the store at insert time, across all repos.
func CanTrackWorktree(ctx TrackWorktreeContext) GuardResult {
	if !ctx.RepoExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("repo %s not found", ctx.RepoID),
		}
	}

	if strings.TrimSpace(ctx.Name) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "worktree name cannot be empty",
		}
	}

	if strings.TrimSpace(ctx.Branch) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "worktree branch cannot be empty",
		}
	}

	if strings.TrimSpace(ctx.Path) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "worktree path cannot be empty",
		}
	}

	return GuardResult{Allowed: true}
}
