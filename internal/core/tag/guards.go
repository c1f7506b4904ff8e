// Package tag contains the pure business logic for the tag index.
// Guards are pure functions that evaluate preconditions without side effects.
package tag

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

// AddTagContext provides context for tag creation guards.
type AddTagContext struct {
	WorktreeExists bool
	WorktreeID     string
	Name           string
}

// CanAddTag evaluates whether a tag can be attached to a worktree.
// Rules:
// - Worktree must exist
// - Name must not be empty
// The (worktree, name) uniqueness rule is enforced by the store at insert
// time; a duplicate surfaces as an error to the caller, never a no-op.
func CanAddTag(ctx AddTagContext) GuardResult {
	if !ctx.WorktreeExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("worktree %s not found", ctx.WorktreeID),
		}
	}

	if strings.TrimSpace(ctx.Name) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "tag name cannot be empty",
		}
	}

	return GuardResult{Allowed: true}
}
