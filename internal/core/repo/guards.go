// Package repo contains the pure business logic for repo registry operations.
// Guards are pure functions that evaluate preconditions without side effects.
package repo

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

// RegisterRepoContext provides context for repo registration guards.
type RegisterRepoContext struct {
	Name       string
	Path       string
	PathExists bool // true if a repo with this path is already registered
}

// CanRegisterRepo evaluates whether a repo can be registered.
// Rules:
// - Name must not be empty
// - Path must not be empty
// - Path must be globally unique (re-registering is rejected, never merged)
func CanRegisterRepo(ctx RegisterRepoContext) GuardResult {
	if strings.TrimSpace(ctx.Name) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "repo name cannot be empty",
		}
	}

	if strings.TrimSpace(ctx.Path) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "repo path cannot be empty",
		}
	}

	if ctx.PathExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("repo path %q is already registered", ctx.Path),
		}
	}

	return GuardResult{Allowed: true}
}
