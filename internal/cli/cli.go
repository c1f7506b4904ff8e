// Package cli provides CLI commands for the trench application.
package cli

import "context"

// NewContext creates the context for a CLI invocation.
// Commands use this instead of context.Background() directly so request
// scoping can be added in one place later.
func NewContext() context.Context {
	return context.Background()
}
