package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/trench/internal/ports/primary"
	"github.com/example/trench/internal/ports/secondary"
)

// SessionServiceImpl implements the SessionService interface.
type SessionServiceImpl struct {
	sessionRepo secondary.SessionRepository
}

// NewSessionService creates a new SessionService with injected dependencies.
func NewSessionService(sessionRepo secondary.SessionRepository) *SessionServiceImpl {
	return &SessionServiceImpl{
		sessionRepo: sessionRepo,
	}
}

// SetSession upserts a key.
func (s *SessionServiceImpl) SetSession(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("session key cannot be empty")
	}
	return s.sessionRepo.Set(ctx, key, value)
}

// GetSession returns the current value for a key.
func (s *SessionServiceImpl) GetSession(ctx context.Context, key string) (string, error) {
	record, err := s.sessionRepo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return record.Value, nil
}

// Ensure SessionServiceImpl implements the interface
var _ primary.SessionService = (*SessionServiceImpl)(nil)
