package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lengolf/pos-api/internal/domain/entity"
	"github.com/lengolf/pos-api/internal/domain/repository"
	"github.com/lengolf/pos-api/pkg/apperror"
)

// SessionService exposes read access to table sessions for the settlement
// endpoints.
type SessionService struct {
	sessionRepo repository.SessionRepository
}

// NewSessionService creates a new session service
func NewSessionService(sessionRepo repository.SessionRepository) *SessionService {
	return &SessionService{sessionRepo: sessionRepo}
}

// GetSession loads a table session by ID.
func (s *SessionService) GetSession(ctx context.Context, id uuid.UUID) (*entity.TableSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}
	return session, nil
}
