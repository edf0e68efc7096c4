package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lengolf/pos-api/internal/domain/entity"
)

// SessionRepository defines the settlement pipeline's view of table
// sessions. Session creation and order taking live elsewhere; this layer
// only reads sessions and closes them via LedgerRepository.Settle.
type SessionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TableSession, error)
}
