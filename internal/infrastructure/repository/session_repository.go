package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lengolf/pos-api/internal/domain/entity"
	domainRepo "github.com/lengolf/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) domainRepo.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TableSession, error) {
	var session entity.TableSession
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}
