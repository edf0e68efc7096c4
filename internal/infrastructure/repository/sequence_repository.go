package repository

import (
	"context"

	domainRepo "github.com/lengolf/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type receiptSequenceRepository struct {
	db *gorm.DB
}

// NewReceiptSequenceRepository creates a new receipt sequence repository
func NewReceiptSequenceRepository(db *gorm.DB) domainRepo.ReceiptSequenceRepository {
	return &receiptSequenceRepository{db: db}
}

// Next bumps the named counter in a single statement. The upsert is atomic
// on the postgres side, so two concurrent settlements always observe
// distinct values.
func (r *receiptSequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Raw(
		`INSERT INTO receipt_counters (name, value, updated_at)
		 VALUES (?, 1, NOW())
		 ON CONFLICT (name) DO UPDATE
		 SET value = receipt_counters.value + 1, updated_at = NOW()
		 RETURNING value`,
		name,
	).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}
