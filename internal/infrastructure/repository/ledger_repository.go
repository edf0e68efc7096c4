package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lengolf/pos-api/internal/domain/entity"
	"github.com/lengolf/pos-api/internal/domain/enum"
	domainRepo "github.com/lengolf/pos-api/internal/domain/repository"
	"github.com/lengolf/pos-api/pkg/apperror"
	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *gorm.DB) domainRepo.LedgerRepository {
	return &ledgerRepository{db: db}
}

// Settle records the transaction header, its payment rows and item snapshot,
// and closes the originating session, all inside one database transaction.
// The unique index on transactions.table_session_id plus the conditional
// session update mean a concurrent double-submission loses cleanly with a
// conflict instead of producing two settlements against one session.
func (r *ledgerRepository) Settle(ctx context.Context, txn *entity.Transaction, payments []entity.TransactionPayment, items []entity.TransactionItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(txn).Error; err != nil {
			if isUniqueViolation(err) {
				return apperror.NewConflictError("Session already has a settlement recorded")
			}
			return fmt.Errorf("create transaction: %w", err)
		}

		for i := range payments {
			payments[i].TransactionID = txn.ID
		}
		if len(payments) > 0 {
			if err := tx.Create(&payments).Error; err != nil {
				return apperror.NewPartialLedgerWriteError(fmt.Errorf("create payment rows: %w", err))
			}
		}

		for i := range items {
			items[i].TransactionID = txn.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return apperror.NewPartialLedgerWriteError(fmt.Errorf("create item snapshot: %w", err))
			}
		}

		now := time.Now()
		result := tx.Model(&entity.TableSession{}).
			Where("id = ? AND status = ?", txn.TableSessionID, enum.SessionStatusOpen).
			Updates(map[string]interface{}{
				"status":              enum.SessionStatusPaid,
				"total_amount":        txn.TotalAmount,
				"current_order_items": "[]",
				"closed_at":           now,
				"updated_at":          now,
			})
		if result.Error != nil {
			return apperror.NewPartialLedgerWriteError(fmt.Errorf("close session: %w", result.Error))
		}
		if result.RowsAffected == 0 {
			return apperror.NewConflictError("Session is not open")
		}

		return nil
	})
}

// isUniqueViolation reports whether err is a postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
