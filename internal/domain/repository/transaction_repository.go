package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lengolf/pos-api/internal/domain/entity"
	"github.com/lengolf/pos-api/internal/domain/enum"
	"github.com/lengolf/pos-api/pkg/pagination"
)

// TransactionRepository defines read access to settled transactions.
// Transactions are only ever created through LedgerRepository.Settle.
type TransactionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	// GetWithDetails loads the transaction with its payment rows (in
	// sequence order) and item snapshot, as needed for receipt rendering.
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	GetByReceiptNumber(ctx context.Context, receiptNumber string) (*entity.Transaction, error)
	GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*entity.Transaction, error)
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
}

// TransactionFilterParams contains filtering parameters for transaction queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string // matches receipt number
	Status     *enum.TransactionStatus
	StaffID    *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
