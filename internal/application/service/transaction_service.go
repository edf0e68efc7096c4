package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lengolf/pos-api/internal/domain/entity"
	"github.com/lengolf/pos-api/internal/domain/enum"
	"github.com/lengolf/pos-api/internal/domain/repository"
	"github.com/lengolf/pos-api/pkg/apperror"
	"github.com/lengolf/pos-api/pkg/pagination"
)

// TransactionService exposes read access to the settlement ledger for
// history views and reprints.
type TransactionService struct {
	txnRepo repository.TransactionRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(txnRepo repository.TransactionRepository) *TransactionService {
	return &TransactionService{txnRepo: txnRepo}
}

// ListTransactionsInput contains filters for listing transactions.
type ListTransactionsInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.TransactionStatus
	StaffID    *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// ListTransactions returns a paginated page of settled transactions.
func (s *TransactionService) ListTransactions(ctx context.Context, input *ListTransactionsInput) (*pagination.PaginatedResult[entity.Transaction], error) {
	params := input.Pagination
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	txns, total, err := s.txnRepo.List(ctx, &repository.TransactionFilterParams{
		Pagination: params,
		Search:     input.Search,
		Status:     input.Status,
		StaffID:    input.StaffID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	})
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(txns, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// GetTransaction loads a transaction with its payments and item snapshot.
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	txn, err := s.txnRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return txn, nil
}

// GetByReceiptNumber looks a transaction up by its printed receipt number.
func (s *TransactionService) GetByReceiptNumber(ctx context.Context, receiptNumber string) (*entity.Transaction, error) {
	txn, err := s.txnRepo.GetByReceiptNumber(ctx, receiptNumber)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return txn, nil
}

// GetBySession returns the settlement recorded for a table session, if any.
func (s *TransactionService) GetBySession(ctx context.Context, sessionID uuid.UUID) (*entity.Transaction, error) {
	txn, err := s.txnRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return txn, nil
}
