package repository

import (
	"context"

	"github.com/lengolf/pos-api/internal/domain/entity"
)

// LedgerRepository performs the durable half of a settlement: transaction
// header, payment rows, item snapshot, and the session close, applied as one
// database transaction so no partial ledger state can be observed on the
// success path. Callers still treat a failure after the header insert as a
// partial-write class error and log it with the transaction ID.
type LedgerRepository interface {
	// Settle writes txn plus its payment and item rows and closes the
	// originating session (status paid, total frozen, order items cleared).
	// It returns apperror.ErrConflict-class errors when the session is not
	// open or already has a settlement recorded against it.
	Settle(ctx context.Context, txn *entity.Transaction, payments []entity.TransactionPayment, items []entity.TransactionItem) error
}

// ReceiptSequenceRepository issues receipt numbers.
type ReceiptSequenceRepository interface {
	// Next atomically increments and returns the named counter. Numbers are
	// unique and monotonic under concurrent settlement; a failure here means
	// nothing has been persisted yet.
	Next(ctx context.Context, name string) (int64, error)
}
