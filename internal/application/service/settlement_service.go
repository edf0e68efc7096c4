package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lengolf/pos-api/internal/domain/entity"
	"github.com/lengolf/pos-api/internal/domain/enum"
	"github.com/lengolf/pos-api/internal/domain/repository"
	"github.com/lengolf/pos-api/pkg/apperror"
	"github.com/sirupsen/logrus"
)

// SettlementService validates payment allocations and turns them into
// durable ledger records, closing the originating table session in the
// same operation.
type SettlementService struct {
	ledgerRepo  repository.LedgerRepository
	txnRepo     repository.TransactionRepository
	sessionRepo repository.SessionRepository
	seqRepo     repository.ReceiptSequenceRepository
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	ledgerRepo repository.LedgerRepository,
	txnRepo repository.TransactionRepository,
	sessionRepo repository.SessionRepository,
	seqRepo repository.ReceiptSequenceRepository,
) *SettlementService {
	return &SettlementService{
		ledgerRepo:  ledgerRepo,
		txnRepo:     txnRepo,
		sessionRepo: sessionRepo,
		seqRepo:     seqRepo,
	}
}

// receiptCounterName is the counter row backing receipt-number issuance.
const receiptCounterName = "receipt_number"

// AllocationInput is one proposed payment allocation: a human-facing method
// label, an amount in currency units, and an optional instrument reference.
type AllocationInput struct {
	Method    string
	Amount    float64
	Reference string
}

// ItemDiscountInput describes an item-level discount as submitted.
type ItemDiscountInput struct {
	Title  string
	Type   string // percentage | fixed
	Value  float64
	Amount float64
}

// SettleItemInput is one order line to snapshot for receipt rendering.
type SettleItemInput struct {
	Name      string
	Quantity  int
	UnitPrice float64
	Notes     string
	Discount  *ItemDiscountInput
}

// ReceiptDiscountInput is a receipt-level discount applied after item
// summation.
type ReceiptDiscountInput struct {
	Title  string
	Amount float64
}

// SettleInput is everything a settlement attempt needs.
type SettleInput struct {
	SessionID   uuid.UUID
	StaffID     uuid.UUID
	StaffName   string
	CustomerID  *uuid.UUID
	BookingID   *uuid.UUID
	Allocations []AllocationInput
	Items       []SettleItemInput
	Discount    *ReceiptDiscountInput
}

// ValidateAllocations checks that the proposed allocations reconcile with
// the authoritative order total (in satang) before anything is persisted.
// No side effects.
func ValidateAllocations(allocs []AllocationInput, orderTotal int64) error {
	if len(allocs) == 0 {
		return apperror.NewValidationError("At least one payment allocation is required")
	}

	var sum int64
	for i, a := range allocs {
		amount := ToSatang(a.Amount)
		if amount <= 0 {
			return apperror.NewValidationError(
				"Payment allocation amounts must be positive",
				apperror.FieldError{
					Field:   fmt.Sprintf("allocations[%d].amount", i),
					Message: "must be greater than zero",
				},
			)
		}
		sum += amount
	}

	if diff := sum - orderTotal; diff > toleranceSatang || diff < -toleranceSatang {
		return apperror.NewValidationError(fmt.Sprintf(
			"Payment allocations (%.2f) do not reconcile with the order total (%.2f)",
			float64(sum)/100, float64(orderTotal)/100,
		))
	}

	return nil
}

// orderTotal derives the authoritative order total in satang from the
// submitted line items and receipt-level discount. When no items are
// submitted it falls back to the session's stored total.
func orderTotal(input *SettleInput, session *entity.TableSession) int64 {
	if len(input.Items) == 0 {
		return session.TotalAmount
	}

	var total int64
	for _, item := range input.Items {
		line := ToSatang(item.UnitPrice) * int64(item.Quantity)
		if item.Discount != nil {
			line -= ToSatang(item.Discount.Amount)
		}
		total += line
	}
	if input.Discount != nil {
		total -= ToSatang(input.Discount.Amount)
	}
	return total
}

// Settle runs the settlement sequence: validate, issue a receipt number,
// derive the tax split, and record the ledger rows while closing the
// session. Once the ledger write begins the operation is detached from the
// caller's context so a client disconnect cannot leave a half-settled
// session.
func (s *SettlementService) Settle(ctx context.Context, input *SettleInput) (*entity.Transaction, error) {
	session, err := s.sessionRepo.GetByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}
	if session.Status != enum.SessionStatusOpen {
		return nil, apperror.NewConflictError("Session is not open")
	}

	total := orderTotal(input, session)
	if err := ValidateAllocations(input.Allocations, total); err != nil {
		return nil, err
	}

	// Cross-check against the session's stored total when one exists. The
	// submitted items come from the client and could be stale relative to
	// what the order flow recorded against the session.
	if len(input.Items) > 0 && session.TotalAmount > 0 {
		if diff := total - session.TotalAmount; diff > toleranceSatang || diff < -toleranceSatang {
			return nil, apperror.NewConflictError(fmt.Sprintf(
				"Submitted order total (%.2f) does not match the session total (%.2f); reload the session",
				float64(total)/100, float64(session.TotalAmount)/100,
			))
		}
	}

	// From here on every step writes. Detach from the caller's context so
	// cancellation cannot interrupt the sequence mid-way.
	ctx = context.WithoutCancel(ctx)

	seq, err := s.seqRepo.Next(ctx, receiptCounterName)
	if err != nil {
		return nil, apperror.NewSequenceGenerationError(err)
	}
	receiptNumber := fmt.Sprintf("RCPT-%06d", seq)

	// The transaction total is the tax-inclusive sum of the allocations.
	var allocSum int64
	for _, a := range input.Allocations {
		allocSum += ToSatang(a.Amount)
	}
	subtotal, vat := SplitVat(allocSum)

	var discountAmount int64
	var discountTitle string
	if input.Discount != nil {
		discountAmount = ToSatang(input.Discount.Amount)
		discountTitle = input.Discount.Title
	}

	now := time.Now()
	txn := &entity.Transaction{
		ID:              uuid.New(),
		ReceiptNumber:   receiptNumber,
		TableSessionID:  input.SessionID,
		StaffID:         input.StaffID,
		StaffName:       input.StaffName,
		CustomerID:      input.CustomerID,
		BookingID:       input.BookingID,
		Status:          enum.TransactionStatusPaid,
		SubtotalExclVat: subtotal,
		VatAmount:       vat,
		DiscountTitle:   discountTitle,
		DiscountAmount:  discountAmount,
		TotalAmount:     allocSum,
		TransactionDate: now,
	}

	payments := make([]entity.TransactionPayment, 0, len(input.Allocations))
	for i, a := range input.Allocations {
		payments = append(payments, entity.TransactionPayment{
			Sequence:    i + 1,
			Method:      enum.CanonicalPaymentMethod(a.Method),
			MethodLabel: a.Method,
			Amount:      ToSatang(a.Amount),
			Reference:   a.Reference,
			ProcessedBy: input.StaffID,
			ProcessedAt: now,
		})
	}

	items := make([]entity.TransactionItem, 0, len(input.Items))
	for i, item := range input.Items {
		row := entity.TransactionItem{
			Position:  i + 1,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: ToSatang(item.UnitPrice),
			Notes:     item.Notes,
		}
		if item.Discount != nil {
			row.DiscountTitle = item.Discount.Title
			row.DiscountType = item.Discount.Type
			row.DiscountValue = ToSatang(item.Discount.Value)
			row.DiscountAmount = ToSatang(item.Discount.Amount)
		}
		items = append(items, row)
	}

	if err := s.ledgerRepo.Settle(ctx, txn, payments, items); err != nil {
		if apperror.IsKind(err, apperror.KindPartialLedgerWrite) {
			// Fatal: requires operator reconciliation against this ID.
			logrus.WithFields(logrus.Fields{
				"transaction_id": txn.ID,
				"receipt_number": receiptNumber,
				"session_id":     input.SessionID,
			}).WithError(err).Error("settlement ledger write failed after transaction header")
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"transaction_id": txn.ID,
		"receipt_number": receiptNumber,
		"session_id":     input.SessionID,
		"total":          float64(allocSum) / 100,
	}).Info("session settled")

	return s.txnRepo.GetWithDetails(ctx, txn.ID)
}
