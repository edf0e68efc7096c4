package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lengolf/pos-api/internal/domain/entity"
	"github.com/lengolf/pos-api/internal/domain/enum"
	"github.com/lengolf/pos-api/internal/domain/repository"
	"github.com/lengolf/pos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- in-memory fakes ---

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.TableSession
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.TableSession, error) {
	return r.sessions[id], nil
}

type fakeLedgerRepo struct {
	settled      map[uuid.UUID]*entity.Transaction // by session ID
	payments     map[uuid.UUID][]entity.TransactionPayment
	items        map[uuid.UUID][]entity.TransactionItem
	sessions     *fakeSessionRepo
	failWith     error
	settleCalled int
}

func newFakeLedgerRepo(sessions *fakeSessionRepo) *fakeLedgerRepo {
	return &fakeLedgerRepo{
		settled:  make(map[uuid.UUID]*entity.Transaction),
		payments: make(map[uuid.UUID][]entity.TransactionPayment),
		items:    make(map[uuid.UUID][]entity.TransactionItem),
		sessions: sessions,
	}
}

func (r *fakeLedgerRepo) Settle(_ context.Context, txn *entity.Transaction, payments []entity.TransactionPayment, items []entity.TransactionItem) error {
	r.settleCalled++
	if r.failWith != nil {
		return r.failWith
	}
	if _, exists := r.settled[txn.TableSessionID]; exists {
		return apperror.NewConflictError("Session already has a settlement recorded")
	}
	session := r.sessions.sessions[txn.TableSessionID]
	if session == nil || session.Status != enum.SessionStatusOpen {
		return apperror.NewConflictError("Session is not open")
	}

	r.settled[txn.TableSessionID] = txn
	for i := range payments {
		payments[i].TransactionID = txn.ID
	}
	for i := range items {
		items[i].TransactionID = txn.ID
	}
	r.payments[txn.ID] = payments
	r.items[txn.ID] = items

	now := time.Now()
	session.Status = enum.SessionStatusPaid
	session.TotalAmount = txn.TotalAmount
	session.CurrentOrderItems = "[]"
	session.ClosedAt = &now
	return nil
}

type fakeTxnRepo struct {
	ledger *fakeLedgerRepo
}

func (r *fakeTxnRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return r.GetWithDetails(ctx, id)
}

func (r *fakeTxnRepo) GetWithDetails(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for _, txn := range r.ledger.settled {
		if txn.ID == id {
			cp := *txn
			cp.Payments = r.ledger.payments[id]
			cp.Items = r.ledger.items[id]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTxnRepo) GetByReceiptNumber(_ context.Context, receiptNumber string) (*entity.Transaction, error) {
	for _, txn := range r.ledger.settled {
		if txn.ReceiptNumber == receiptNumber {
			return txn, nil
		}
	}
	return nil, nil
}

func (r *fakeTxnRepo) GetBySessionID(_ context.Context, sessionID uuid.UUID) (*entity.Transaction, error) {
	return r.ledger.settled[sessionID], nil
}

func (r *fakeTxnRepo) List(_ context.Context, _ *repository.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	return nil, 0, nil
}

type fakeSeqRepo struct {
	value    int64
	failWith error
}

func (r *fakeSeqRepo) Next(_ context.Context, _ string) (int64, error) {
	if r.failWith != nil {
		return 0, r.failWith
	}
	r.value++
	return r.value, nil
}

// --- fixtures ---

func openSession(total int64) *entity.TableSession {
	return &entity.TableSession{
		ID:          uuid.New(),
		TableLabel:  "T1",
		Pax:         2,
		Status:      enum.SessionStatusOpen,
		StaffID:     uuid.New(),
		TotalAmount: total,
		OpenedAt:    time.Now(),
	}
}

func newSettlementFixture(session *entity.TableSession) (*SettlementService, *fakeLedgerRepo, *fakeSeqRepo) {
	sessions := &fakeSessionRepo{sessions: map[uuid.UUID]*entity.TableSession{}}
	if session != nil {
		sessions.sessions[session.ID] = session
	}
	ledger := newFakeLedgerRepo(sessions)
	seq := &fakeSeqRepo{}
	svc := NewSettlementService(ledger, &fakeTxnRepo{ledger: ledger}, sessions, seq)
	return svc, ledger, seq
}

// --- ValidateAllocations ---

func TestValidateAllocations(t *testing.T) {
	tests := []struct {
		name       string
		allocs     []AllocationInput
		orderTotal int64
		wantErr    bool
	}{
		{
			name:       "exact single allocation",
			allocs:     []AllocationInput{{Method: "Cash", Amount: 250.00}},
			orderTotal: 25000,
		},
		{
			name: "exact split allocation",
			allocs: []AllocationInput{
				{Method: "Cash", Amount: 100.00},
				{Method: "Visa Manual", Amount: 150.00},
			},
			orderTotal: 25000,
		},
		{
			name:       "one satang over is within tolerance",
			allocs:     []AllocationInput{{Method: "Cash", Amount: 250.01}},
			orderTotal: 25000,
		},
		{
			name:       "one satang under is within tolerance",
			allocs:     []AllocationInput{{Method: "Cash", Amount: 249.99}},
			orderTotal: 25000,
		},
		{
			name: "two satang over is rejected",
			allocs: []AllocationInput{
				{Method: "Cash", Amount: 100.00},
				{Method: "Visa Manual", Amount: 150.02},
			},
			orderTotal: 25000,
			wantErr:    true,
		},
		{
			name:       "empty allocations",
			allocs:     nil,
			orderTotal: 25000,
			wantErr:    true,
		},
		{
			name:       "zero amount",
			allocs:     []AllocationInput{{Method: "Cash", Amount: 0}},
			orderTotal: 25000,
			wantErr:    true,
		},
		{
			name: "negative amount rejected even if sum matches",
			allocs: []AllocationInput{
				{Method: "Cash", Amount: 300.00},
				{Method: "Refund", Amount: -50.00},
			},
			orderTotal: 25000,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAllocations(tt.allocs, tt.orderTotal)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.IsKind(err, apperror.KindValidation))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateAllocations_FieldErrorNamesOffendingIndex(t *testing.T) {
	err := ValidateAllocations([]AllocationInput{
		{Method: "Cash", Amount: 100.00},
		{Method: "Visa Manual", Amount: -1.00},
	}, 9900)

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "allocations[1].amount", appErr.Errors[0].Field)
}

// --- VAT split ---

func TestSplitVat(t *testing.T) {
	tests := []struct {
		total        int64
		wantSubtotal int64
		wantVat      int64
	}{
		{total: 25000, wantSubtotal: 23364, wantVat: 1636}, // 250.00 -> 233.64 + 16.36
		{total: 10700, wantSubtotal: 10000, wantVat: 700},
		{total: 107, wantSubtotal: 100, wantVat: 7},
		{total: 1, wantSubtotal: 1, wantVat: 0},
		{total: 0, wantSubtotal: 0, wantVat: 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("total=%d", tt.total), func(t *testing.T) {
			subtotal, vat := SplitVat(tt.total)
			assert.Equal(t, tt.wantSubtotal, subtotal)
			assert.Equal(t, tt.wantVat, vat)
		})
	}
}

func TestSplitVat_AlwaysRecomposesExactly(t *testing.T) {
	// The invariant that matters for the ledger: no satang is ever lost or
	// invented by the split, regardless of rounding direction.
	for total := int64(0); total <= 100000; total += 7 {
		subtotal, vat := SplitVat(total)
		require.Equal(t, total, subtotal+vat, "total=%d", total)
	}
}

func TestToSatang(t *testing.T) {
	assert.Equal(t, int64(25000), ToSatang(250.00))
	assert.Equal(t, int64(15002), ToSatang(150.02))
	assert.Equal(t, int64(1), ToSatang(0.01))
	// Classic float trap: 19.99 is stored as 19.989999...
	assert.Equal(t, int64(1999), ToSatang(19.99))
}

// --- Settle ---

func TestSettle_RecordsLedgerAndClosesSession(t *testing.T) {
	session := openSession(25000)
	svc, ledger, _ := newSettlementFixture(session)

	txn, err := svc.Settle(context.Background(), &SettleInput{
		SessionID: session.ID,
		StaffID:   session.StaffID,
		StaffName: "Nok",
		Allocations: []AllocationInput{
			{Method: "Cash", Amount: 100.00},
			{Method: "Visa Manual", Amount: 150.00, Reference: "1234"},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, txn)

	assert.Equal(t, "RCPT-000001", txn.ReceiptNumber)
	assert.Equal(t, "Nok", txn.StaffName)
	assert.Equal(t, enum.TransactionStatusPaid, txn.Status)
	assert.Equal(t, int64(25000), txn.TotalAmount)
	assert.Equal(t, int64(23364), txn.SubtotalExclVat)
	assert.Equal(t, int64(1636), txn.VatAmount)
	assert.Equal(t, txn.TotalAmount, txn.SubtotalExclVat+txn.VatAmount)

	require.Len(t, txn.Payments, 2)
	assert.Equal(t, 1, txn.Payments[0].Sequence)
	assert.Equal(t, enum.PaymentMethodCash, txn.Payments[0].Method)
	assert.Equal(t, "Cash", txn.Payments[0].MethodLabel)
	assert.Equal(t, 2, txn.Payments[1].Sequence)
	assert.Equal(t, enum.PaymentMethodCreditCard, txn.Payments[1].Method)
	assert.Equal(t, "Visa Manual", txn.Payments[1].MethodLabel)
	assert.Equal(t, "1234", txn.Payments[1].Reference)

	// Session closed as part of the same operation.
	assert.Equal(t, enum.SessionStatusPaid, session.Status)
	assert.Equal(t, "[]", session.CurrentOrderItems)
	assert.NotNil(t, session.ClosedAt)
	assert.Equal(t, 1, ledger.settleCalled)
}

func TestSettle_SnapshotsItems(t *testing.T) {
	session := openSession(47000)
	svc, _, _ := newSettlementFixture(session)

	txn, err := svc.Settle(context.Background(), &SettleInput{
		SessionID:   session.ID,
		StaffID:     session.StaffID,
		Allocations: []AllocationInput{{Method: "Cash", Amount: 470.00}},
		Items: []SettleItemInput{
			{Name: "Golf Hour", Quantity: 1, UnitPrice: 520.00, Discount: &ItemDiscountInput{
				Title: "Happy Hour", Type: "fixed", Value: 50.00, Amount: 50.00,
			}},
		},
	})

	require.NoError(t, err)
	require.Len(t, txn.Items, 1)
	item := txn.Items[0]
	assert.Equal(t, 1, item.Position)
	assert.Equal(t, "Golf Hour", item.Name)
	assert.Equal(t, int64(52000), item.UnitPrice)
	assert.Equal(t, "Happy Hour", item.DiscountTitle)
	assert.Equal(t, int64(5000), item.DiscountAmount)
}

func TestSettle_MismatchedAllocationsRejected(t *testing.T) {
	session := openSession(25000)
	svc, ledger, _ := newSettlementFixture(session)

	_, err := svc.Settle(context.Background(), &SettleInput{
		SessionID: session.ID,
		StaffID:   session.StaffID,
		Allocations: []AllocationInput{
			{Method: "Cash", Amount: 100.00},
			{Method: "Visa Manual", Amount: 150.02},
		},
	})

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	// Nothing persisted, session untouched.
	assert.Equal(t, 0, ledger.settleCalled)
	assert.Equal(t, enum.SessionStatusOpen, session.Status)
}

func TestSettle_SessionNotFound(t *testing.T) {
	svc, _, _ := newSettlementFixture(nil)

	_, err := svc.Settle(context.Background(), &SettleInput{
		SessionID:   uuid.New(),
		StaffID:     uuid.New(),
		Allocations: []AllocationInput{{Method: "Cash", Amount: 10.00}},
	})

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestSettle_ClosedSessionRejected(t *testing.T) {
	session := openSession(25000)
	session.Status = enum.SessionStatusPaid
	svc, _, _ := newSettlementFixture(session)

	_, err := svc.Settle(context.Background(), &SettleInput{
		SessionID:   session.ID,
		StaffID:     session.StaffID,
		Allocations: []AllocationInput{{Method: "Cash", Amount: 250.00}},
	})

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestSettle_SecondSettlementConflicts(t *testing.T) {
	session := openSession(25000)
	svc, _, _ := newSettlementFixture(session)

	input := &SettleInput{
		SessionID:   session.ID,
		StaffID:     session.StaffID,
		Allocations: []AllocationInput{{Method: "Cash", Amount: 250.00}},
	}

	_, err := svc.Settle(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Settle(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestSettle_StaleItemTotalsConflict(t *testing.T) {
	session := openSession(25000)
	svc, ledger, _ := newSettlementFixture(session)

	// Client submits items that no longer match what the session recorded.
	_, err := svc.Settle(context.Background(), &SettleInput{
		SessionID:   session.ID,
		StaffID:     session.StaffID,
		Allocations: []AllocationInput{{Method: "Cash", Amount: 300.00}},
		Items:       []SettleItemInput{{Name: "Beer", Quantity: 3, UnitPrice: 100.00}},
	})

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	assert.Equal(t, 0, ledger.settleCalled)
}

func TestSettle_SequenceFailureIsRetryable(t *testing.T) {
	session := openSession(25000)
	svc, ledger, seq := newSettlementFixture(session)
	seq.failWith = errors.New("counter unavailable")

	_, err := svc.Settle(context.Background(), &SettleInput{
		SessionID:   session.ID,
		StaffID:     session.StaffID,
		Allocations: []AllocationInput{{Method: "Cash", Amount: 250.00}},
	})

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindSequenceGeneration))
	// Nothing written yet, so the session is still open for a retry.
	assert.Equal(t, 0, ledger.settleCalled)
	assert.Equal(t, enum.SessionStatusOpen, session.Status)

	seq.failWith = nil
	txn, err := svc.Settle(context.Background(), &SettleInput{
		SessionID:   session.ID,
		StaffID:     session.StaffID,
		Allocations: []AllocationInput{{Method: "Cash", Amount: 250.00}},
	})
	require.NoError(t, err)
	assert.Equal(t, "RCPT-000001", txn.ReceiptNumber)
}

func TestSettle_PartialWriteSurfacedAsIs(t *testing.T) {
	session := openSession(25000)
	svc, ledger, _ := newSettlementFixture(session)
	ledger.failWith = apperror.NewPartialLedgerWriteError(errors.New("payments insert failed"))

	_, err := svc.Settle(context.Background(), &SettleInput{
		SessionID:   session.ID,
		StaffID:     session.StaffID,
		Allocations: []AllocationInput{{Method: "Cash", Amount: 250.00}},
	})

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindPartialLedgerWrite))
}

func TestSettle_SurvivesCancelledContext(t *testing.T) {
	session := openSession(25000)
	svc, _, _ := newSettlementFixture(session)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Validation reads happen before detaching; the fakes ignore ctx, so
	// this exercises that the service itself never aborts on cancellation
	// once it decides to write.
	txn, err := svc.Settle(ctx, &SettleInput{
		SessionID:   session.ID,
		StaffID:     session.StaffID,
		Allocations: []AllocationInput{{Method: "Cash", Amount: 250.00}},
	})

	require.NoError(t, err)
	assert.Equal(t, enum.SessionStatusPaid, session.Status)
	assert.NotNil(t, txn)
}

func TestSettle_ReceiptNumbersAreSequential(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[uuid.UUID]*entity.TableSession{}}
	ledger := newFakeLedgerRepo(sessions)
	seq := &fakeSeqRepo{}
	svc := NewSettlementService(ledger, &fakeTxnRepo{ledger: ledger}, sessions, seq)

	for i := 1; i <= 3; i++ {
		session := openSession(10000)
		sessions.sessions[session.ID] = session

		txn, err := svc.Settle(context.Background(), &SettleInput{
			SessionID:   session.ID,
			StaffID:     session.StaffID,
			Allocations: []AllocationInput{{Method: "Cash", Amount: 100.00}},
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("RCPT-%06d", i), txn.ReceiptNumber)
	}
}
