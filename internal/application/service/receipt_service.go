package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lengolf/pos-api/internal/domain/entity"
	"github.com/lengolf/pos-api/internal/domain/enum"
	"github.com/lengolf/pos-api/internal/domain/repository"
	"github.com/lengolf/pos-api/pkg/apperror"
)

// receiptDateFormat is how transaction timestamps appear on paper. Dates
// come from stored data, never the clock, so reprints are byte-identical.
const receiptDateFormat = "2006-01-02 15:04"

// ReceiptService reconstructs ReceiptData from persisted settlement records
// (or from an open session, for pre-payment bills).
type ReceiptService struct {
	txnRepo     repository.TransactionRepository
	sessionRepo repository.SessionRepository
	header      entity.ReceiptHeader
	footer      string
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	txnRepo repository.TransactionRepository,
	sessionRepo repository.SessionRepository,
	header entity.ReceiptHeader,
	footer string,
) *ReceiptService {
	return &ReceiptService{
		txnRepo:     txnRepo,
		sessionRepo: sessionRepo,
		header:      header,
		footer:      footer,
	}
}

// TaxInvoiceInfo carries the buyer identity a tax invoice must show.
type TaxInvoiceInfo struct {
	BuyerName       string
	BuyerTaxID      string
	ReplacesReceipt string
}

// BuildFromTransaction reconstructs ReceiptData for a settled transaction.
// Supports reprints: the data is rebuilt fresh from the stored rows on every
// call. A tax invoice additionally requires buyer identity.
func (s *ReceiptService) BuildFromTransaction(ctx context.Context, id uuid.UUID, kind enum.ReceiptKind, taxInfo *TaxInvoiceInfo) (*entity.ReceiptData, error) {
	if !kind.Valid() {
		return nil, apperror.NewBadRequestError("Unknown receipt kind")
	}
	if kind == enum.ReceiptKindTaxInvoice {
		if taxInfo == nil || taxInfo.BuyerName == "" || taxInfo.BuyerTaxID == "" {
			return nil, apperror.NewValidationError("Tax invoices require buyer name and tax ID")
		}
	}

	txn, err := s.txnRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	data := &entity.ReceiptData{
		Kind:            kind,
		Header:          s.header,
		ReceiptNumber:   txn.ReceiptNumber,
		Date:            txn.TransactionDate.Format(receiptDateFormat),
		StaffName:       txn.StaffName,
		SubtotalExclVat: float64(txn.SubtotalExclVat) / 100,
		VatAmount:       float64(txn.VatAmount) / 100,
		Total:           float64(txn.TotalAmount) / 100,
		FooterMessage:   s.footer,
	}

	// Table context lives on the session, which outlives settlement.
	session, err := s.sessionRepo.GetByID(ctx, txn.TableSessionID)
	if err != nil {
		return nil, err
	}
	if session != nil {
		data.TableLabel = session.TableLabel
		data.Pax = session.Pax
	}

	if txn.DiscountAmount > 0 {
		data.Discount = &entity.ReceiptDiscount{
			Title:  txn.DiscountTitle,
			Amount: float64(txn.DiscountAmount) / 100,
		}
	}

	for _, item := range txn.Items {
		ri := entity.ReceiptItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: float64(item.UnitPrice) / 100,
			Notes:     item.Notes,
		}
		if item.DiscountAmount > 0 {
			ri.Discount = &entity.ItemDiscount{
				Title:  item.DiscountTitle,
				Type:   item.DiscountType,
				Value:  float64(item.DiscountValue) / 100,
				Amount: float64(item.DiscountAmount) / 100,
			}
		}
		data.Items = append(data.Items, ri)
	}

	for _, p := range txn.Payments {
		data.Payments = append(data.Payments, entity.ReceiptPayment{
			Label:  p.MethodLabel,
			Amount: float64(p.Amount) / 100,
		})
	}

	if taxInfo != nil {
		data.BuyerName = taxInfo.BuyerName
		data.BuyerTaxID = taxInfo.BuyerTaxID
		data.ReplacesReceipt = taxInfo.ReplacesReceipt
	}

	return data, nil
}

// BuildBillFromSession renders the pre-payment proforma for an open session
// from its current order items. Totals are derived the same way settlement
// will derive them, so the bill and the eventual receipt agree.
func (s *ReceiptService) BuildBillFromSession(ctx context.Context, sessionID uuid.UUID) (*entity.ReceiptData, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}
	if session.Status != enum.SessionStatusOpen {
		return nil, apperror.NewConflictError("Session is not open")
	}

	orderItems, err := session.OrderItems()
	if err != nil {
		return nil, apperror.NewAppError(500, "Session order items are unreadable")
	}
	if len(orderItems) == 0 {
		return nil, apperror.NewValidationError("Session has no order items to bill")
	}

	data := &entity.ReceiptData{
		Kind:          enum.ReceiptKindBill,
		Header:        s.header,
		Date:          session.OpenedAt.Format(receiptDateFormat),
		TableLabel:    session.TableLabel,
		Pax:           session.Pax,
		FooterMessage: s.footer,
	}

	var total int64
	for _, item := range orderItems {
		ri := entity.ReceiptItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Notes:     item.Notes,
		}
		if item.DiscountAmount > 0 {
			ri.Discount = &entity.ItemDiscount{
				Title:  item.DiscountTitle,
				Type:   item.DiscountType,
				Value:  item.DiscountValue,
				Amount: item.DiscountAmount,
			}
		}
		data.Items = append(data.Items, ri)
		total += ToSatang(ri.Total())
	}

	subtotal, vat := SplitVat(total)
	data.SubtotalExclVat = float64(subtotal) / 100
	data.VatAmount = float64(vat) / 100
	data.Total = float64(total) / 100

	return data, nil
}
