package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lengolf/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Transaction is the settlement ledger header. It is created exactly once
// per settlement and never mutated afterwards; voids are a separate flow.
type Transaction struct {
	ID              uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptNumber   string                 `gorm:"size:50;unique;not null" json:"receipt_number"`
	TableSessionID  uuid.UUID              `gorm:"type:uuid;uniqueIndex;not null" json:"table_session_id"`
	StaffID         uuid.UUID              `gorm:"type:uuid;not null;index" json:"staff_id"`
	StaffName       string                 `gorm:"size:100" json:"staff_name,omitempty"`
	CustomerID      *uuid.UUID             `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	BookingID       *uuid.UUID             `gorm:"type:uuid;index" json:"booking_id,omitempty"`
	Status          enum.TransactionStatus `gorm:"default:1" json:"status"`
	SubtotalExclVat int64                  `gorm:"not null" json:"-"` // Stored in satang, excluded from JSON
	VatAmount       int64                  `gorm:"not null" json:"-"` // Stored in satang, excluded from JSON
	DiscountTitle   string                 `gorm:"size:100" json:"discount_title,omitempty"`
	DiscountAmount  int64                  `gorm:"default:0" json:"-"` // Stored in satang, excluded from JSON
	TotalAmount     int64                  `gorm:"not null" json:"-"`  // Stored in satang, excluded from JSON
	TransactionDate time.Time              `gorm:"not null" json:"transaction_date"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`

	// Relationships
	Payments []TransactionPayment `gorm:"foreignKey:TransactionID" json:"payments,omitempty"`
	Items    []TransactionItem    `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert satang to decimal for API responses
func (t Transaction) MarshalJSON() ([]byte, error) {
	type Alias Transaction
	return json.Marshal(&struct {
		Alias
		SubtotalExclVat float64 `json:"subtotal_excl_vat"`
		VatAmount       float64 `json:"vat_amount"`
		DiscountAmount  float64 `json:"discount_amount"`
		TotalAmount     float64 `json:"total_amount"`
	}{
		Alias:           Alias(t),
		SubtotalExclVat: float64(t.SubtotalExclVat) / 100,
		VatAmount:       float64(t.VatAmount) / 100,
		DiscountAmount:  float64(t.DiscountAmount) / 100,
		TotalAmount:     float64(t.TotalAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// GetTotalDecimal returns the total as a decimal
func (t *Transaction) GetTotalDecimal() float64 {
	return float64(t.TotalAmount) / 100
}

// TransactionPayment is one settled payment allocation. Rows are append-only
// and sequence preserves the submission order of the allocations, which is
// also the order they appear on the printed receipt.
type TransactionPayment struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_txn_payment_seq" json:"transaction_id"`
	Sequence      int                `gorm:"not null;uniqueIndex:idx_txn_payment_seq" json:"sequence"`
	Method        enum.PaymentMethod `gorm:"size:50;not null" json:"method"`
	MethodLabel   string             `gorm:"size:100;not null" json:"method_label"`
	Amount        int64              `gorm:"not null" json:"-"` // Stored in satang, excluded from JSON
	Reference     string             `gorm:"size:100" json:"reference,omitempty"`
	ProcessedBy   uuid.UUID          `gorm:"type:uuid;not null" json:"processed_by"`
	ProcessedAt   time.Time          `gorm:"not null" json:"processed_at"`
	CreatedAt     time.Time          `json:"created_at"`
}

// MarshalJSON custom marshaler to convert satang to decimal for API responses
func (p TransactionPayment) MarshalJSON() ([]byte, error) {
	type Alias TransactionPayment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment row
func (p *TransactionPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionPayment model
func (TransactionPayment) TableName() string {
	return "transaction_payments"
}

// TransactionItem snapshots one order line at settlement time. The session's
// current_order_items are cleared when the session closes, so reprints read
// from this snapshot instead of the live session.
type TransactionItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_id"`
	Position      int       `gorm:"not null" json:"position"`
	Name          string    `gorm:"size:200;not null" json:"name"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	UnitPrice     int64     `gorm:"not null" json:"-"` // Stored in satang, excluded from JSON
	Notes         string    `gorm:"size:255" json:"notes,omitempty"`

	// Item-level discount, zero-valued when absent
	DiscountTitle  string `gorm:"size:100" json:"discount_title,omitempty"`
	DiscountType   string `gorm:"size:20" json:"discount_type,omitempty"` // percentage | fixed
	DiscountValue  int64  `gorm:"default:0" json:"-"`
	DiscountAmount int64  `gorm:"default:0" json:"-"` // Stored in satang

	CreatedAt time.Time `json:"created_at"`
}

// MarshalJSON custom marshaler to convert satang to decimal for API responses
func (i TransactionItem) MarshalJSON() ([]byte, error) {
	type Alias TransactionItem
	return json.Marshal(&struct {
		Alias
		UnitPrice      float64 `json:"unit_price"`
		DiscountValue  float64 `json:"discount_value,omitempty"`
		DiscountAmount float64 `json:"discount_amount,omitempty"`
	}{
		Alias:          Alias(i),
		UnitPrice:      float64(i.UnitPrice) / 100,
		DiscountValue:  float64(i.DiscountValue) / 100,
		DiscountAmount: float64(i.DiscountAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new item snapshot
func (i *TransactionItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionItem model
func (TransactionItem) TableName() string {
	return "transaction_items"
}

// ReceiptCounter backs atomic receipt-number issuance. A single named row is
// bumped with one INSERT .. ON CONFLICT .. RETURNING statement so concurrent
// settlements can never be handed the same number.
type ReceiptCounter struct {
	Name      string    `gorm:"primaryKey;size:50" json:"name"`
	Value     int64     `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the ReceiptCounter model
func (ReceiptCounter) TableName() string {
	return "receipt_counters"
}
