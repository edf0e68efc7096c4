package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lengolf/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// TableSession represents one seating at a table. The settlement pipeline
// only consumes it: a session transitions to Paid exactly once, its stored
// order items are cleared, and its total is frozen as part of that write.
type TableSession struct {
	ID                uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TableLabel        string             `gorm:"size:50;not null" json:"table_label"`
	Pax               int                `gorm:"default:1" json:"pax"`
	Status            enum.SessionStatus `gorm:"default:0;index" json:"status"`
	StaffID           uuid.UUID          `gorm:"type:uuid;not null" json:"staff_id"`
	CustomerID        *uuid.UUID         `gorm:"type:uuid" json:"customer_id,omitempty"`
	BookingID         *uuid.UUID         `gorm:"type:uuid" json:"booking_id,omitempty"`
	CurrentOrderItems string             `gorm:"type:jsonb;default:'[]'" json:"-"`
	TotalAmount       int64              `gorm:"default:0" json:"-"` // Stored in satang, excluded from JSON
	OpenedAt          time.Time          `gorm:"not null" json:"opened_at"`
	ClosedAt          *time.Time         `json:"closed_at,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// SessionOrderItem is the shape of one entry in CurrentOrderItems. It mirrors
// the receipt item fields so a pre-payment bill can be rendered straight from
// the open session.
type SessionOrderItem struct {
	Name           string  `json:"name"`
	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unit_price"`
	Notes          string  `json:"notes,omitempty"`
	DiscountTitle  string  `json:"discount_title,omitempty"`
	DiscountType   string  `json:"discount_type,omitempty"`
	DiscountValue  float64 `json:"discount_value,omitempty"`
	DiscountAmount float64 `json:"discount_amount,omitempty"`
}

// MarshalJSON custom marshaler to convert satang to decimal for API responses
func (s TableSession) MarshalJSON() ([]byte, error) {
	type Alias TableSession
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
	}{
		Alias:       Alias(s),
		TotalAmount: float64(s.TotalAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new session
func (s *TableSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TableSession model
func (TableSession) TableName() string {
	return "table_sessions"
}

// OrderItems decodes CurrentOrderItems. An empty or cleared column decodes
// to an empty slice.
func (s *TableSession) OrderItems() ([]SessionOrderItem, error) {
	if s.CurrentOrderItems == "" {
		return nil, nil
	}
	var items []SessionOrderItem
	if err := json.Unmarshal([]byte(s.CurrentOrderItems), &items); err != nil {
		return nil, err
	}
	return items, nil
}
