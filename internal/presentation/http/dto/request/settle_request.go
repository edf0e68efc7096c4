package request

import "github.com/google/uuid"

// AllocationRequest is one payment allocation inside a settlement request.
// Amounts arrive as decimal currency values and are converted to satang by
// the service layer.
type AllocationRequest struct {
	Method    string  `json:"method" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
	Reference string  `json:"reference,omitempty"`
}

// ItemDiscountRequest describes a discount applied to a single line item.
type ItemDiscountRequest struct {
	Title  string  `json:"title" binding:"required"`
	Type   string  `json:"type" binding:"omitempty,oneof=percentage fixed"`
	Value  float64 `json:"value"`
	Amount float64 `json:"amount" binding:"required"`
}

// SettleItemRequest is one order line captured at settlement time.
type SettleItemRequest struct {
	Name      string               `json:"name" binding:"required"`
	Quantity  int                  `json:"quantity" binding:"required,min=1"`
	UnitPrice float64              `json:"unit_price" binding:"required"`
	Notes     string               `json:"notes,omitempty"`
	Discount  *ItemDiscountRequest `json:"discount,omitempty"`
}

// ReceiptDiscountRequest describes a receipt-level discount.
type ReceiptDiscountRequest struct {
	Title  string  `json:"title" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

// SettleRequest represents a request to settle an open table session.
// Allocation and total consistency is validated by the settlement service so
// the error messages carry field-level detail.
type SettleRequest struct {
	SessionID   uuid.UUID               `json:"session_id" binding:"required"`
	CustomerID  *uuid.UUID              `json:"customer_id,omitempty"`
	BookingID   *uuid.UUID              `json:"booking_id,omitempty"`
	Allocations []AllocationRequest     `json:"allocations"`
	Items       []SettleItemRequest     `json:"items"`
	Discount    *ReceiptDiscountRequest `json:"discount,omitempty"`
}
