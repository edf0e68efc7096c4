package entity

import "github.com/lengolf/pos-api/internal/domain/enum"

// ReceiptHeader holds the business identity printed at the top of a receipt.
type ReceiptHeader struct {
	BusinessName string `json:"business_name"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	Phone        string `json:"phone,omitempty"`
	TaxID        string `json:"tax_id,omitempty"`
}

// ItemDiscount describes a discount applied to a single receipt item.
// Amount is what was actually subtracted; Value is the configured rate or
// fixed amount it was derived from.
type ItemDiscount struct {
	Title  string  `json:"title"`
	Type   string  `json:"type"` // percentage | fixed
	Value  float64 `json:"value"`
	Amount float64 `json:"amount"`
}

// ReceiptItem represents one order line as it will appear on paper. It is
// distinct from the ledger's item snapshot rows; it exists only for rendering.
type ReceiptItem struct {
	Name      string        `json:"name"`
	Quantity  int           `json:"quantity"`
	UnitPrice float64       `json:"unit_price"`
	Notes     string        `json:"notes,omitempty"`
	Discount  *ItemDiscount `json:"discount,omitempty"`
}

// Total returns the line amount after any item-level discount.
func (i ReceiptItem) Total() float64 {
	total := i.UnitPrice * float64(i.Quantity)
	if i.Discount != nil {
		total -= i.Discount.Amount
	}
	return total
}

// ReceiptPayment is one entry of the payment breakdown, in submission order.
type ReceiptPayment struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// ReceiptDiscount is a receipt-level discount applied after item summation.
type ReceiptDiscount struct {
	Title  string  `json:"title"`
	Amount float64 `json:"amount"`
}

// ReceiptData aggregates everything a receipt render needs. It is a value
// object built fresh on every render/reprint request from persisted
// transaction data (or from the open session for a pre-payment bill) and is
// never cached or stored.
type ReceiptData struct {
	Kind          enum.ReceiptKind `json:"kind"`
	Header        ReceiptHeader    `json:"header"`
	ReceiptNumber string           `json:"receipt_number,omitempty"`
	Date          string           `json:"date"`
	TableLabel    string           `json:"table_label,omitempty"`
	Pax           int              `json:"pax,omitempty"`
	StaffName     string           `json:"staff_name,omitempty"`
	CustomerName  string           `json:"customer_name,omitempty"`

	Items    []ReceiptItem    `json:"items"`
	Discount *ReceiptDiscount `json:"discount,omitempty"`

	SubtotalExclVat float64 `json:"subtotal_excl_vat"`
	VatAmount       float64 `json:"vat_amount"`
	Total           float64 `json:"total"`

	Payments []ReceiptPayment `json:"payments,omitempty"`

	// Tax invoice fields; required when Kind is tax_invoice.
	BuyerName       string `json:"buyer_name,omitempty"`
	BuyerTaxID      string `json:"buyer_tax_id,omitempty"`
	ReplacesReceipt string `json:"replaces_receipt,omitempty"`

	FooterMessage string `json:"footer_message,omitempty"`
}
