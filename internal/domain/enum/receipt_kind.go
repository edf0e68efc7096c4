package enum

// ReceiptKind selects which document a receipt render produces. The three
// kinds share one rendering path with conditional sections: a bill is the
// pre-payment proforma (no payment breakdown), a receipt is proof of
// payment, and a tax invoice additionally carries buyer tax identity.
type ReceiptKind string

const (
	ReceiptKindReceipt    ReceiptKind = "receipt"
	ReceiptKindBill       ReceiptKind = "bill"
	ReceiptKindTaxInvoice ReceiptKind = "tax_invoice"
)

// Valid reports whether k is one of the known document kinds.
func (k ReceiptKind) Valid() bool {
	switch k {
	case ReceiptKindReceipt, ReceiptKindBill, ReceiptKindTaxInvoice:
		return true
	}
	return false
}

// Banner returns the document banner printed under the business header.
func (k ReceiptKind) Banner() string {
	switch k {
	case ReceiptKindBill:
		return "BILL"
	case ReceiptKindTaxInvoice:
		return "TAX INVOICE"
	default:
		return "RECEIPT"
	}
}
