package request

// PrintRequest selects the document variant for a transaction print.
type PrintRequest struct {
	Kind            string `json:"kind" binding:"required,oneof=receipt bill tax_invoice"`
	BuyerName       string `json:"buyer_name,omitempty"`
	BuyerTaxID      string `json:"buyer_tax_id,omitempty"`
	ReplacesReceipt string `json:"replaces_receipt,omitempty"`
}
