package enum

import "strings"

// PaymentMethod is the canonical payment-method code stored on
// transaction_payments rows. The POS UI sends human-facing labels
// ("Visa Manual", "PromptPay Manual"); those are mapped here so reporting
// sees a stable taxonomy regardless of how the label is spelled.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodQRCode       PaymentMethod = "qr_code"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodVoucher      PaymentMethod = "voucher"
	PaymentMethodOther        PaymentMethod = "other"
)

// methodLabels maps normalized human-facing labels to canonical codes.
var methodLabels = map[string]PaymentMethod{
	"cash":              PaymentMethodCash,
	"visa":              PaymentMethodCreditCard,
	"visa manual":       PaymentMethodCreditCard,
	"mastercard":        PaymentMethodCreditCard,
	"mastercard manual": PaymentMethodCreditCard,
	"amex":              PaymentMethodCreditCard,
	"credit card":       PaymentMethodCreditCard,
	"promptpay":         PaymentMethodQRCode,
	"promptpay manual":  PaymentMethodQRCode,
	"qr code":           PaymentMethodQRCode,
	"bank transfer":     PaymentMethodBankTransfer,
	"voucher":           PaymentMethodVoucher,
	"gift voucher":      PaymentMethodVoucher,
}

// CanonicalPaymentMethod maps a human-facing payment label to its canonical
// code. Unknown labels fall into the other bucket rather than failing;
// payment taxonomy must never block a settlement.
func CanonicalPaymentMethod(label string) PaymentMethod {
	if m, ok := methodLabels[strings.ToLower(strings.TrimSpace(label))]; ok {
		return m
	}
	return PaymentMethodOther
}
