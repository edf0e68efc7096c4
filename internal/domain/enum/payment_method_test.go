package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPaymentMethod(t *testing.T) {
	tests := []struct {
		label string
		want  PaymentMethod
	}{
		{"Cash", PaymentMethodCash},
		{"cash", PaymentMethodCash},
		{"  Cash  ", PaymentMethodCash},
		{"Visa Manual", PaymentMethodCreditCard},
		{"MASTERCARD MANUAL", PaymentMethodCreditCard},
		{"PromptPay Manual", PaymentMethodQRCode},
		{"PromptPay", PaymentMethodQRCode},
		{"Bank Transfer", PaymentMethodBankTransfer},
		{"Gift Voucher", PaymentMethodVoucher},
		{"Crypto", PaymentMethodOther},
		{"", PaymentMethodOther},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalPaymentMethod(tt.label))
		})
	}
}
