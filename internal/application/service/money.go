package service

import "math"

// VatRate is the fixed VAT-inclusive tax regime. Prices are tax-inclusive,
// so VAT is back-calculated from totals by division, never added on top.
// Compiled-in on purpose: changing it invalidates the tax split of every
// stored transaction, so it must not drift per environment.
const VatRate = 0.07

// toleranceSatang is how far the allocation sum may drift from the order
// total (±0.01 currency units) to absorb floating-point rounding from
// upstream discount math. Widening it requires re-deriving the tax split.
const toleranceSatang = 1

// ToSatang converts a decimal currency amount to int64 satang.
func ToSatang(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// SplitVat back-calculates the tax split from a tax-inclusive total in
// satang. The parts always recompose exactly: subtotal + vat == total.
func SplitVat(total int64) (subtotal, vat int64) {
	subtotal = int64(math.Round(float64(total) / (1 + VatRate)))
	vat = total - subtotal
	return subtotal, vat
}
