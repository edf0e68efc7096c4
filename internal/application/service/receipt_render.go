package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lengolf/pos-api/internal/domain/entity"
	"github.com/lengolf/pos-api/internal/domain/enum"
	"github.com/lengolf/pos-api/pkg/printer"
)

// RenderLines builds the ordered line sequence for a receipt document. It is
// a pure function: identical ReceiptData always yields identical lines, which
// is what makes reprints deterministic. Each line carries its structural
// role so the protocol encoder styles it without inspecting the text.
func RenderLines(data *entity.ReceiptData, width int) []printer.Line {
	if width <= 0 {
		width = 42
	}

	var lines []printer.Line
	add := func(role printer.LineRole, text string) {
		lines = append(lines, printer.Line{Role: role, Text: text})
	}
	separator := strings.Repeat("-", width)

	// Business identity block
	add(printer.RoleBusinessName, data.Header.BusinessName)
	if data.Header.AddressLine1 != "" {
		add(printer.RoleAddress, data.Header.AddressLine1)
	}
	if data.Header.AddressLine2 != "" {
		add(printer.RoleAddress, data.Header.AddressLine2)
	}
	if data.Header.Phone != "" {
		add(printer.RoleAddress, "Tel: "+data.Header.Phone)
	}
	if data.Header.TaxID != "" {
		add(printer.RoleAddress, "Tax ID: "+data.Header.TaxID)
	}

	add(printer.RoleBanner, data.Kind.Banner())
	add(printer.RoleSeparator, separator)

	// Document metadata
	if data.ReceiptNumber != "" {
		add(printer.RoleMeta, keyValue("Receipt No:", data.ReceiptNumber, width))
	}
	add(printer.RoleMeta, keyValue("Date:", data.Date, width))
	if data.TableLabel != "" {
		add(printer.RoleMeta, keyValue("Table:", data.TableLabel, width))
	}
	if data.Pax > 0 {
		add(printer.RoleMeta, keyValue("Pax:", fmt.Sprintf("%d", data.Pax), width))
	}
	if data.StaffName != "" {
		add(printer.RoleMeta, keyValue("Staff:", data.StaffName, width))
	}
	if data.CustomerName != "" {
		add(printer.RoleMeta, keyValue("Customer:", data.CustomerName, width))
	}

	if data.Kind == enum.ReceiptKindTaxInvoice {
		add(printer.RoleMeta, keyValue("Issued to:", data.BuyerName, width))
		add(printer.RoleMeta, keyValue("Buyer Tax ID:", data.BuyerTaxID, width))
		if data.ReplacesReceipt != "" {
			add(printer.RoleMeta, "Issued to replace receipt "+data.ReplacesReceipt)
		}
	}

	add(printer.RoleSeparator, separator)

	// Itemized body
	for _, item := range data.Items {
		add(printer.RoleItem, itemLine(item.Quantity, item.Name, amount(item.Total()), width))
		if item.Quantity > 1 {
			add(printer.RoleItem, fmt.Sprintf("  @ %s each", amount(item.UnitPrice)))
		}
		if item.Notes != "" {
			add(printer.RoleItem, "  "+item.Notes)
		}
		if item.Discount != nil {
			// Original and discounted amounts both appear: the discounted
			// total on the item line, the original here.
			add(printer.RoleItem, fmt.Sprintf("  %s -%s (was %s)",
				item.Discount.Title,
				amount(item.Discount.Amount),
				amount(item.UnitPrice*float64(item.Quantity))))
		}
	}

	add(printer.RoleSeparator, separator)

	// Totals block. A receipt-level discount appears exactly once, here; it
	// is already reflected in the stored totals and must never be
	// re-subtracted from any item line.
	if data.Discount != nil {
		title := data.Discount.Title
		if title == "" {
			title = "Discount"
		}
		add(printer.RoleTotal, keyValue(title+":", "-"+amount(data.Discount.Amount), width))
	}
	add(printer.RoleTotal, keyValue("Subtotal (excl. VAT):", amount(data.SubtotalExclVat), width))
	add(printer.RoleTotal, keyValue(vatLabel+":", amount(data.VatAmount), width))
	add(printer.RoleAmountDue, keyValue("Amount Due:", amount(data.Total), width))

	// Payment breakdown, in submission order. A bill is pre-payment and
	// never shows payment methods.
	if data.Kind != enum.ReceiptKindBill && len(data.Payments) > 0 {
		add(printer.RoleSeparator, separator)
		for _, p := range data.Payments {
			add(printer.RolePayment, keyValue(p.Label+":", amount(p.Amount), width))
		}
	}

	add(printer.RoleSeparator, separator)
	if data.FooterMessage != "" {
		add(printer.RoleFooter, data.FooterMessage)
	}

	return lines
}

var vatLabel = fmt.Sprintf("VAT %g%%", VatRate*100)

// amount formats a currency amount for printing.
func amount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// keyValue lays out a left-aligned key and right-aligned value on one line.
// Widths are counted in runes so Thai item or customer names line up.
func keyValue(key, value string, width int) string {
	spaces := width - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	if spaces < 1 {
		spaces = 1
	}
	return key + strings.Repeat(" ", spaces) + value
}

// itemLine lays out a receipt item line: qty x name, then a right-aligned
// amount.
func itemLine(qty int, name, total string, width int) string {
	prefix := fmt.Sprintf("%dx %s", qty, name)
	spaces := width - utf8.RuneCountInString(prefix) - utf8.RuneCountInString(total)
	if spaces < 1 {
		spaces = 1
	}
	return prefix + strings.Repeat(" ", spaces) + total
}
