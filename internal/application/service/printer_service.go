package service

import (
	"github.com/lengolf/pos-api/internal/domain/entity"
	"github.com/lengolf/pos-api/internal/domain/enum"
	"github.com/lengolf/pos-api/pkg/apperror"
	"github.com/lengolf/pos-api/pkg/printer"
	"github.com/sirupsen/logrus"
)

// PrinterService renders ReceiptData to the device protocol and delivers it
// to the configured thermal printer. The ledger is always durable before
// anything reaches this service, so a failure here is strictly a transport
// problem: the caller offers a reprint, never a re-settlement.
type PrinterService struct {
	printer     printer.Printer
	encoder     *printer.Encoder
	width       int
	printerType string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, printerType string, width int) *PrinterService {
	if width <= 0 {
		width = 42
	}
	return &PrinterService{
		printer:     p,
		encoder:     printer.NewEncoder(4),
		width:       width,
		printerType: printerType,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// Print renders the receipt document and writes it to the printer.
func (s *PrinterService) Print(data *entity.ReceiptData) error {
	lines := RenderLines(data, s.width)
	payload := s.encoder.Encode(lines)

	if err := s.printer.Print(payload); err != nil {
		logrus.WithFields(logrus.Fields{
			"receipt_number": data.ReceiptNumber,
			"kind":           data.Kind,
			"bytes":          len(payload),
		}).WithError(err).Warn("receipt print failed")
		return apperror.NewTransportError(err)
	}

	return nil
}

// TestPrint sends a short test document to the printer. Returns the receipt
// data so the handler can return it as JSON when the printer is disabled.
func (s *PrinterService) TestPrint() (*entity.ReceiptData, error) {
	data := &entity.ReceiptData{
		Kind: enum.ReceiptKindReceipt,
		Header: entity.ReceiptHeader{
			BusinessName: "PRINTER TEST",
			AddressLine1: "Test Address",
		},
		ReceiptNumber: "TEST-001",
		Date:          "0000-00-00 00:00",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 10.00},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 5.00},
		},
		SubtotalExclVat: 18.69,
		VatAmount:       1.31,
		Total:           20.00,
		Payments:        []entity.ReceiptPayment{{Label: "Cash", Amount: 20.00}},
		FooterMessage:   "Test page",
	}

	if err := s.Print(data); err != nil {
		return data, err
	}
	return data, nil
}
