package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lengolf/pos-api/internal/application/service"
	"github.com/lengolf/pos-api/internal/domain/enum"
	"github.com/lengolf/pos-api/internal/presentation/http/dto/request"
	"github.com/lengolf/pos-api/internal/presentation/http/dto/response"
)

// SettlementHandler handles session settlement requests.
type SettlementHandler struct {
	settlementService *service.SettlementService
	receiptService    *service.ReceiptService
	printerService    *service.PrinterService
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(
	settlementService *service.SettlementService,
	receiptService *service.ReceiptService,
	printerService *service.PrinterService,
) *SettlementHandler {
	return &SettlementHandler{
		settlementService: settlementService,
		receiptService:    receiptService,
		printerService:    printerService,
	}
}

// Settle records payment allocations against an open session, closes it,
// and prints the receipt. A print failure after the ledger write still
// returns the settled transaction: the payment is recorded and the client
// should offer a reprint rather than resubmit.
func (h *SettlementHandler) Settle(c *gin.Context) {
	staffID := GetStaffID(c)
	if staffID == nil {
		response.Unauthorized(c, "Staff not authenticated")
		return
	}

	var req request.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.SettleInput{
		SessionID:  req.SessionID,
		StaffID:    *staffID,
		StaffName:  GetStaffName(c),
		CustomerID: req.CustomerID,
		BookingID:  req.BookingID,
	}
	for _, a := range req.Allocations {
		input.Allocations = append(input.Allocations, service.AllocationInput{
			Method:    a.Method,
			Amount:    a.Amount,
			Reference: a.Reference,
		})
	}
	for _, item := range req.Items {
		si := service.SettleItemInput{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Notes:     item.Notes,
		}
		if item.Discount != nil {
			si.Discount = &service.ItemDiscountInput{
				Title:  item.Discount.Title,
				Type:   item.Discount.Type,
				Value:  item.Discount.Value,
				Amount: item.Discount.Amount,
			}
		}
		input.Items = append(input.Items, si)
	}
	if req.Discount != nil {
		input.Discount = &service.ReceiptDiscountInput{
			Title:  req.Discount.Title,
			Amount: req.Discount.Amount,
		}
	}

	txn, err := h.settlementService.Settle(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	receipt, err := h.receiptService.BuildFromTransaction(c.Request.Context(), txn.ID, enum.ReceiptKindReceipt, nil)
	if err != nil {
		// The settlement itself is durable. Surface the transaction
		// anyway so the client can retry the print.
		response.Created(c, "Session settled but receipt could not be built", gin.H{
			"transaction": txn,
			"warning":     err.Error(),
		})
		return
	}

	if err := h.printerService.Print(receipt); err != nil {
		response.Created(c, "Session settled but receipt printing failed", gin.H{
			"transaction": txn,
			"receipt":     receipt,
			"warning":     err.Error(),
		})
		return
	}

	response.Created(c, "Session settled successfully", gin.H{
		"transaction": txn,
		"receipt":     receipt,
	})
}
