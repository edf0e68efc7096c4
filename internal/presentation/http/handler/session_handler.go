package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lengolf/pos-api/internal/application/service"
	"github.com/lengolf/pos-api/internal/presentation/http/dto/response"
)

// SessionHandler exposes the settlement pipeline's session endpoints:
// inspecting a session, printing its pre-payment bill, and finding the
// settlement recorded against it.
type SessionHandler struct {
	sessionService     *service.SessionService
	transactionService *service.TransactionService
	receiptService     *service.ReceiptService
	printerService     *service.PrinterService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(
	sessionService *service.SessionService,
	transactionService *service.TransactionService,
	receiptService *service.ReceiptService,
	printerService *service.PrinterService,
) *SessionHandler {
	return &SessionHandler{
		sessionService:     sessionService,
		transactionService: transactionService,
		receiptService:     receiptService,
		printerService:     printerService,
	}
}

// Get handles getting a single table session
func (h *SessionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.sessionService.GetSession(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session retrieved successfully", session)
}

// PrintBill renders and prints the pre-payment bill for an open session.
func (h *SessionHandler) PrintBill(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	bill, err := h.receiptService.BuildBillFromSession(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.printerService.Print(bill); err != nil {
		response.OK(c, "Bill generated but printing failed", gin.H{
			"receipt": bill,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Bill printed successfully", gin.H{
		"receipt": bill,
	})
}

// GetSettlement returns the transaction recorded for a session, if settled.
func (h *SessionHandler) GetSettlement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	txn, err := h.transactionService.GetBySession(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settlement retrieved successfully", txn)
}
