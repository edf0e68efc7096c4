package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lengolf/pos-api/internal/application/service"
	"github.com/lengolf/pos-api/internal/domain/enum"
	"github.com/lengolf/pos-api/internal/presentation/http/dto/request"
	"github.com/lengolf/pos-api/internal/presentation/http/dto/response"
	"github.com/lengolf/pos-api/pkg/pagination"
)

// TransactionHandler handles transaction history and reprint requests.
type TransactionHandler struct {
	transactionService *service.TransactionService
	receiptService     *service.ReceiptService
	printerService     *service.PrinterService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	transactionService *service.TransactionService,
	receiptService *service.ReceiptService,
	printerService *service.PrinterService,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		receiptService:     receiptService,
		printerService:     printerService,
	}
}

// List handles listing settled transactions
func (h *TransactionHandler) List(c *gin.Context) {
	var filter request.TransactionFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	input := &service.ListTransactionsInput{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	if filter.Status != "" {
		status, err := enum.ParseTransactionStatus(filter.Status)
		if err != nil {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		input.Status = &status
	}

	if filter.StaffID != "" {
		staffID, err := uuid.Parse(filter.StaffID)
		if err == nil {
			input.StaffID = &staffID
		}
	}

	if filter.StartDate != "" {
		if t, err := time.Parse("2006-01-02", filter.StartDate); err == nil {
			input.StartDate = &t
		}
	}
	if filter.EndDate != "" {
		if t, err := time.Parse("2006-01-02", filter.EndDate); err == nil {
			// Make the end date inclusive
			end := t.Add(24*time.Hour - time.Nanosecond)
			input.EndDate = &end
		}
	}

	result, err := h.transactionService.ListTransactions(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// Get handles getting a single transaction with payments and items
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", txn)
}

// GetReceipt returns the receipt document for a transaction as JSON without
// printing it.
func (h *TransactionHandler) GetReceipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	kind := enum.ReceiptKind(c.DefaultQuery("kind", "receipt"))

	var taxInfo *service.TaxInvoiceInfo
	if kind == enum.ReceiptKindTaxInvoice {
		taxInfo = &service.TaxInvoiceInfo{
			BuyerName:       c.Query("buyer_name"),
			BuyerTaxID:      c.Query("buyer_tax_id"),
			ReplacesReceipt: c.Query("replaces_receipt"),
		}
	}

	receipt, err := h.receiptService.BuildFromTransaction(c.Request.Context(), id, kind, taxInfo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// Print reprints a settled transaction in the requested document kind.
// Rebuilds the document from stored rows, so a reprint is byte-identical to
// the original.
func (h *TransactionHandler) Print(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req request.PrintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var taxInfo *service.TaxInvoiceInfo
	if req.BuyerName != "" || req.BuyerTaxID != "" || req.ReplacesReceipt != "" {
		taxInfo = &service.TaxInvoiceInfo{
			BuyerName:       req.BuyerName,
			BuyerTaxID:      req.BuyerTaxID,
			ReplacesReceipt: req.ReplacesReceipt,
		}
	}

	receipt, err := h.receiptService.BuildFromTransaction(c.Request.Context(), id, enum.ReceiptKind(req.Kind), taxInfo)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.printerService.Print(receipt); err != nil {
		response.OK(c, "Receipt generated but printing failed", gin.H{
			"receipt": receipt,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{
		"receipt": receipt,
	})
}
