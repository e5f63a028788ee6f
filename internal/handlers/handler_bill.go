package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/bizledger/internal/core/domain"
	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/SscSPs/bizledger/internal/dto"
	"github.com/SscSPs/bizledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	billActionVoid   = "void"
	billActionDelete = "delete"
)

// billHandler handles HTTP requests related to vendor bills.
type billHandler struct {
	billService portssvc.BillSvcFacade
}

// RegisterBillRoutes registers bill routes on a workplace group.
func RegisterBillRoutes(rg *gin.RouterGroup, billService portssvc.BillSvcFacade) {
	h := &billHandler{billService: billService}

	bills := rg.Group("/bills")
	{
		bills.POST("", h.createBill)
		bills.GET("", h.listBills)
		bills.GET("/:id", h.getBill)
		bills.PATCH("/:id", h.updateBill)
		bills.DELETE("/:id", h.deleteOrVoidBill)
		bills.POST("/:id/payments", h.recordPayment)
		bills.GET("/:id/payments", h.listPayments)
	}
}

// createBill godoc
// @Summary Create a draft bill
// @Description Creates a vendor bill in draft status. Totals are computed from the lines.
// @Tags bills
// @Accept  json
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   bill body dto.CreateBillRequest true "Bill details"
// @Success 201 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/bills [post]
func (h *billHandler) createBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := currentUserID(c, logger)
	if !ok {
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), c.Param("workplace_id"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create bill")
		return
	}

	logger.Info("Bill created", slog.String("bill_id", bill.BillID), slog.String("bill_number", bill.BillNumber))
	c.JSON(http.StatusCreated, dto.ToBillResponse(bill))
}

// listBills godoc
// @Summary List bills
// @Tags bills
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   status query string false "Filter by status"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListBillsResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/bills [get]
func (h *billHandler) listBills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListBillsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if params.Status != nil {
		s := strings.ToLower(*params.Status)
		params.Status = &s
	}

	userID, ok := currentUserID(c, logger)
	if !ok {
		return
	}

	page, err := h.billService.ListBills(c.Request.Context(), c.Param("workplace_id"), userID, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list bills")
		return
	}
	c.JSON(http.StatusOK, page)
}

// getBill godoc
// @Summary Get a bill with its lines
// @Tags bills
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   id path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Bill not found"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/bills/{id} [get]
func (h *billHandler) getBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := currentUserID(c, logger)
	if !ok {
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), c.Param("workplace_id"), c.Param("id"), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve bill")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// updateBill godoc
// @Summary Update a bill
// @Description Partially updates a bill. Moving a draft to approved receives its stock lines into inventory.
// @Tags bills
// @Accept  json
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   id path string true "Bill ID"
// @Param   bill body dto.UpdateBillRequest true "Fields to change"
// @Success 200 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid input or transition"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Bill not found"
// @Failure 409 {object} map[string]string "Inventory conflict"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/bills/{id} [patch]
func (h *billHandler) updateBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if req.Status != nil {
		s := domain.BillStatus(strings.ToLower(string(*req.Status)))
		req.Status = &s
	}

	userID, ok := currentUserID(c, logger)
	if !ok {
		return
	}

	bill, err := h.billService.UpdateBill(c.Request.Context(), c.Param("workplace_id"), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update bill")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// deleteOrVoidBill godoc
// @Summary Void or delete a bill
// @Description With action=void (the default) the bill is voided and any received stock is reversed. With action=delete a draft bill without payments is removed.
// @Tags bills
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   id path string true "Bill ID"
// @Param   action query string false "void or delete" Enums(void, delete)
// @Success 200 {object} dto.VoidBillResponse "Voided, or a message when action=delete"
// @Failure 400 {object} map[string]string "Bill cannot be voided or deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Bill not found"
// @Failure 409 {object} map[string]string "Inventory conflict"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/bills/{id} [delete]
func (h *billHandler) deleteOrVoidBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")
	billID := c.Param("id")

	action := strings.ToLower(c.DefaultQuery("action", billActionVoid))
	if action != billActionVoid && action != billActionDelete {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be 'void' or 'delete'"})
		return
	}

	userID, ok := currentUserID(c, logger)
	if !ok {
		return
	}

	if action == billActionDelete {
		if err := h.billService.DeleteBill(c.Request.Context(), workplaceID, billID, userID); err != nil {
			respondWithError(c, logger, err, "Failed to delete bill")
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponse{Message: "Bill deleted"})
		return
	}

	bill, reversal, err := h.billService.VoidBill(c.Request.Context(), workplaceID, billID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to void bill")
		return
	}

	resp := dto.VoidBillResponse{
		Data:    dto.ToBillResponse(bill),
		Message: "Bill voided",
	}
	if reversal != nil {
		resp.Inventory = dto.InventoryReversalResponse{
			Reversed:       reversal.Reversed,
			JournalEntryID: reversal.JournalEntryID,
		}
		if reversal.Reversed {
			resp.Message = "Bill voided and inventory reversed"
		}
	}
	c.JSON(http.StatusOK, resp)
}

// recordPayment godoc
// @Summary Record a payment against a bill
// @Description Posts a payment journal (Dr accounts payable, Cr cash) and updates the bill's paid amount and status.
// @Tags bills
// @Accept  json
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   id path string true "Bill ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 200 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid amount or bill status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Bill not found"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/bills/{id}/payments [post]
func (h *billHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := currentUserID(c, logger)
	if !ok {
		return
	}

	bill, err := h.billService.RecordPayment(c.Request.Context(), c.Param("workplace_id"), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// listPayments godoc
// @Summary List payments made against a bill
// @Tags bills
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   id path string true "Bill ID"
// @Success 200 {array} dto.BillPaymentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Bill not found"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/bills/{id}/payments [get]
func (h *billHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := currentUserID(c, logger)
	if !ok {
		return
	}

	payments, err := h.billService.ListPayments(c.Request.Context(), c.Param("workplace_id"), c.Param("id"), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillPaymentResponses(payments))
}
