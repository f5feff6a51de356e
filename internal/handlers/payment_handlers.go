package handlers

import (
	"errors"
	"net/http"

	"gym_backend/internal/services"
	"gym_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler holds the payment service.
type PaymentHandler struct {
	paymentService services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

// RecordPayment handles the pay-and-renew operation: one payment opens one
// membership period.
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req services.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.paymentService.RecordPaymentAndActivate(req)
	if err != nil {
		utils.LogError(err, "RecordPayment: Error from paymentService.RecordPaymentAndActivate")
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", err.Error()))
		} else if errors.Is(err, services.ErrPlanNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Plan not found.", err.Error()))
		} else if errors.Is(err, services.ErrMembershipStillActive) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeMembershipStillActive, "Client already has a valid membership.", err.Error()))
		} else if errors.Is(err, services.ErrNoPriorPlan) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeNoPriorPlan, "Client has no prior plan to renew; specify a plan.", err.Error()))
		} else if errors.Is(err, services.ErrInvalidPaymentMethod) || errors.Is(err, services.ErrPaymentValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record payment.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetPaymentsToday handles the cashbox daily view: today's payments plus
// per-method totals.
func (h *PaymentHandler) GetPaymentsToday(c *gin.Context) {
	daily, err := h.paymentService.PaymentsToday()
	if err != nil {
		utils.LogError(err, "GetPaymentsToday: Error from paymentService.PaymentsToday")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch today's payments.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, daily)
}
