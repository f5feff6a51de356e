package handlers

import (
	"errors"
	"net/http"

	"gym_backend/internal/services"
	"gym_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CashRegisterHandler holds the cash register service.
type CashRegisterHandler struct {
	registerService services.CashRegisterService
}

// NewCashRegisterHandler creates a new CashRegisterHandler.
func NewCashRegisterHandler(rs services.CashRegisterService) *CashRegisterHandler {
	return &CashRegisterHandler{registerService: rs}
}

// CloseRegister handles the end-of-day reconciliation. The operator is the
// authenticated user.
func (h *CashRegisterHandler) CloseRegister(c *gin.Context) {
	var req services.CloseRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	operatorID := c.GetInt64("userID")

	closing, err := h.registerService.CloseRegister(operatorID, req)
	if err != nil {
		utils.LogError(err, "CloseRegister: Error from registerService.CloseRegister")
		if errors.Is(err, services.ErrRegisterAlreadyClosed) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeAlreadyClosed, "Cash register already closed for this date.", err.Error()))
		} else if errors.Is(err, services.ErrClosingValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to close register.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, closing)
}

// GetClosing fetches a stored closing by date.
func (h *CashRegisterHandler) GetClosing(c *gin.Context) {
	date := c.Param("date")

	closing, err := h.registerService.GetClosing(date)
	if err != nil {
		utils.LogError(err, "GetClosing: Error from registerService.GetClosing")
		if errors.Is(err, services.ErrClosingNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "No closing stored for this date.", err.Error()))
		} else if errors.Is(err, services.ErrClosingValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch closing.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, closing)
}

// GetClosings lists stored closings, optionally bounded by from/to dates.
func (h *CashRegisterHandler) GetClosings(c *gin.Context) {
	closings, err := h.registerService.ListClosings(c.Query("from"), c.Query("to"))
	if err != nil {
		utils.LogError(err, "GetClosings: Error from registerService.ListClosings")
		if errors.Is(err, services.ErrClosingValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch closings.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, closings)
}
