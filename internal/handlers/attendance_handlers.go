package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"gym_backend/internal/clock"
	"gym_backend/internal/services"
	"gym_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AttendanceHandler holds the attendance service and the operational clock
// used to present record times in gym-local time.
type AttendanceHandler struct {
	attendanceService services.AttendanceService
	clk               *clock.Clock
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(as services.AttendanceService, clk *clock.Clock) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: as, clk: clk}
}

type checkInRequest struct {
	ClientID int64 `json:"client_id" binding:"required"`
}

type tokenCheckInRequest struct {
	Token string `json:"token" binding:"required"`
}

// RegisterEntry handles a manual front-desk entry. A repeated entry on the
// same local day is a conflict here: the desk needs to see it failed.
func (h *AttendanceHandler) RegisterEntry(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.attendanceService.CheckIn(req.ClientID)
	if err != nil {
		h.respondCheckInError(c, err, "RegisterEntry")
		return
	}
	if result.AlreadyRegistered {
		at := result.Record.RecordedAt.In(h.clk.Location()).Format("15:04")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeDuplicateEntry,
			fmt.Sprintf("Entry already registered today at %s.", at), ""))
		return
	}
	c.JSON(http.StatusCreated, result)
}

// RegisterEntryByToken handles a QR self check-in. A repeated scan is not
// an error for the kiosk: respond OK with the already_registered flag set.
func (h *AttendanceHandler) RegisterEntryByToken(c *gin.Context) {
	var req tokenCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.attendanceService.CheckInByToken(req.Token)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Check-in token not recognized.", ""))
			return
		}
		h.respondCheckInError(c, err, "RegisterEntryByToken")
		return
	}
	status := http.StatusCreated
	if result.AlreadyRegistered {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// RegisterExit records an exit. Exits are not gated on membership.
func (h *AttendanceHandler) RegisterExit(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	record, err := h.attendanceService.RegisterExit(req.ClientID)
	if err != nil {
		utils.LogError(err, "RegisterExit: Error from attendanceService.RegisterExit")
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to register exit.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, record)
}

// GetEntriesToday lists today's entries, newest first.
func (h *AttendanceHandler) GetEntriesToday(c *gin.Context) {
	day := h.clk.Today()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := h.clk.ParseDay(dateStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date format, expected YYYY-MM-DD.", err.Error()))
			return
		}
		day = parsed
	}

	entries, err := h.attendanceService.EntriesForDay(day)
	if err != nil {
		utils.LogError(err, "GetEntriesToday: Error from attendanceService.EntriesForDay")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch attendance.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": h.clk.FormatDay(day), "entries": entries, "total": len(entries)})
}

func (h *AttendanceHandler) respondCheckInError(c *gin.Context, err error, op string) {
	utils.LogError(err, op+": Error from attendance service")
	if errors.Is(err, services.ErrClientNotFound) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", err.Error()))
	} else if errors.Is(err, services.ErrNoActiveMembership) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeNoActiveMembership, "Client has no valid membership.", err.Error()))
	} else {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to register entry.", "Internal error"))
	}
}
