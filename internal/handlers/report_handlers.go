package handlers

import (
	"net/http"
	"strconv"

	"gym_backend/internal/services"
	"gym_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the membership service for front-desk reports.
type ReportHandler struct {
	membershipService services.MembershipService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(ms services.MembershipService) *ReportHandler {
	return &ReportHandler{membershipService: ms}
}

// GetUpcomingExpirations lists effective-active memberships ending within
// the next N days (default 3).
func (h *ReportHandler) GetUpcomingExpirations(c *gin.Context) {
	withinDays, _ := strconv.Atoi(c.DefaultQuery("days", "3"))

	expiring, err := h.membershipService.UpcomingExpirations(withinDays)
	if err != nil {
		utils.LogError(err, "GetUpcomingExpirations: Error from membershipService.UpcomingExpirations")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch upcoming expirations.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": expiring, "total": len(expiring)})
}
