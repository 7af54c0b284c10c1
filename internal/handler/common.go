package handler

import (
	"errors"
	"net/http"

	"clinic-scheduling-backend/internal/repository"
	"clinic-scheduling-backend/internal/service"
	"clinic-scheduling-backend/pkg/logger"
	"clinic-scheduling-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// activeClinicID reads the clinic resolved by the active-clinic middleware
func activeClinicID(c *gin.Context) string {
	clinicID, _ := c.Get("activeClinicID")
	if clinicID == nil {
		return ""
	}
	return clinicID.(string)
}

// currentUserID reads the user set by the auth middleware
func currentUserID(c *gin.Context) string {
	userID, _ := c.Get("userID")
	if userID == nil {
		return ""
	}
	return userID.(string)
}

// respondError maps the service error taxonomy onto HTTP statuses.
// Unexpected errors are logged and surfaced as a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "Record not found")
	case errors.Is(err, service.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, service.ErrAccessDenied):
		utils.ErrorResponse(c, http.StatusForbidden, "Access denied")
	case errors.Is(err, service.ErrNoActiveClinic):
		utils.ErrorResponse(c, http.StatusPreconditionFailed, "No active clinic selected")
	default:
		logger.Get().Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unexpected error")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
