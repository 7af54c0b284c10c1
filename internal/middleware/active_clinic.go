package middleware

import (
	"errors"
	"net/http"
	"time"

	"clinic-scheduling-backend/internal/models"
	"clinic-scheduling-backend/internal/service"
	"clinic-scheduling-backend/pkg/logger"
	"clinic-scheduling-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ActiveClinicCookie stores the clinic a browser session operates against
const ActiveClinicCookie = "active_clinic"

// clinicSummaryLister is the slice of ClinicService this middleware needs
type clinicSummaryLister interface {
	GetUserClinicSummaries(userID string) ([]models.ClinicSummary, error)
}

// ActiveClinicMiddleware resolves the active clinic for the authenticated
// user: the cookie value wins when it names one of the user's clinics,
// otherwise the first membership is selected and the cookie rewritten.
// Must run after AuthMiddleware. A user with no clinics proceeds without
// an active clinic; tenant-scoped handlers then fail with 412.
func ActiveClinicMiddleware(clinics clinicSummaryLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
			c.Abort()
			return
		}

		summaries, err := clinics.GetUserClinicSummaries(userID.(string))
		if err != nil {
			logger.Get().Error().Err(err).Msg("Failed to load user clinics")
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to resolve active clinic")
			c.Abort()
			return
		}

		cookieClinicID, err := c.Cookie(ActiveClinicCookie)
		if err != nil {
			cookieClinicID = ""
		}

		activeClinic, activeClinicID := service.SelectActiveClinic(summaries, cookieClinicID)

		// Persist the resolved id when it differs from the cookie
		if activeClinicID != "" && activeClinicID != cookieClinicID {
			c.SetCookie(
				ActiveClinicCookie,
				activeClinicID,
				int(30*24*time.Hour.Seconds()),
				"/",
				"",
				false,
				true,
			)
		}

		if activeClinic != nil {
			c.Set("activeClinicID", activeClinicID)
			c.Set("activeClinic", *activeClinic)
		}

		c.Next()
	}
}

// tenantVerifier is the slice of TenantService this guard needs
type tenantVerifier interface {
	VerifyTenant(userID, activeClinicID string) (*service.TenantContext, error)
}

// RequireActiveClinic verifies the resolved active clinic against the
// user's memberships before any tenant-scoped handler runs. The cookie
// resolution above only consults memberships that existed at resolution
// time; re-verifying here keeps a revoked membership from riding a stale
// context value.
func RequireActiveClinic(tenants tenantVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, err := tenants.VerifyTenant(c.GetString("userID"), c.GetString("activeClinicID"))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUnauthorized):
				utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			case errors.Is(err, service.ErrNoActiveClinic):
				utils.ErrorResponse(c, http.StatusPreconditionFailed, "No active clinic selected")
			case errors.Is(err, service.ErrAccessDenied):
				utils.ErrorResponse(c, http.StatusForbidden, "Access denied")
			default:
				logger.Get().Error().Err(err).Msg("Failed to verify tenant")
				utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to verify tenant")
			}
			c.Abort()
			return
		}

		c.Set("tenantUser", tenant.User)
		c.Next()
	}
}
