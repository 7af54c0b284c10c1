package middleware

import (
	"net/http"

	"clinic-scheduling-backend/internal/metrics"
	"clinic-scheduling-backend/pkg/logger"
	"clinic-scheduling-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ServiceTokenHeader carries the shared secret on automation requests
const ServiceTokenHeader = "X-Service-Token"

// ServiceTokenAuth gates the /integrations endpoints behind the static
// shared secret configured at deployment. A single trusted caller class
// (the n8n workflow engine), exact string equality, no rotation.
func ServiceTokenAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(ServiceTokenHeader)

		// Exact string equality, nothing looser. An unconfigured secret
		// closes the surface entirely rather than letting every request
		// through.
		if secret == "" || token != secret {
			metrics.ServiceTokenRejections.Inc()
			logger.Get().Warn().
				Str("path", c.Request.URL.Path).
				Msg("Rejected integration request with missing or invalid service token")
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or missing service token")
			c.Abort()
			return
		}

		c.Next()
	}
}
