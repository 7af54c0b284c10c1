package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serviceTokenRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/integrations/n8n/ping", ServiceTokenAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func doIntegrationRequest(r *gin.Engine, token string, withHeader bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/integrations/n8n/ping", nil)
	if withHeader {
		req.Header.Set(ServiceTokenHeader, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestServiceTokenAuth_MissingHeader(t *testing.T) {
	r := serviceTokenRouter("super-secret")

	w := doIntegrationRequest(r, "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "service token")
}

func TestServiceTokenAuth_WrongToken(t *testing.T) {
	r := serviceTokenRouter("super-secret")

	w := doIntegrationRequest(r, "wrong-secret", true)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServiceTokenAuth_CaseSensitive(t *testing.T) {
	r := serviceTokenRouter("super-secret")

	w := doIntegrationRequest(r, "Super-Secret", true)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServiceTokenAuth_ExactMatchPasses(t *testing.T) {
	r := serviceTokenRouter("super-secret")

	w := doIntegrationRequest(r, "super-secret", true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServiceTokenAuth_PaddedTokenRejected(t *testing.T) {
	r := serviceTokenRouter("super-secret")

	// Equality is exact; a padded value is a different string
	w := doIntegrationRequest(r, "  super-secret  ", true)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServiceTokenAuth_UnconfiguredSecretClosesSurface(t *testing.T) {
	r := serviceTokenRouter("")

	// Even an empty token must not pass an empty secret
	assert.Equal(t, http.StatusUnauthorized, doIntegrationRequest(r, "", true).Code)
	assert.Equal(t, http.StatusUnauthorized, doIntegrationRequest(r, "anything", true).Code)
}
