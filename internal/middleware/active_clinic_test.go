package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-scheduling-backend/internal/models"
	"clinic-scheduling-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeClinicLister struct {
	summaries []models.ClinicSummary
	err       error
}

func (f *fakeClinicLister) GetUserClinicSummaries(userID string) ([]models.ClinicSummary, error) {
	return f.summaries, f.err
}

// fakeTenantVerifier mirrors the verifier's error taxonomy over a static
// membership set
type fakeTenantVerifier struct {
	memberships map[string]bool
}

func (f *fakeTenantVerifier) VerifyTenant(userID, activeClinicID string) (*service.TenantContext, error) {
	if userID == "" {
		return nil, service.ErrUnauthorized
	}
	if activeClinicID == "" {
		return nil, service.ErrNoActiveClinic
	}
	if !f.memberships[activeClinicID] {
		return nil, service.ErrAccessDenied
	}
	return &service.TenantContext{
		ClinicID: activeClinicID,
		User:     &models.User{ID: userID},
	}, nil
}

// authStub plays the role of AuthMiddleware for these tests
func authStub(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("userID", userID)
		}
		c.Next()
	}
}

func activeClinicRouter(userID string, lister clinicSummaryLister, tenants tenantVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami",
		authStub(userID),
		ActiveClinicMiddleware(lister),
		RequireActiveClinic(tenants),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"clinic_id": c.GetString("activeClinicID")})
		},
	)
	return r
}

func memberOf(clinicIDs ...string) *fakeTenantVerifier {
	memberships := make(map[string]bool, len(clinicIDs))
	for _, id := range clinicIDs {
		memberships[id] = true
	}
	return &fakeTenantVerifier{memberships: memberships}
}

func doSessionRequest(r *gin.Engine, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: ActiveClinicCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestActiveClinic_NoAuthenticatedUser(t *testing.T) {
	r := activeClinicRouter("", &fakeClinicLister{}, memberOf())

	w := doSessionRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestActiveClinic_NoMemberships(t *testing.T) {
	r := activeClinicRouter("user-1", &fakeClinicLister{}, memberOf())

	w := doSessionRequest(r, "")
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Empty(t, w.Header().Values("Set-Cookie"), "no cookie should be written without a resolution")
}

func TestActiveClinic_FirstMembershipSelected(t *testing.T) {
	lister := &fakeClinicLister{summaries: []models.ClinicSummary{
		{ID: "clinic-a", Name: "Alpha"},
		{ID: "clinic-b", Name: "Beta"},
	}}
	r := activeClinicRouter("user-1", lister, memberOf("clinic-a", "clinic-b"))

	w := doSessionRequest(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "clinic-a")

	// The resolved selection is persisted for the next request
	cookies := w.Header().Values("Set-Cookie")
	assert.NotEmpty(t, cookies)
	assert.Contains(t, cookies[0], ActiveClinicCookie+"=clinic-a")
}

func TestActiveClinic_CookieSelectionRespected(t *testing.T) {
	lister := &fakeClinicLister{summaries: []models.ClinicSummary{
		{ID: "clinic-a", Name: "Alpha"},
		{ID: "clinic-b", Name: "Beta"},
	}}
	r := activeClinicRouter("user-1", lister, memberOf("clinic-a", "clinic-b"))

	w := doSessionRequest(r, "clinic-b")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "clinic-b")

	// Cookie already holds the resolved id, nothing to rewrite
	assert.Empty(t, w.Header().Values("Set-Cookie"))
}

func TestActiveClinic_StaleCookieRewritten(t *testing.T) {
	lister := &fakeClinicLister{summaries: []models.ClinicSummary{
		{ID: "clinic-a", Name: "Alpha"},
	}}
	r := activeClinicRouter("user-1", lister, memberOf("clinic-a"))

	w := doSessionRequest(r, "clinic-that-was-left")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "clinic-a")

	cookies := w.Header().Values("Set-Cookie")
	assert.NotEmpty(t, cookies)
	assert.Contains(t, cookies[0], ActiveClinicCookie+"=clinic-a")
}

func TestActiveClinic_ResolvedClinicNoLongerAMember(t *testing.T) {
	// The clinic resolved from the cookie loses its membership between
	// resolution and verification (revocation race, another instance)
	lister := &fakeClinicLister{summaries: []models.ClinicSummary{
		{ID: "clinic-a", Name: "Alpha"},
	}}
	r := activeClinicRouter("user-1", lister, memberOf())

	w := doSessionRequest(r, "clinic-a")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestActiveClinic_ListerFailure(t *testing.T) {
	r := activeClinicRouter("user-1", &fakeClinicLister{err: assert.AnError}, memberOf())

	w := doSessionRequest(r, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
