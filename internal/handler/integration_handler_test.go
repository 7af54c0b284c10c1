package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-scheduling-backend/internal/models"
	"clinic-scheduling-backend/internal/repository"
	"clinic-scheduling-backend/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAppointmentAutomation struct {
	created   *validation.AppointmentCreateInput
	cancelled []string
	err       error
}

func (f *fakeAppointmentAutomation) CreateAppointment(ctx context.Context, in *validation.AppointmentCreateInput) (*models.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = in
	return &models.Appointment{
		ID:       "appt-1",
		ClinicID: in.ClinicID,
		Status:   models.AppointmentStatusScheduled,
	}, nil
}

func (f *fakeAppointmentAutomation) CancelAppointment(ctx context.Context, id, clinicID string) error {
	if f.err != nil {
		return f.err
	}
	f.cancelled = append(f.cancelled, clinicID+"/"+id)
	return nil
}

type fakeClientAutomation struct {
	upserted *validation.ClientUpsertInput
	clinicID string
	err      error
}

func (f *fakeClientAutomation) UpsertClientByPhone(clinicID string, in *validation.ClientUpsertInput) (*models.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.clinicID = clinicID
	f.upserted = in
	return &models.Client{ID: "client-1", ClinicID: clinicID, Name: in.Name, Phone: in.Phone}, nil
}

func integrationRouter(appointments *fakeAppointmentAutomation, clients *fakeClientAutomation) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewIntegrationHandler(appointments, clients)

	r := gin.New()
	g := r.Group("/integrations/n8n")
	g.POST("/clinics/:clinicId/appointments", h.CreateAppointment)
	g.POST("/clinics/:clinicId/appointments/:appointmentId/cancel", h.CancelAppointment)
	g.POST("/clinics/:clinicId/clients", h.UpsertClient)
	return r
}

func TestIntegrationCancel_Success(t *testing.T) {
	appointments := &fakeAppointmentAutomation{}
	r := integrationRouter(appointments, &fakeClientAutomation{})

	req := httptest.NewRequest(http.MethodPost, "/integrations/n8n/clinics/clinic-a/appointments/appt-1/cancel", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true}`, w.Body.String())
	assert.Equal(t, []string{"clinic-a/appt-1"}, appointments.cancelled)
}

func TestIntegrationCancel_NotFound(t *testing.T) {
	appointments := &fakeAppointmentAutomation{err: repository.ErrNotFound}
	r := integrationRouter(appointments, &fakeClientAutomation{})

	req := httptest.NewRequest(http.MethodPost, "/integrations/n8n/clinics/clinic-b/appointments/appt-1/cancel", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.NotEmpty(t, resp["error"])
}

func TestIntegrationCreate_PathClinicWins(t *testing.T) {
	appointments := &fakeAppointmentAutomation{}
	r := integrationRouter(appointments, &fakeClientAutomation{})

	payload := map[string]any{
		"clinicId":                "5f7e6d5c-4b3a-2918-8f7e-6d5c4b3a2918",
		"clientId":                "3f8c1f60-22de-4b3e-b154-1c9be81f2d44",
		"professionalId":          "9a51c2ee-8a1f-4f0a-9e7d-0c3b5a6d7e88",
		"date":                    "2026-09-15",
		"time":                    "14:30:00",
		"appointmentPriceInCents": 15000,
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/integrations/n8n/clinics/0d4325bb-3a13-4e51-8f9a-7b2f0d6c1a55/appointments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, appointments.created)
	assert.Equal(t, "0d4325bb-3a13-4e51-8f9a-7b2f0d6c1a55", appointments.created.ClinicID)
}

func TestIntegrationCreate_ValidationDetails(t *testing.T) {
	appointments := &fakeAppointmentAutomation{}
	r := integrationRouter(appointments, &fakeClientAutomation{})

	payload := map[string]any{
		"clientId":                "not-a-uuid",
		"professionalId":          "9a51c2ee-8a1f-4f0a-9e7d-0c3b5a6d7e88",
		"date":                    "2026-09-15",
		"time":                    "14:30:00",
		"appointmentPriceInCents": 0,
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/integrations/n8n/clinics/0d4325bb-3a13-4e51-8f9a-7b2f0d6c1a55/appointments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, appointments.created)

	var resp struct {
		Success bool                    `json:"success"`
		Error   string                  `json:"error"`
		Details []validation.FieldError `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "validation failed", resp.Error)

	fields := make([]string, 0, len(resp.Details))
	for _, d := range resp.Details {
		fields = append(fields, d.Field)
	}
	assert.Contains(t, fields, "clientId")
	assert.Contains(t, fields, "appointmentPriceInCents")
}

func TestIntegrationUpsertClient(t *testing.T) {
	clients := &fakeClientAutomation{}
	r := integrationRouter(&fakeAppointmentAutomation{}, clients)

	body, err := json.Marshal(map[string]any{
		"name":  "Maria Lima",
		"phone": "+5511999990000",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/integrations/n8n/clinics/clinic-a/clients", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "clinic-a", clients.clinicID)
	require.NotNil(t, clients.upserted)
	assert.Equal(t, "Maria Lima", clients.upserted.Name)
}

func TestIntegrationUpsertClient_InvalidPayload(t *testing.T) {
	clients := &fakeClientAutomation{}
	r := integrationRouter(&fakeAppointmentAutomation{}, clients)

	body, err := json.Marshal(map[string]any{"name": "M"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/integrations/n8n/clinics/clinic-a/clients", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, clients.upserted)
}
