package handler

import (
	"context"
	"errors"
	"net/http"

	"clinic-scheduling-backend/internal/models"
	"clinic-scheduling-backend/internal/repository"
	"clinic-scheduling-backend/internal/validation"
	"clinic-scheduling-backend/pkg/logger"
	"clinic-scheduling-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// appointmentAutomation is the slice of AppointmentService the
// integration surface needs
type appointmentAutomation interface {
	CreateAppointment(ctx context.Context, in *validation.AppointmentCreateInput) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, id, clinicID string) error
}

// clientAutomation is the slice of ClientService the integration surface
// needs
type clientAutomation interface {
	UpsertClientByPhone(clinicID string, in *validation.ClientUpsertInput) (*models.Client, error)
}

// IntegrationHandler serves the service-token-gated endpoints called by
// the workflow automation (n8n). Unlike the session surface, the clinic
// id comes from the path; the gate middleware has already authenticated
// the caller.
type IntegrationHandler struct {
	appointments appointmentAutomation
	clients      clientAutomation
}

func NewIntegrationHandler(appointments appointmentAutomation, clients clientAutomation) *IntegrationHandler {
	return &IntegrationHandler{
		appointments: appointments,
		clients:      clients,
	}
}

// CancelAppointment cancels an appointment on behalf of the automation.
// A clinicId that does not own the appointment fails without mutating it.
func (h *IntegrationHandler) CancelAppointment(c *gin.Context) {
	clinicID := c.Param("clinicId")
	appointmentID := c.Param("appointmentId")

	err := h.appointments.CancelAppointment(c.Request.Context(), appointmentID, clinicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusBadRequest, "Appointment not found")
			return
		}
		logger.Get().Error().Err(err).
			Str("clinic_id", clinicID).
			Str("appointment_id", appointmentID).
			Msg("Integration cancel failed")
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to cancel appointment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CreateAppointment books a visit on behalf of the automation
func (h *IntegrationHandler) CreateAppointment(c *gin.Context) {
	var in validation.AppointmentCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// The path clinic wins over anything in the payload
	in.ClinicID = c.Param("clinicId")

	if fieldErrors := validation.Validate(&in); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return
	}

	appointment, err := h.appointments.CreateAppointment(c.Request.Context(), &in)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusBadRequest, "Client or professional not found in clinic")
			return
		}
		logger.Get().Error().Err(err).
			Str("clinic_id", in.ClinicID).
			Msg("Integration booking failed")
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to create appointment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"appointment": appointment,
	})
}

// UpsertClient registers or refreshes a client identified by phone on
// behalf of the automation. The clinic id is merged from the path before
// validation.
func (h *IntegrationHandler) UpsertClient(c *gin.Context) {
	var in validation.ClientUpsertInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if fieldErrors := validation.Validate(&in); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return
	}

	client, err := h.clients.UpsertClientByPhone(c.Param("clinicId"), &in)
	if err != nil {
		logger.Get().Error().Err(err).
			Str("clinic_id", c.Param("clinicId")).
			Msg("Integration client upsert failed")
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to upsert client")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"client":  client,
	})
}
