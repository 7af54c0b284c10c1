package handler

import (
	"net/http"

	"clinic-scheduling-backend/internal/service"
	"clinic-scheduling-backend/internal/validation"
	"clinic-scheduling-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
	}
}

// ListAppointments retrieves the active clinic's appointments, optionally
// filtered by ?date=YYYY-MM-DD
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	appointments, err := h.appointmentService.ListAppointments(
		c.Request.Context(),
		activeClinicID(c),
		c.Query("date"),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// CreateAppointment books a new visit in the active clinic
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var in validation.AppointmentCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// The clinic comes from the session, never the payload
	in.ClinicID = activeClinicID(c)

	if fieldErrors := validation.Validate(&in); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return
	}

	appointment, err := h.appointmentService.CreateAppointment(c.Request.Context(), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     "Appointment created successfully",
		"appointment": appointment,
	})
}

// UpdateAppointment reschedules an appointment of the active clinic
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var in validation.AppointmentUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if fieldErrors := validation.Validate(&in); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return
	}

	appointment, err := h.appointmentService.UpdateAppointment(
		c.Request.Context(),
		c.Param("id"),
		activeClinicID(c),
		&in,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     "Appointment updated successfully",
		"appointment": appointment,
	})
}

// UpdateAppointmentStatus applies a status transition
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var in validation.AppointmentStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if fieldErrors := validation.Validate(&in); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return
	}

	err := h.appointmentService.UpdateAppointmentStatus(
		c.Request.Context(),
		c.Param("id"),
		activeClinicID(c),
		in.Status,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Appointment status updated successfully")
}

// CancelAppointment transitions an appointment to cancelled
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	err := h.appointmentService.CancelAppointment(
		c.Request.Context(),
		c.Param("id"),
		activeClinicID(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Appointment cancelled successfully")
}
