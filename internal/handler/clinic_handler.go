package handler

import (
	"net/http"
	"time"

	"clinic-scheduling-backend/internal/middleware"
	"clinic-scheduling-backend/internal/models"
	"clinic-scheduling-backend/internal/service"
	"clinic-scheduling-backend/internal/validation"
	"clinic-scheduling-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ClinicHandler struct {
	clinicService *service.ClinicService
}

func NewClinicHandler(clinicService *service.ClinicService) *ClinicHandler {
	return &ClinicHandler{
		clinicService: clinicService,
	}
}

// GetClinics retrieves the clinics the user belongs to, flagging the
// currently active one
func (h *ClinicHandler) GetClinics(c *gin.Context) {
	clinics, err := h.clinicService.GetUserClinics(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"clinics":          clinics,
		"active_clinic_id": activeClinicID(c),
		"count":            len(clinics),
	})
}

type ClinicRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	Niche         string  `json:"niche" binding:"omitempty,max=100"`
	Phone         string  `json:"phone" binding:"omitempty,max=20"`
	Email         string  `json:"email" binding:"omitempty,email"`
	AddressStreet string  `json:"address_street" binding:"omitempty,max=255"`
	AddressNumber string  `json:"address_number" binding:"omitempty,max=20"`
	City          string  `json:"city" binding:"omitempty,max=100"`
	State         string  `json:"state" binding:"omitempty,max=50"`
	ZipCode       string  `json:"zip_code" binding:"omitempty,max=20"`
	LunchStart    *string `json:"lunch_start_time" binding:"omitempty,datetime=15:04"`
	LunchEnd      *string `json:"lunch_end_time" binding:"omitempty,datetime=15:04"`
}

func (r *ClinicRequest) toModel() *models.Clinic {
	return &models.Clinic{
		Name:           r.Name,
		Niche:          r.Niche,
		Phone:          r.Phone,
		Email:          r.Email,
		AddressStreet:  r.AddressStreet,
		AddressNumber:  r.AddressNumber,
		City:           r.City,
		State:          r.State,
		ZipCode:        r.ZipCode,
		LunchStartTime: r.LunchStart,
		LunchEndTime:   r.LunchEnd,
		IsActive:       true,
	}
}

// CreateClinic onboards a new clinic owned by the current user
func (h *ClinicHandler) CreateClinic(c *gin.Context) {
	var req ClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Lunch break must be an ordered pair when present
	if req.LunchStart != nil && req.LunchEnd != nil &&
		!validation.TimeRangeOrdered(*req.LunchStart, *req.LunchEnd) {
		utils.ValidationErrorResponse(c, []validation.FieldError{
			{Field: "lunch_end_time", Message: "end time must be after start time"},
		})
		return
	}

	clinic := req.toModel()
	if err := h.clinicService.CreateClinic(clinic, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Clinic created successfully",
		"clinic":  clinic,
	})
}

// UpdateClinic updates the clinic named in the path; only the active
// clinic may be updated, which is how membership is enforced
func (h *ClinicHandler) UpdateClinic(c *gin.Context) {
	clinicID := c.Param("id")
	if clinicID != activeClinicID(c) {
		utils.ErrorResponse(c, http.StatusForbidden, "Access denied")
		return
	}

	var req ClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.LunchStart != nil && req.LunchEnd != nil &&
		!validation.TimeRangeOrdered(*req.LunchStart, *req.LunchEnd) {
		utils.ValidationErrorResponse(c, []validation.FieldError{
			{Field: "lunch_end_time", Message: "end time must be after start time"},
		})
		return
	}

	clinic := req.toModel()
	clinic.ID = clinicID
	if err := h.clinicService.UpdateClinic(clinic, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Clinic updated successfully",
		"clinic":  clinic,
	})
}

// ReplaceOperatingHours replaces the active clinic's weekly schedule
func (h *ClinicHandler) ReplaceOperatingHours(c *gin.Context) {
	clinicID := c.Param("id")
	if clinicID != activeClinicID(c) {
		utils.ErrorResponse(c, http.StatusForbidden, "Access denied")
		return
	}

	var in validation.OperatingHoursInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if fieldErrors := validation.Validate(&in); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return
	}
	if fieldErrors := in.Refine(); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return
	}

	if err := h.clinicService.ReplaceOperatingHours(clinicID, &in, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Operating hours updated successfully")
}

type SwitchClinicRequest struct {
	ClinicID string `json:"clinic_id" binding:"required,uuid4"`
}

// SwitchActiveClinic changes the active-clinic cookie after a membership
// check
func (h *ClinicHandler) SwitchActiveClinic(c *gin.Context) {
	var req SwitchClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	clinic, err := h.clinicService.SwitchActiveClinic(currentUserID(c), req.ClinicID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(
		middleware.ActiveClinicCookie,
		clinic.ID,
		int(30*24*time.Hour.Seconds()),
		"/",
		"",
		false,
		true,
	)

	utils.SuccessResponse(c, gin.H{
		"message": "Active clinic switched",
		"clinic":  clinic.Summary(),
	})
}
