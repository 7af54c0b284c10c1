package handler

import (
	"net/http"

	"clinic-scheduling-backend/internal/service"
	"clinic-scheduling-backend/internal/validation"
	"clinic-scheduling-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ProfessionalHandler struct {
	professionalService *service.ProfessionalService
}

func NewProfessionalHandler(professionalService *service.ProfessionalService) *ProfessionalHandler {
	return &ProfessionalHandler{
		professionalService: professionalService,
	}
}

// GetProfessionals retrieves the active clinic's professionals
func (h *ProfessionalHandler) GetProfessionals(c *gin.Context) {
	professionals, err := h.professionalService.GetProfessionals(activeClinicID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"professionals": professionals,
		"count":         len(professionals),
	})
}

// bindProfessional parses and validates the professional payload,
// including the availability-window refinement
func bindProfessional(c *gin.Context) (*validation.ProfessionalInput, bool) {
	var in validation.ProfessionalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	if fieldErrors := validation.Validate(&in); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return nil, false
	}
	if fieldErrors := in.Refine(); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return nil, false
	}
	return &in, true
}

// CreateProfessional creates a professional in the active clinic
func (h *ProfessionalHandler) CreateProfessional(c *gin.Context) {
	in, ok := bindProfessional(c)
	if !ok {
		return
	}

	professional, err := h.professionalService.CreateProfessional(activeClinicID(c), in, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":      "Professional created successfully",
		"professional": professional,
	})
}

// UpdateProfessional updates a professional of the active clinic
func (h *ProfessionalHandler) UpdateProfessional(c *gin.Context) {
	in, ok := bindProfessional(c)
	if !ok {
		return
	}

	professional, err := h.professionalService.UpdateProfessional(c.Param("id"), activeClinicID(c), in, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":      "Professional updated successfully",
		"professional": professional,
	})
}

// DeleteProfessional soft deletes a professional of the active clinic
func (h *ProfessionalHandler) DeleteProfessional(c *gin.Context) {
	if err := h.professionalService.DeleteProfessional(c.Param("id"), activeClinicID(c), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Professional deleted successfully")
}
