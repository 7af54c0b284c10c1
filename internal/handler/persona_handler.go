package handler

import (
	"net/http"

	"clinic-scheduling-backend/internal/service"
	"clinic-scheduling-backend/internal/validation"
	"clinic-scheduling-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PersonaHandler struct {
	personaService *service.PersonaService
}

func NewPersonaHandler(personaService *service.PersonaService) *PersonaHandler {
	return &PersonaHandler{
		personaService: personaService,
	}
}

// GetPersona retrieves the active clinic's assistant persona
func (h *PersonaHandler) GetPersona(c *gin.Context) {
	persona, err := h.personaService.GetPersona(activeClinicID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, persona)
}

// UpsertPersona creates or replaces the active clinic's assistant persona
func (h *PersonaHandler) UpsertPersona(c *gin.Context) {
	var in validation.PersonaInput
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

	persona, err := h.personaService.UpsertPersona(activeClinicID(c), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Assistant persona saved successfully",
		"persona": persona,
	})
}
