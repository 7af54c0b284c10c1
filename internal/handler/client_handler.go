package handler

import (
	"net/http"

	"clinic-scheduling-backend/internal/service"
	"clinic-scheduling-backend/internal/validation"
	"clinic-scheduling-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	clientService *service.ClientService
}

func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// GetClients retrieves the active clinic's clients
func (h *ClientHandler) GetClients(c *gin.Context) {
	clients, err := h.clientService.GetClients(activeClinicID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"clients": clients,
		"count":   len(clients),
	})
}

// CreateClient creates a client in the active clinic
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var in validation.ClientUpsertInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if fieldErrors := validation.Validate(&in); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return
	}

	client, err := h.clientService.CreateClient(activeClinicID(c), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Client created successfully",
		"client":  client,
	})
}

// UpdateClient updates a client of the active clinic
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var in validation.ClientUpsertInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if fieldErrors := validation.Validate(&in); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return
	}

	client, err := h.clientService.UpdateClient(c.Param("id"), activeClinicID(c), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Client updated successfully",
		"client":  client,
	})
}

// DeleteClient soft deletes a client of the active clinic
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	if err := h.clientService.DeleteClient(c.Param("id"), activeClinicID(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Client deleted successfully")
}
