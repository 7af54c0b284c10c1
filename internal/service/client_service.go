package service

import (
	"fmt"

	"clinic-scheduling-backend/internal/models"
	"clinic-scheduling-backend/internal/repository"
	"clinic-scheduling-backend/internal/validation"
)

type ClientService struct {
	clientRepo *repository.ClientRepository
}

func NewClientService(clientRepo *repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// GetClients retrieves the active clients of a clinic
func (s *ClientService) GetClients(clinicID string) ([]models.Client, error) {
	return s.clientRepo.GetClientsByClinic(clinicID)
}

// CreateClient creates a client inside the active clinic
func (s *ClientService) CreateClient(clinicID string, in *validation.ClientUpsertInput) (*models.Client, error) {
	client := &models.Client{
		ClinicID: clinicID,
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Sex:      in.Sex,
		IsActive: true,
	}
	if err := s.clientRepo.CreateClient(client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// UpdateClient updates a client after the clinic-scoped ownership check
func (s *ClientService) UpdateClient(id, clinicID string, in *validation.ClientUpsertInput) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByClinic(id, clinicID)
	if err != nil {
		return nil, err
	}

	client.Name = in.Name
	client.Email = in.Email
	client.Phone = in.Phone
	client.Sex = in.Sex

	if err := s.clientRepo.UpdateClient(client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

// DeleteClient soft deletes a client within its clinic
func (s *ClientService) DeleteClient(id, clinicID string) error {
	return s.clientRepo.SoftDeleteClient(id, clinicID)
}

// UpsertClientByPhone creates or refreshes a client keyed by phone number.
// This is how the WhatsApp automation registers callers.
func (s *ClientService) UpsertClientByPhone(clinicID string, in *validation.ClientUpsertInput) (*models.Client, error) {
	client := &models.Client{
		ClinicID: clinicID,
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Sex:      in.Sex,
		IsActive: true,
	}
	upserted, err := s.clientRepo.UpsertClientByPhone(client)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert client: %w", err)
	}
	return upserted, nil
}
