package service

import (
	"fmt"

	"clinic-scheduling-backend/internal/models"
	"clinic-scheduling-backend/internal/repository"
	"clinic-scheduling-backend/internal/validation"
)

type PersonaService struct {
	personaRepo *repository.PersonaRepository
}

func NewPersonaService(personaRepo *repository.PersonaRepository) *PersonaService {
	return &PersonaService{personaRepo: personaRepo}
}

// GetPersona retrieves the assistant persona of a clinic
func (s *PersonaService) GetPersona(clinicID string) (*models.AssistantPersona, error) {
	return s.personaRepo.GetPersonaByClinic(clinicID)
}

// UpsertPersona creates or replaces a clinic's assistant persona. The JSON
// text fields have already passed the parseability refinement.
func (s *PersonaService) UpsertPersona(clinicID string, in *validation.PersonaInput) (*models.AssistantPersona, error) {
	persona := &models.AssistantPersona{
		ClinicID:              clinicID,
		Name:                  in.Name,
		Tone:                  in.Tone,
		PersonaRules:          in.PersonaRules,
		AppointmentFlowScript: in.AppointmentFlowScript,
		ForbiddenTopics:       in.ForbiddenTopics,
	}

	if err := s.personaRepo.UpsertPersona(persona); err != nil {
		return nil, fmt.Errorf("failed to upsert assistant persona: %w", err)
	}
	return persona, nil
}
