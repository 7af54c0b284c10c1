package service

import (
	"fmt"

	"clinic-scheduling-backend/internal/models"
	"clinic-scheduling-backend/internal/repository"
	"clinic-scheduling-backend/internal/validation"
)

type ProfessionalService struct {
	professionalRepo *repository.ProfessionalRepository
	auditRepo        *repository.AuditRepository
}

func NewProfessionalService(
	professionalRepo *repository.ProfessionalRepository,
	auditRepo *repository.AuditRepository,
) *ProfessionalService {
	return &ProfessionalService{
		professionalRepo: professionalRepo,
		auditRepo:        auditRepo,
	}
}

// GetProfessionals retrieves the active professionals of a clinic
func (s *ProfessionalService) GetProfessionals(clinicID string) ([]models.Professional, error) {
	return s.professionalRepo.GetProfessionalsByClinic(clinicID)
}

// CreateProfessional creates a professional inside the active clinic
func (s *ProfessionalService) CreateProfessional(clinicID string, in *validation.ProfessionalInput, userID string) (*models.Professional, error) {
	professional := &models.Professional{
		ClinicID:                clinicID,
		Name:                    in.Name,
		Specialty:               in.Specialty,
		AvailableFromWeekday:    in.AvailableFromWeekday,
		AvailableToWeekday:      in.AvailableToWeekday,
		AvailableFromTime:       in.AvailableFromTime,
		AvailableToTime:         in.AvailableToTime,
		AppointmentPriceInCents: in.AppointmentPriceInCents,
		IsActive:                true,
	}

	if err := s.professionalRepo.CreateProfessional(professional); err != nil {
		return nil, fmt.Errorf("failed to create professional: %w", err)
	}

	details := fmt.Sprintf("Created professional: %s (clinic %s)", professional.Name, clinicID)
	_ = s.auditRepo.CreateAuditLog(&userID, "professional_create", details)

	return professional, nil
}

// UpdateProfessional updates a professional after the clinic-scoped
// ownership check
func (s *ProfessionalService) UpdateProfessional(id, clinicID string, in *validation.ProfessionalInput, userID string) (*models.Professional, error) {
	professional, err := s.professionalRepo.GetProfessionalByClinic(id, clinicID)
	if err != nil {
		return nil, err
	}

	professional.Name = in.Name
	professional.Specialty = in.Specialty
	professional.AvailableFromWeekday = in.AvailableFromWeekday
	professional.AvailableToWeekday = in.AvailableToWeekday
	professional.AvailableFromTime = in.AvailableFromTime
	professional.AvailableToTime = in.AvailableToTime
	professional.AppointmentPriceInCents = in.AppointmentPriceInCents

	if err := s.professionalRepo.UpdateProfessional(professional); err != nil {
		return nil, fmt.Errorf("failed to update professional: %w", err)
	}

	details := fmt.Sprintf("Updated professional: %s (ID: %s)", professional.Name, id)
	_ = s.auditRepo.CreateAuditLog(&userID, "professional_update", details)

	return professional, nil
}

// DeleteProfessional soft deletes a professional within its clinic
func (s *ProfessionalService) DeleteProfessional(id, clinicID string, userID string) error {
	if err := s.professionalRepo.SoftDeleteProfessional(id, clinicID); err != nil {
		return err
	}

	details := fmt.Sprintf("Deleted professional ID %s (clinic %s)", id, clinicID)
	_ = s.auditRepo.CreateAuditLog(&userID, "professional_delete", details)

	return nil
}
