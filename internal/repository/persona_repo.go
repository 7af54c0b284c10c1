package repository

import (
	"errors"

	"clinic-scheduling-backend/internal/models"

	"gorm.io/gorm"
)

type PersonaRepository struct {
	db *gorm.DB
}

func NewPersonaRepo(db *gorm.DB) *PersonaRepository {
	return &PersonaRepository{db: db}
}

// GetPersonaByClinic retrieves the assistant persona of a clinic
func (r *PersonaRepository) GetPersonaByClinic(clinicID string) (*models.AssistantPersona, error) {
	var persona models.AssistantPersona
	err := r.db.Where("clinic_id = ?", clinicID).First(&persona).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &persona, nil
}

// UpsertPersona creates or replaces the assistant persona of a clinic.
// One persona per clinic, keyed by the unique clinic_id index.
func (r *PersonaRepository) UpsertPersona(persona *models.AssistantPersona) error {
	var existing models.AssistantPersona
	err := r.db.Where("clinic_id = ?", persona.ClinicID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.Create(persona).Error
		}
		return err
	}

	persona.ID = existing.ID
	persona.CreatedAt = existing.CreatedAt
	return r.db.Save(persona).Error
}
