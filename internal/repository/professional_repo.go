package repository

import (
	"errors"

	"clinic-scheduling-backend/internal/models"

	"gorm.io/gorm"
)

type ProfessionalRepository struct {
	db *gorm.DB
}

func NewProfessionalRepo(db *gorm.DB) *ProfessionalRepository {
	return &ProfessionalRepository{db: db}
}

// GetProfessionalsByClinic retrieves all active professionals of a clinic
func (r *ProfessionalRepository) GetProfessionalsByClinic(clinicID string) ([]models.Professional, error) {
	var professionals []models.Professional
	err := r.db.Where("clinic_id = ? AND is_active = ?", clinicID, true).
		Order("name ASC").
		Find(&professionals).Error
	return professionals, err
}

// GetProfessionalByClinic retrieves a professional scoped to its owning clinic
func (r *ProfessionalRepository) GetProfessionalByClinic(id, clinicID string) (*models.Professional, error) {
	var professional models.Professional
	err := r.db.Where("id = ? AND clinic_id = ? AND is_active = ?", id, clinicID, true).
		First(&professional).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &professional, nil
}

// CreateProfessional creates a new professional
func (r *ProfessionalRepository) CreateProfessional(professional *models.Professional) error {
	return r.db.Create(professional).Error
}

// UpdateProfessional updates an existing professional
func (r *ProfessionalRepository) UpdateProfessional(professional *models.Professional) error {
	return r.db.Save(professional).Error
}

// SoftDeleteProfessional soft deletes a professional within its clinic
func (r *ProfessionalRepository) SoftDeleteProfessional(id, clinicID string) error {
	result := r.db.Model(&models.Professional{}).
		Where("id = ? AND clinic_id = ?", id, clinicID).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
