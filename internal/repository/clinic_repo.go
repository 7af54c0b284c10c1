package repository

import (
	"errors"

	"clinic-scheduling-backend/internal/models"

	"gorm.io/gorm"
)

type ClinicRepository struct {
	db *gorm.DB
}

func NewClinicRepo(db *gorm.DB) *ClinicRepository {
	return &ClinicRepository{db: db}
}

// GetClinicByID retrieves an active clinic by ID
func (r *ClinicRepository) GetClinicByID(id string) (*models.Clinic, error) {
	var clinic models.Clinic
	err := r.db.Where("id = ? AND is_active = ?", id, true).
		Preload("OperatingHours").
		First(&clinic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &clinic, nil
}

// GetClinicsByUserID retrieves clinics a user belongs to, in membership
// insertion order. The active-clinic fallback picks the first entry, so
// the ordering here is load-bearing.
func (r *ClinicRepository) GetClinicsByUserID(userID string) ([]models.Clinic, error) {
	var clinics []models.Clinic
	err := r.db.
		Joins("INNER JOIN user_clinics ON user_clinics.clinic_id = clinics.id").
		Where("user_clinics.user_id = ? AND clinics.is_active = ?", userID, true).
		Order("user_clinics.created_at ASC, user_clinics.id ASC").
		Find(&clinics).Error
	return clinics, err
}

// CreateClinic creates a new clinic
func (r *ClinicRepository) CreateClinic(clinic *models.Clinic) error {
	return r.db.Create(clinic).Error
}

// UpdateClinic updates an existing clinic
func (r *ClinicRepository) UpdateClinic(clinic *models.Clinic) error {
	return r.db.Save(clinic).Error
}

// ReplaceOperatingHours replaces the full operating-hours set of a clinic
// in one transaction
func (r *ClinicRepository) ReplaceOperatingHours(clinicID string, hours []models.OperatingHour) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("clinic_id = ?", clinicID).
			Delete(&models.OperatingHour{}).Error; err != nil {
			return err
		}
		for i := range hours {
			hours[i].ClinicID = clinicID
		}
		if len(hours) == 0 {
			return nil
		}
		return tx.Create(&hours).Error
	})
}
