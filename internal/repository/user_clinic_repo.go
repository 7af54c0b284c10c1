package repository

import (
	"clinic-scheduling-backend/internal/models"

	"gorm.io/gorm"
)

type UserClinicRepository struct {
	db *gorm.DB
}

func NewUserClinicRepo(db *gorm.DB) *UserClinicRepository {
	return &UserClinicRepository{db: db}
}

// AssignUserToClinic assigns a user to a clinic
func (r *UserClinicRepository) AssignUserToClinic(userID, clinicID string) error {
	membership := &models.UserClinic{
		UserID:   userID,
		ClinicID: clinicID,
	}
	// Use FirstOrCreate to avoid duplicate entries
	return r.db.Where("user_id = ? AND clinic_id = ?", userID, clinicID).
		FirstOrCreate(membership).Error
}

// RemoveUserFromClinic removes a user's access to a clinic
func (r *UserClinicRepository) RemoveUserFromClinic(userID, clinicID string) error {
	return r.db.Where("user_id = ? AND clinic_id = ?", userID, clinicID).
		Delete(&models.UserClinic{}).Error
}

// GetUserClinicIDs retrieves all clinic IDs a user has access to, in
// membership insertion order
func (r *UserClinicRepository) GetUserClinicIDs(userID string) ([]string, error) {
	var clinicIDs []string
	err := r.db.Model(&models.UserClinic{}).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Pluck("clinic_id", &clinicIDs).Error
	return clinicIDs, err
}

// UserHasAccessToClinic checks if a user has access to a specific clinic
func (r *UserClinicRepository) UserHasAccessToClinic(userID, clinicID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserClinic{}).
		Where("user_id = ? AND clinic_id = ?", userID, clinicID).
		Count(&count).Error
	return count > 0, err
}
