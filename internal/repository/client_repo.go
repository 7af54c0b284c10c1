package repository

import (
	"errors"

	"clinic-scheduling-backend/internal/models"

	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepo(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// GetClientsByClinic retrieves all active clients of a clinic
func (r *ClientRepository) GetClientsByClinic(clinicID string) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.Where("clinic_id = ? AND is_active = ?", clinicID, true).
		Order("name ASC").
		Find(&clients).Error
	return clients, err
}

// GetClientByClinic retrieves a client scoped to its owning clinic
func (r *ClientRepository) GetClientByClinic(id, clinicID string) (*models.Client, error) {
	var client models.Client
	err := r.db.Where("id = ? AND clinic_id = ? AND is_active = ?", id, clinicID, true).
		First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// CreateClient creates a new client
func (r *ClientRepository) CreateClient(client *models.Client) error {
	return r.db.Create(client).Error
}

// UpdateClient updates an existing client
func (r *ClientRepository) UpdateClient(client *models.Client) error {
	return r.db.Save(client).Error
}

// SoftDeleteClient soft deletes a client within its clinic
func (r *ClientRepository) SoftDeleteClient(id, clinicID string) error {
	result := r.db.Model(&models.Client{}).
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

// UpsertClientByPhone creates or updates a client identified by
// (clinic_id, phone). The automation surface has no client ids, only the
// caller's phone number.
func (r *ClientRepository) UpsertClientByPhone(client *models.Client) (*models.Client, error) {
	var existing models.Client
	err := r.db.Where("clinic_id = ? AND phone = ?", client.ClinicID, client.Phone).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.db.Create(client).Error; err != nil {
				return nil, err
			}
			return client, nil
		}
		return nil, err
	}

	existing.Name = client.Name
	if client.Email != "" {
		existing.Email = client.Email
	}
	if client.Sex != "" {
		existing.Sex = client.Sex
	}
	existing.IsActive = true
	if err := r.db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}
