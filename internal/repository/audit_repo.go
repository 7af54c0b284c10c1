package repository

import (
	"clinic-scheduling-backend/internal/models"

	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateAuditLog appends one audit entry. Callers discard the error:
// auditing never blocks the action being audited.
func (r *AuditRepository) CreateAuditLog(userID *string, action string, details string) error {
	log := &models.AuditLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	}
	return r.db.Create(log).Error
}
