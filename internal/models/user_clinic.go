package models

import "time"

// UserClinic represents the many-to-many relationship between users and clinics
// This table controls which clinics a user has access to; the active-clinic
// fallback depends on insertion order, so reads must be ordered by created_at
type UserClinic struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(36);not null;index" json:"user_id"`
	ClinicID  string    `gorm:"type:char(36);not null;index" json:"clinic_id"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relationships
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
}

// TableName specifies the table name for UserClinic model
func (UserClinic) TableName() string {
	return "user_clinics"
}
