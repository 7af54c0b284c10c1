package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Professional represents a healthcare professional attached to a clinic
type Professional struct {
	ID        string `gorm:"type:char(36);primaryKey" json:"id"`
	ClinicID  string `gorm:"type:char(36);not null;index" json:"clinic_id"`
	Name      string `gorm:"size:255;not null" json:"name"`
	Specialty string `gorm:"size:100" json:"specialty,omitempty"`

	// Weekly availability: weekday range plus a daily time window
	AvailableFromWeekday int    `gorm:"not null;default:1" json:"available_from_weekday"` // 0=Sunday .. 6=Saturday
	AvailableToWeekday   int    `gorm:"not null;default:5" json:"available_to_weekday"`
	AvailableFromTime    string `gorm:"size:8;not null" json:"available_from_time"` // "HH:MM:SS"
	AvailableToTime      string `gorm:"size:8;not null" json:"available_to_time"`

	AppointmentPriceInCents int `gorm:"not null" json:"appointment_price_in_cents"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`

	// Relationships
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
}

// TableName specifies the table name for Professional model
func (Professional) TableName() string {
	return "professionals"
}

// BeforeCreate generates a UUID primary key when none is supplied
func (p *Professional) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
