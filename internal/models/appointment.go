package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment status values. Scheduled is the initial state; completed and
// cancelled are terminal. Appointments are never physically deleted.
const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

// ValidAppointmentStatus reports whether s is a member of the status enum
func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment represents one scheduled visit
// ClinicID is immutable after creation; every mutating query carries it in
// the WHERE clause so cross-tenant writes fail instead of silently matching
type Appointment struct {
	ID             string `gorm:"type:char(36);primaryKey" json:"id"`
	ClinicID       string `gorm:"type:char(36);not null;index" json:"clinic_id"`
	ClientID       string `gorm:"type:char(36);not null;index" json:"client_id"`
	ProfessionalID string `gorm:"type:char(36);not null;index" json:"professional_id"`

	Date                    time.Time `gorm:"type:date;not null" json:"date"`
	Time                    string    `gorm:"size:8;not null" json:"time"` // "HH:MM:SS"
	AppointmentPriceInCents int       `gorm:"not null" json:"appointment_price_in_cents"`

	Status      string     `gorm:"type:enum('scheduled','completed','cancelled');default:'scheduled'" json:"status"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	// Relationships
	Clinic       Clinic       `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	Client       Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Professional Professional `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// BeforeCreate generates a UUID primary key when none is supplied
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
