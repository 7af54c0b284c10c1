package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Clinic represents a clinic (tenant) in the system
// All professionals, clients and appointments belong to exactly one clinic
type Clinic struct {
	ID            string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Niche         string    `gorm:"size:100" json:"niche,omitempty"`
	Phone         string    `gorm:"size:20" json:"phone,omitempty"`
	Email         string    `gorm:"size:255" json:"email,omitempty"`
	AddressStreet string    `gorm:"size:255" json:"address_street,omitempty"`
	AddressNumber string    `gorm:"size:20" json:"address_number,omitempty"`
	City          string    `gorm:"size:100" json:"city,omitempty"`
	State         string    `gorm:"size:50" json:"state,omitempty"`
	ZipCode       string    `gorm:"size:20" json:"zip_code,omitempty"`

	// Optional lunch break window, "HH:MM" zero-padded
	LunchStartTime *string `gorm:"size:5" json:"lunch_start_time,omitempty"`
	LunchEndTime   *string `gorm:"size:5" json:"lunch_end_time,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`

	// Relationships
	OperatingHours []OperatingHour `gorm:"foreignKey:ClinicID" json:"operating_hours,omitempty"`
}

// TableName specifies the table name for Clinic model
func (Clinic) TableName() string {
	return "clinics"
}

// BeforeCreate generates a UUID primary key when none is supplied
func (c *Clinic) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ClinicSummary is the minimal projection used for active-clinic selection
type ClinicSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Niche string `json:"niche,omitempty"`
}

// Summary returns the ClinicSummary projection of a clinic
func (c *Clinic) Summary() ClinicSummary {
	return ClinicSummary{ID: c.ID, Name: c.Name, Niche: c.Niche}
}

// OperatingHour represents one weekday opening window of a clinic
type OperatingHour struct {
	ID       string `gorm:"type:char(36);primaryKey" json:"id"`
	ClinicID string `gorm:"type:char(36);not null;index" json:"clinic_id"`
	Weekday  int    `gorm:"not null" json:"weekday"` // 0=Sunday .. 6=Saturday
	OpensAt  string `gorm:"size:5;not null" json:"opens_at"`  // "HH:MM"
	ClosesAt string `gorm:"size:5;not null" json:"closes_at"` // "HH:MM"

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName specifies the table name for OperatingHour model
func (OperatingHour) TableName() string {
	return "operating_hours"
}

// BeforeCreate generates a UUID primary key when none is supplied
func (o *OperatingHour) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
