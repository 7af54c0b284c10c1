package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client represents a patient/client of a clinic
// The integration surface upserts clients by (clinic_id, phone), which is
// how the WhatsApp automation identifies callers
type Client struct {
	ID       string `gorm:"type:char(36);primaryKey" json:"id"`
	ClinicID string `gorm:"type:char(36);not null;index:idx_clients_clinic_phone,priority:1" json:"clinic_id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"size:255" json:"email,omitempty"`
	Phone    string `gorm:"size:20;not null;index:idx_clients_clinic_phone,priority:2" json:"phone"`
	Sex      string `gorm:"type:enum('male','female');default:null" json:"sex,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`

	// Relationships
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
}

// TableName specifies the table name for Client model
func (Client) TableName() string {
	return "clients"
}

// BeforeCreate generates a UUID primary key when none is supplied
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
