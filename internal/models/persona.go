package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssistantPersona configures the AI assistant that handles WhatsApp
// bookings for a clinic. The rules, flow script and forbidden topics are
// stored as free-form JSON text; validation only asserts they parse
type AssistantPersona struct {
	ID       string `gorm:"type:char(36);primaryKey" json:"id"`
	ClinicID string `gorm:"type:char(36);not null;uniqueIndex" json:"clinic_id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Tone     string `gorm:"size:50" json:"tone,omitempty"`

	PersonaRules          string `gorm:"type:text" json:"persona_rules,omitempty"`
	AppointmentFlowScript string `gorm:"type:text" json:"appointment_flow_script,omitempty"`
	ForbiddenTopics       string `gorm:"type:text" json:"forbidden_topics,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	// Relationships
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
}

// TableName specifies the table name for AssistantPersona model
func (AssistantPersona) TableName() string {
	return "assistant_personas"
}

// BeforeCreate generates a UUID primary key when none is supplied
func (p *AssistantPersona) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
