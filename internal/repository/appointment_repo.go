package repository

import (
	"errors"
	"time"

	"clinic-scheduling-backend/internal/models"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// CreateAppointment inserts a new appointment
func (r *AppointmentRepository) CreateAppointment(appointment *models.Appointment) error {
	return r.db.Create(appointment).Error
}

// GetAppointmentByClinic retrieves an appointment scoped to its owning
// clinic. A record that exists under another clinic yields ErrNotFound.
func (r *AppointmentRepository) GetAppointmentByClinic(id, clinicID string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &appointment, nil
}

// GetAppointmentsByClinic retrieves appointments of a clinic, optionally
// filtered to a single date
func (r *AppointmentRepository) GetAppointmentsByClinic(clinicID string, date *time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	q := r.db.Where("clinic_id = ?", clinicID).
		Preload("Client").
		Preload("Professional").
		Order("date ASC, time ASC")
	if date != nil {
		q = q.Where("date = ?", date.Format("2006-01-02"))
	}
	err := q.Find(&appointments).Error
	return appointments, err
}

// UpdateAppointment applies the mutable fields of an appointment. The
// clinic_id predicate keeps the write inside the owning tenant even if the
// earlier ownership lookup raced with another request.
func (r *AppointmentRepository) UpdateAppointment(appointment *models.Appointment) error {
	return r.db.Model(&models.Appointment{}).
		Where("id = ? AND clinic_id = ?", appointment.ID, appointment.ClinicID).
		Updates(map[string]interface{}{
			"professional_id":            appointment.ProfessionalID,
			"date":                       appointment.Date,
			"time":                       appointment.Time,
			"appointment_price_in_cents": appointment.AppointmentPriceInCents,
		}).Error
}

// UpdateAppointmentStatus transitions an appointment's status within the
// owning clinic. RowsAffected is intentionally not inspected: re-applying
// a terminal status matches zero rows changed but is still a success, which
// is what makes cancellation idempotent.
func (r *AppointmentRepository) UpdateAppointmentStatus(id, clinicID, status string) error {
	updates := map[string]interface{}{"status": status}
	now := time.Now().UTC()
	switch status {
	case models.AppointmentStatusCancelled:
		updates["cancelled_at"] = &now
	case models.AppointmentStatusCompleted:
		updates["completed_at"] = &now
	}

	return r.db.Model(&models.Appointment{}).
		Where("id = ? AND clinic_id = ?", id, clinicID).
		Updates(updates).Error
}

// GetScheduledAppointmentsByDate retrieves every scheduled appointment on
// a given date across all clinics. Used by the reminder worker.
func (r *AppointmentRepository) GetScheduledAppointmentsByDate(date time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Where("date = ? AND status = ?", date.Format("2006-01-02"), models.AppointmentStatusScheduled).
		Preload("Client").
		Preload("Professional").
		Preload("Clinic").
		Order("clinic_id ASC, time ASC").
		Find(&appointments).Error
	return appointments, err
}
