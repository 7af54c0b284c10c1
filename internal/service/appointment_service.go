package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinic-scheduling-backend/internal/cache"
	"clinic-scheduling-backend/internal/events"
	"clinic-scheduling-backend/internal/metrics"
	"clinic-scheduling-backend/internal/models"
	"clinic-scheduling-backend/internal/validation"
	"clinic-scheduling-backend/pkg/logger"
)

const appointmentListTTL = 5 * time.Minute

// appointmentStore is the slice of AppointmentRepository the lifecycle
// manager needs
type appointmentStore interface {
	CreateAppointment(appointment *models.Appointment) error
	GetAppointmentByClinic(id, clinicID string) (*models.Appointment, error)
	GetAppointmentsByClinic(clinicID string, date *time.Time) ([]models.Appointment, error)
	UpdateAppointment(appointment *models.Appointment) error
	UpdateAppointmentStatus(id, clinicID, status string) error
}

// clientReader and professionalReader verify that referenced clients and
// professionals belong to the mutating clinic
type clientReader interface {
	GetClientByClinic(id, clinicID string) (*models.Client, error)
}

type professionalReader interface {
	GetProfessionalByClinic(id, clinicID string) (*models.Professional, error)
}

type AppointmentService struct {
	appointments  appointmentStore
	clients       clientReader
	professionals professionalReader
	viewCache     cache.Cache
	publisher     *events.Publisher
}

func NewAppointmentService(
	appointments appointmentStore,
	clients clientReader,
	professionals professionalReader,
	viewCache cache.Cache,
	publisher *events.Publisher,
) *AppointmentService {
	return &AppointmentService{
		appointments:  appointments,
		clients:       clients,
		professionals: professionals,
		viewCache:     viewCache,
		publisher:     publisher,
	}
}

// CreateAppointment books a new visit with status scheduled. The client
// and professional must belong to the clinic; a reference into another
// clinic fails with NotFound before anything is inserted.
func (s *AppointmentService) CreateAppointment(ctx context.Context, in *validation.AppointmentCreateInput) (*models.Appointment, error) {
	client, err := s.clients.GetClientByClinic(in.ClientID, in.ClinicID)
	if err != nil {
		return nil, err
	}
	professional, err := s.professionals.GetProfessionalByClinic(in.ProfessionalID, in.ClinicID)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	appointment := &models.Appointment{
		ClinicID:                in.ClinicID,
		ClientID:                in.ClientID,
		ProfessionalID:          in.ProfessionalID,
		Date:                    date,
		Time:                    in.Time,
		AppointmentPriceInCents: in.AppointmentPriceInCents,
		Status:                  models.AppointmentStatusScheduled,
	}

	if err := s.appointments.CreateAppointment(appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.afterMutation(ctx, "create", events.AppointmentCreated, appointment, client, professional)
	return appointment, nil
}

// UpdateAppointment reschedules an appointment. The ownership check runs
// before the mutating statement: an id owned by another clinic fails with
// NotFound and leaves the record untouched.
func (s *AppointmentService) UpdateAppointment(ctx context.Context, id, clinicID string, in *validation.AppointmentUpdateInput) (*models.Appointment, error) {
	appointment, err := s.appointments.GetAppointmentByClinic(id, clinicID)
	if err != nil {
		return nil, err
	}

	if _, err := s.professionals.GetProfessionalByClinic(in.ProfessionalID, clinicID); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	appointment.ProfessionalID = in.ProfessionalID
	appointment.Date = date
	appointment.Time = in.Time
	appointment.AppointmentPriceInCents = in.AppointmentPriceInCents

	if err := s.appointments.UpdateAppointment(appointment); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	s.afterMutation(ctx, "update", events.AppointmentUpdated, appointment, nil, nil)
	return appointment, nil
}

// CancelAppointment transitions an appointment to cancelled. Cancelling an
// already-cancelled appointment is a success and leaves the record in the
// same terminal state.
func (s *AppointmentService) CancelAppointment(ctx context.Context, id, clinicID string) error {
	appointment, err := s.appointments.GetAppointmentByClinic(id, clinicID)
	if err != nil {
		return err
	}

	if err := s.appointments.UpdateAppointmentStatus(id, clinicID, models.AppointmentStatusCancelled); err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	appointment.Status = models.AppointmentStatusCancelled
	s.afterMutation(ctx, "cancel", events.AppointmentCancelled, appointment, nil, nil)
	return nil
}

// UpdateAppointmentStatus applies any status from the enum once ownership
// is confirmed. No transition graph is enforced beyond the ownership
// check, so completed appointments may be cancelled retroactively.
func (s *AppointmentService) UpdateAppointmentStatus(ctx context.Context, id, clinicID, status string) error {
	if !models.ValidAppointmentStatus(status) {
		return fmt.Errorf("invalid status %q", status)
	}

	appointment, err := s.appointments.GetAppointmentByClinic(id, clinicID)
	if err != nil {
		return err
	}

	if err := s.appointments.UpdateAppointmentStatus(id, clinicID, status); err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	appointment.Status = status
	s.afterMutation(ctx, "status_update", events.AppointmentStatusChanged, appointment, nil, nil)
	return nil
}

// ListAppointments returns a clinic's appointments, serving from the view
// cache when warm
func (s *AppointmentService) ListAppointments(ctx context.Context, clinicID, dateStr string) ([]models.Appointment, error) {
	key := cache.AppointmentListKey(clinicID, dateStr)
	if cached, err := s.viewCache.Get(ctx, key); err == nil {
		var appointments []models.Appointment
		if err := json.Unmarshal(cached, &appointments); err == nil {
			return appointments, nil
		}
	}

	var date *time.Time
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		date = &parsed
	}

	appointments, err := s.appointments.GetAppointmentsByClinic(clinicID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	if body, err := json.Marshal(appointments); err == nil {
		_ = s.viewCache.Set(ctx, key, body, appointmentListTTL)
	}

	return appointments, nil
}

// afterMutation runs the side effects every successful mutation shares:
// dependent-view invalidation, event publication, metrics
func (s *AppointmentService) afterMutation(ctx context.Context, operation, routingKey string, appointment *models.Appointment, client *models.Client, professional *models.Professional) {
	if err := s.viewCache.Clear(ctx, cache.AppointmentListPattern(appointment.ClinicID)); err != nil {
		logger.Get().Error().Err(err).
			Str("clinic_id", appointment.ClinicID).
			Msg("Failed to invalidate appointment views")
	}

	event := events.AppointmentEvent{
		AppointmentID:  appointment.ID,
		ClinicID:       appointment.ClinicID,
		ClientID:       appointment.ClientID,
		ProfessionalID: appointment.ProfessionalID,
		Date:           appointment.Date.Format("2006-01-02"),
		Time:           appointment.Time,
		Status:         appointment.Status,
	}
	if client != nil {
		event.ClientName = client.Name
		event.ClientPhone = client.Phone
	}
	if professional != nil {
		event.ProfessionalName = professional.Name
	}
	s.publisher.Publish(ctx, routingKey, event)

	metrics.AppointmentMutations.WithLabelValues(operation).Inc()
}
