package service

import (
	"context"
	"time"

	"clinic-scheduling-backend/internal/events"
	"clinic-scheduling-backend/internal/models"
	"clinic-scheduling-backend/pkg/logger"
)

// reminderStore is the slice of AppointmentRepository the reminder worker
// needs
type reminderStore interface {
	GetScheduledAppointmentsByDate(date time.Time) ([]models.Appointment, error)
}

// ReminderService publishes next-day reminder events that the WhatsApp
// automation turns into messages
type ReminderService struct {
	appointments reminderStore
	publisher    *events.Publisher
	interval     time.Duration
}

func NewReminderService(appointments reminderStore, publisher *events.Publisher) *ReminderService {
	return &ReminderService{
		appointments: appointments,
		publisher:    publisher,
		interval:     time.Hour,
	}
}

// Start begins the background worker that publishes reminders
func (w *ReminderService) Start(ctx context.Context) {
	log := logger.Get()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", w.interval).Msg("Reminder worker started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Reminder worker stopped")
			return
		case <-ticker.C:
			w.publishReminders(ctx)
		}
	}
}

// publishReminders publishes one reminder event per scheduled appointment
// on the next calendar day. Consumers de-duplicate by appointment id, so
// re-publishing within the same day is harmless.
func (w *ReminderService) publishReminders(ctx context.Context) {
	log := logger.Get()

	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	appointments, err := w.appointments.GetScheduledAppointmentsByDate(tomorrow)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch appointments for reminders")
		return
	}

	for i := range appointments {
		a := &appointments[i]
		w.publisher.Publish(ctx, events.AppointmentReminder, events.AppointmentEvent{
			AppointmentID:    a.ID,
			ClinicID:         a.ClinicID,
			ClientID:         a.ClientID,
			ClientName:       a.Client.Name,
			ClientPhone:      a.Client.Phone,
			ProfessionalID:   a.ProfessionalID,
			ProfessionalName: a.Professional.Name,
			Date:             a.Date.Format("2006-01-02"),
			Time:             a.Time,
			Status:           a.Status,
		})
	}

	if len(appointments) > 0 {
		log.Info().Int("count", len(appointments)).Msg("Published appointment reminders")
	}
}
