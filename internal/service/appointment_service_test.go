package service

import (
	"context"
	"testing"
	"time"

	"clinic-scheduling-backend/internal/cache"
	"clinic-scheduling-backend/internal/models"
	"clinic-scheduling-backend/internal/repository"
	"clinic-scheduling-backend/internal/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAppointmentStore struct {
	appointments map[string]*models.Appointment
	listCalls    int
}

func newFakeAppointmentStore() *fakeAppointmentStore {
	return &fakeAppointmentStore{appointments: make(map[string]*models.Appointment)}
}

func (f *fakeAppointmentStore) CreateAppointment(appointment *models.Appointment) error {
	if appointment.ID == "" {
		appointment.ID = uuid.NewString()
	}
	stored := *appointment
	f.appointments[appointment.ID] = &stored
	return nil
}

func (f *fakeAppointmentStore) GetAppointmentByClinic(id, clinicID string) (*models.Appointment, error) {
	appointment, ok := f.appointments[id]
	if !ok || appointment.ClinicID != clinicID {
		return nil, repository.ErrNotFound
	}
	copied := *appointment
	return &copied, nil
}

func (f *fakeAppointmentStore) GetAppointmentsByClinic(clinicID string, date *time.Time) ([]models.Appointment, error) {
	f.listCalls++
	var out []models.Appointment
	for _, appointment := range f.appointments {
		if appointment.ClinicID != clinicID {
			continue
		}
		if date != nil && !appointment.Date.Equal(*date) {
			continue
		}
		out = append(out, *appointment)
	}
	return out, nil
}

func (f *fakeAppointmentStore) UpdateAppointment(appointment *models.Appointment) error {
	existing, ok := f.appointments[appointment.ID]
	if !ok || existing.ClinicID != appointment.ClinicID {
		return repository.ErrNotFound
	}
	stored := *appointment
	f.appointments[appointment.ID] = &stored
	return nil
}

func (f *fakeAppointmentStore) UpdateAppointmentStatus(id, clinicID, status string) error {
	existing, ok := f.appointments[id]
	if !ok || existing.ClinicID != clinicID {
		return repository.ErrNotFound
	}
	existing.Status = status
	return nil
}

type fakeClientReader struct {
	// client id -> owning clinic
	clinics map[string]string
}

func (f *fakeClientReader) GetClientByClinic(id, clinicID string) (*models.Client, error) {
	if f.clinics[id] != clinicID {
		return nil, repository.ErrNotFound
	}
	return &models.Client{ID: id, ClinicID: clinicID, Name: "Test Client", Phone: "+5511999990000"}, nil
}

type fakeProfessionalReader struct {
	clinics map[string]string
}

func (f *fakeProfessionalReader) GetProfessionalByClinic(id, clinicID string) (*models.Professional, error) {
	if f.clinics[id] != clinicID {
		return nil, repository.ErrNotFound
	}
	return &models.Professional{ID: id, ClinicID: clinicID, Name: "Dr. Test"}, nil
}

type appointmentFixture struct {
	store   *fakeAppointmentStore
	cache   *cache.MemoryCache
	service *AppointmentService
}

func newAppointmentFixture() *appointmentFixture {
	store := newFakeAppointmentStore()
	viewCache := cache.NewMemoryCache()
	clients := &fakeClientReader{clinics: map[string]string{
		"client-1": "clinic-a",
		"client-2": "clinic-b",
	}}
	professionals := &fakeProfessionalReader{clinics: map[string]string{
		"prof-1": "clinic-a",
		"prof-2": "clinic-b",
	}}
	return &appointmentFixture{
		store:   store,
		cache:   viewCache,
		service: NewAppointmentService(store, clients, professionals, viewCache, nil),
	}
}

func createInput() *validation.AppointmentCreateInput {
	return &validation.AppointmentCreateInput{
		ClinicID:                "clinic-a",
		ClientID:                "client-1",
		ProfessionalID:          "prof-1",
		Date:                    "2026-09-15",
		Time:                    "14:30:00",
		AppointmentPriceInCents: 15000,
	}
}

func TestCreateAppointment_InitialStatusScheduled(t *testing.T) {
	fx := newAppointmentFixture()

	appointment, err := fx.service.CreateAppointment(context.Background(), createInput())
	require.NoError(t, err)
	require.NotNil(t, appointment)

	assert.Equal(t, models.AppointmentStatusScheduled, appointment.Status)
	assert.Equal(t, "clinic-a", appointment.ClinicID)
	assert.Equal(t, 15000, appointment.AppointmentPriceInCents)
	assert.Equal(t, "14:30:00", appointment.Time)
	assert.Len(t, fx.store.appointments, 1)
}

func TestCreateAppointment_ClientFromAnotherClinic(t *testing.T) {
	fx := newAppointmentFixture()

	in := createInput()
	in.ClientID = "client-2" // belongs to clinic-b

	appointment, err := fx.service.CreateAppointment(context.Background(), in)
	assert.Nil(t, appointment)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, fx.store.appointments, "nothing should be inserted")
}

func TestCreateAppointment_ProfessionalFromAnotherClinic(t *testing.T) {
	fx := newAppointmentFixture()

	in := createInput()
	in.ProfessionalID = "prof-2"

	_, err := fx.service.CreateAppointment(context.Background(), in)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, fx.store.appointments)
}

func TestUpdateAppointment_WrongClinicLeavesRecordUntouched(t *testing.T) {
	fx := newAppointmentFixture()

	appointment, err := fx.service.CreateAppointment(context.Background(), createInput())
	require.NoError(t, err)

	update := &validation.AppointmentUpdateInput{
		ProfessionalID:          "prof-1",
		Date:                    "2026-09-20",
		Time:                    "09:00:00",
		AppointmentPriceInCents: 20000,
	}

	updated, err := fx.service.UpdateAppointment(context.Background(), appointment.ID, "clinic-b", update)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	stored := fx.store.appointments[appointment.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "14:30:00", stored.Time)
	assert.Equal(t, 15000, stored.AppointmentPriceInCents)
}

func TestUpdateAppointment_Success(t *testing.T) {
	fx := newAppointmentFixture()

	appointment, err := fx.service.CreateAppointment(context.Background(), createInput())
	require.NoError(t, err)

	update := &validation.AppointmentUpdateInput{
		ProfessionalID:          "prof-1",
		Date:                    "2026-09-20",
		Time:                    "09:00:00",
		AppointmentPriceInCents: 20000,
	}

	updated, err := fx.service.UpdateAppointment(context.Background(), appointment.ID, "clinic-a", update)
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", updated.Time)
	assert.Equal(t, 20000, updated.AppointmentPriceInCents)
	assert.Equal(t, "2026-09-20", updated.Date.Format("2006-01-02"))
	assert.Equal(t, "clinic-a", updated.ClinicID)
}

func TestCancelAppointment_Idempotent(t *testing.T) {
	fx := newAppointmentFixture()

	appointment, err := fx.service.CreateAppointment(context.Background(), createInput())
	require.NoError(t, err)

	require.NoError(t, fx.service.CancelAppointment(context.Background(), appointment.ID, "clinic-a"))
	assert.Equal(t, models.AppointmentStatusCancelled, fx.store.appointments[appointment.ID].Status)

	// Cancelling again succeeds and the record stays cancelled
	require.NoError(t, fx.service.CancelAppointment(context.Background(), appointment.ID, "clinic-a"))
	assert.Equal(t, models.AppointmentStatusCancelled, fx.store.appointments[appointment.ID].Status)
}

func TestCancelAppointment_WrongClinic(t *testing.T) {
	fx := newAppointmentFixture()

	appointment, err := fx.service.CreateAppointment(context.Background(), createInput())
	require.NoError(t, err)

	err = fx.service.CancelAppointment(context.Background(), appointment.ID, "clinic-b")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, models.AppointmentStatusScheduled, fx.store.appointments[appointment.ID].Status)
}

func TestUpdateAppointmentStatus_InvalidStatus(t *testing.T) {
	fx := newAppointmentFixture()

	appointment, err := fx.service.CreateAppointment(context.Background(), createInput())
	require.NoError(t, err)

	err = fx.service.UpdateAppointmentStatus(context.Background(), appointment.ID, "clinic-a", "rescheduled")
	assert.Error(t, err)
	assert.Equal(t, models.AppointmentStatusScheduled, fx.store.appointments[appointment.ID].Status)
}

func TestUpdateAppointmentStatus_CompletedThenCancelled(t *testing.T) {
	fx := newAppointmentFixture()

	appointment, err := fx.service.CreateAppointment(context.Background(), createInput())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, fx.service.UpdateAppointmentStatus(ctx, appointment.ID, "clinic-a", models.AppointmentStatusCompleted))
	assert.Equal(t, models.AppointmentStatusCompleted, fx.store.appointments[appointment.ID].Status)

	// No transition graph beyond the enum: retroactive cancellation works
	require.NoError(t, fx.service.UpdateAppointmentStatus(ctx, appointment.ID, "clinic-a", models.AppointmentStatusCancelled))
	assert.Equal(t, models.AppointmentStatusCancelled, fx.store.appointments[appointment.ID].Status)
}

func TestListAppointments_ServesFromCacheUntilMutation(t *testing.T) {
	fx := newAppointmentFixture()
	ctx := context.Background()

	appointment, err := fx.service.CreateAppointment(ctx, createInput())
	require.NoError(t, err)

	first, err := fx.service.ListAppointments(ctx, "clinic-a", "")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, fx.store.listCalls)

	// Second read is served from the warm cache
	second, err := fx.service.ListAppointments(ctx, "clinic-a", "")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 1, fx.store.listCalls)

	// A mutation invalidates the cached view
	require.NoError(t, fx.service.CancelAppointment(ctx, appointment.ID, "clinic-a"))

	third, err := fx.service.ListAppointments(ctx, "clinic-a", "")
	require.NoError(t, err)
	require.Len(t, third, 1)
	assert.Equal(t, 2, fx.store.listCalls)
	assert.Equal(t, models.AppointmentStatusCancelled, third[0].Status)
}

func TestListAppointments_DateFilter(t *testing.T) {
	fx := newAppointmentFixture()
	ctx := context.Background()

	_, err := fx.service.CreateAppointment(ctx, createInput())
	require.NoError(t, err)

	other := createInput()
	other.Date = "2026-09-16"
	_, err = fx.service.CreateAppointment(ctx, other)
	require.NoError(t, err)

	filtered, err := fx.service.ListAppointments(ctx, "clinic-a", "2026-09-16")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "2026-09-16", filtered[0].Date.Format("2006-01-02"))

	_, err = fx.service.ListAppointments(ctx, "clinic-a", "16/09/2026")
	assert.Error(t, err)
}
