package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/GHP-AppointmentService/internal/infra/storage/appointment"
)

var (
	monday  = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
)

type mockRepo struct {
	byBusiness map[string]*domain.Appointment
	byStorage  map[int64]*domain.Appointment
	byDoctor   []*domain.Appointment
	byDate     []*domain.Appointment
	byPatient  []*domain.Appointment

	cancelled []int64
}

func (m *mockRepo) GetByBusinessID(_ context.Context, id string) (*domain.Appointment, error) {
	if appt, ok := m.byBusiness[id]; ok {
		return appt, nil
	}
	return nil, apptRepo.ErrAppointmentNotFound
}

func (m *mockRepo) GetByStorageID(_ context.Context, id int64) (*domain.Appointment, error) {
	if appt, ok := m.byStorage[id]; ok {
		return appt, nil
	}
	return nil, apptRepo.ErrAppointmentNotFound
}

func (m *mockRepo) ListByDoctor(_ context.Context, _ string) ([]*domain.Appointment, error) {
	return m.byDoctor, nil
}

func (m *mockRepo) ListByPatient(_ context.Context, _ string) ([]*domain.Appointment, error) {
	return m.byPatient, nil
}

func (m *mockRepo) ListByDoctorAndDate(_ context.Context, _ string, _ time.Time) ([]*domain.Appointment, error) {
	return m.byDate, nil
}

func (m *mockRepo) Cancel(_ context.Context, id int64) error {
	m.cancelled = append(m.cancelled, id)
	return nil
}

type mockResolver struct {
	doctor  *domain.Doctor
	patient *domain.Patient
}

func (m *mockResolver) ResolveDoctor(_ context.Context, _ string) (*domain.Doctor, error) {
	return m.doctor, nil
}

func (m *mockResolver) ResolvePatient(_ context.Context, _ string) (*domain.Patient, error) {
	return m.patient, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func sampleAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:            42,
		AppointmentID: "A3001",
		DoctorID:      "D2001",
		PatientID:     "P1004",
		Date:          monday,
		StartTime:     "10:00",
		Status:        domain.StatusScheduled,
	}
}

func newService(repo *mockRepo) *Service {
	return NewService(repo, &mockResolver{
		doctor:  &domain.Doctor{ID: 1, DoctorID: "D2001", Name: "Dr. Smith"},
		patient: &domain.Patient{ID: 4, PatientID: "P1004", Name: "John Doe"},
	}, noopLogger{})
}

func TestGetByRef_BusinessID(t *testing.T) {
	repo := &mockRepo{byBusiness: map[string]*domain.Appointment{"A3001": sampleAppointment()}}
	svc := newService(repo)

	resp, err := svc.GetByRef(context.Background(), "A3001")

	require.NoError(t, err)
	assert.Equal(t, "A3001", resp.AppointmentID)
	assert.Equal(t, "2025-06-02", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
}

func TestGetByRef_StorageIDFallback(t *testing.T) {
	repo := &mockRepo{byStorage: map[int64]*domain.Appointment{42: sampleAppointment()}}
	svc := newService(repo)

	resp, err := svc.GetByRef(context.Background(), "42")

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
}

func TestGetByRef_NotFound(t *testing.T) {
	svc := newService(&mockRepo{})

	_, err := svc.GetByRef(context.Background(), "A9999")

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_Succeeds(t *testing.T) {
	repo := &mockRepo{byBusiness: map[string]*domain.Appointment{"A3001": sampleAppointment()}}
	svc := newService(repo)

	err := svc.Cancel(context.Background(), "A3001")

	require.NoError(t, err)
	assert.Equal(t, []int64{42}, repo.cancelled)
}

func TestCancel_RepeatedCancelSucceeds(t *testing.T) {
	cancelled := sampleAppointment()
	cancelled.Status = domain.StatusCancelled
	repo := &mockRepo{byBusiness: map[string]*domain.Appointment{"A3001": cancelled}}
	svc := newService(repo)

	require.NoError(t, svc.Cancel(context.Background(), "A3001"))
	require.NoError(t, svc.Cancel(context.Background(), "A3001"))

	assert.Len(t, repo.cancelled, 2)
}

func TestCancel_NotFound(t *testing.T) {
	svc := newService(&mockRepo{})

	err := svc.Cancel(context.Background(), "A9999")

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestListByPatient(t *testing.T) {
	repo := &mockRepo{byPatient: []*domain.Appointment{sampleAppointment()}}
	svc := newService(repo)

	resp, err := svc.ListByPatient(context.Background(), "P1004")

	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, "A3001", resp.Appointments[0].AppointmentID)
}

func TestDoctorDashboard(t *testing.T) {
	future := sampleAppointment()
	future.ID = 43
	future.Date = tuesday

	completed := sampleAppointment()
	completed.ID = 44
	completed.Status = domain.StatusCompleted

	cancelled := sampleAppointment()
	cancelled.ID = 45
	cancelled.Status = domain.StatusCancelled

	repo := &mockRepo{
		byDate:   []*domain.Appointment{sampleAppointment()},
		byDoctor: []*domain.Appointment{sampleAppointment(), future, completed, cancelled},
	}
	svc := newService(repo)

	resp, err := svc.DoctorDashboard(context.Background(), "D2001", monday)

	require.NoError(t, err)
	assert.Equal(t, "D2001", resp.DoctorID)
	assert.Len(t, resp.Today, 1)
	// Запланированные сегодня и позже считаются upcoming
	assert.Equal(t, 2, resp.UpcomingCount)
	assert.Equal(t, 1, resp.CompletedCount)
	assert.Equal(t, 1, resp.CancelledCount)
}
