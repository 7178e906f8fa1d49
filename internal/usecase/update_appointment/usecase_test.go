package update_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/GHP-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/GHP-AppointmentService/pkg/ptr"
	"github.com/m04kA/GHP-AppointmentService/pkg/types"
)

var (
	monday  = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
)

type mockResolver struct {
	doctor *domain.Doctor
	err    error
	calls  int
}

func (m *mockResolver) ResolveDoctor(_ context.Context, _ string) (*domain.Doctor, error) {
	m.calls++
	return m.doctor, m.err
}

type mockAppointmentRepo struct {
	stored    *domain.Appointment
	getErr    error
	others    []*domain.Appointment
	updateErr error
	updated   *domain.Appointment
	listCalls int
}

func (m *mockAppointmentRepo) GetByStorageID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	copied := *m.stored
	return &copied, nil
}

func (m *mockAppointmentRepo) ListByDoctorAndDate(_ context.Context, _ string, _ time.Time) ([]*domain.Appointment, error) {
	m.listCalls++
	return m.others, nil
}

func (m *mockAppointmentRepo) Update(_ context.Context, appt *domain.Appointment) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = appt
	return nil
}

type mockTxManager struct{}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testDoctor() *domain.Doctor {
	return &domain.Doctor{
		ID:                  1,
		DoctorID:            "D2001",
		Name:                "Dr. Smith",
		WorkingDays:         []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"},
		WorkingHours:        &domain.TimeRange{Start: "09:00", End: "17:00"},
		BreakTime:           &domain.TimeRange{Start: "12:00", End: "13:00"},
		SlotDurationMinutes: 30,
	}
}

func storedAppointment() *domain.Appointment {
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

func TestExecute_RemarksOnlySkipsAvailabilityCheck(t *testing.T) {
	repo := &mockAppointmentRepo{stored: storedAppointment()}
	resolver := &mockResolver{doctor: testDoctor()}
	uc := NewUseCase(repo, resolver, &mockTxManager{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ID:      42,
		Remarks: ptr.Ptr("follow-up in two weeks"),
	})

	require.NoError(t, err)
	assert.Equal(t, "follow-up in two weeks", *resp.Remarks)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)

	// Без переноса нет ни резолва врача, ни пересчёта слотов
	assert.Zero(t, resolver.calls)
	assert.Zero(t, repo.listCalls)
}

func TestExecute_StatusOnlySkipsAvailabilityCheck(t *testing.T) {
	repo := &mockAppointmentRepo{stored: storedAppointment()}
	resolver := &mockResolver{doctor: testDoctor()}
	uc := NewUseCase(repo, resolver, &mockTxManager{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ID:     42,
		Status: ptr.Ptr("completed"),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Zero(t, repo.listCalls)
}

func TestExecute_RescheduleToFreeSlot(t *testing.T) {
	repo := &mockAppointmentRepo{stored: storedAppointment()}
	uc := NewUseCase(repo, &mockResolver{doctor: testDoctor()}, &mockTxManager{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ID:        42,
		Date:      &tuesday,
		StartTime: ptr.Ptr(types.TimeString("11:00")),
	})

	require.NoError(t, err)
	assert.True(t, resp.Date.Equal(tuesday))
	assert.Equal(t, types.TimeString("11:00"), resp.StartTime)
	assert.Equal(t, 1, repo.listCalls)
}

func TestExecute_RescheduleToTakenSlot(t *testing.T) {
	repo := &mockAppointmentRepo{
		stored: storedAppointment(),
		others: []*domain.Appointment{
			{ID: 99, StartTime: "11:00", Status: domain.StatusScheduled},
		},
	}
	uc := NewUseCase(repo, &mockResolver{doctor: testDoctor()}, &mockTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ID:        42,
		Date:      &tuesday,
		StartTime: ptr.Ptr(types.TimeString("11:00")),
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	var slotErr *SlotUnavailableError
	require.ErrorAs(t, err, &slotErr)
	assert.NotContains(t, slotErr.Available, types.TimeString("11:00"))
}

func TestExecute_MoveWithinSameDayDoesNotBlockItself(t *testing.T) {
	stored := storedAppointment()
	repo := &mockAppointmentRepo{
		stored: stored,
		// Список на дату содержит сам переносимый приём
		others: []*domain.Appointment{stored},
	}
	uc := NewUseCase(repo, &mockResolver{doctor: testDoctor()}, &mockTxManager{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ID:        42,
		StartTime: ptr.Ptr(types.TimeString("10:30")),
	})

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:30"), resp.StartTime)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &mockAppointmentRepo{getErr: apptRepo.ErrAppointmentNotFound}
	uc := NewUseCase(repo, &mockResolver{doctor: testDoctor()}, &mockTxManager{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ID: 42, Remarks: ptr.Ptr("x")})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_LostRescheduleRace(t *testing.T) {
	repo := &mockAppointmentRepo{stored: storedAppointment(), updateErr: apptRepo.ErrSlotTaken}
	uc := NewUseCase(repo, &mockResolver{doctor: testDoctor()}, &mockTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ID:        42,
		StartTime: ptr.Ptr(types.TimeString("10:30")),
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := NewUseCase(&mockAppointmentRepo{stored: storedAppointment()},
		&mockResolver{doctor: testDoctor()}, &mockTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ID: 42, StartTime: ptr.Ptr(types.TimeString("nope"))})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ID: 42, Status: ptr.Ptr("rebooked")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
