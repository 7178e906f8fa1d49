package book_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/GHP-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/GHP-AppointmentService/internal/service/identity"
	"github.com/m04kA/GHP-AppointmentService/pkg/types"
)

var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

type mockResolver struct {
	doctor     *domain.Doctor
	doctorErr  error
	patient    *domain.Patient
	patientErr error
}

func (m *mockResolver) ResolveDoctor(_ context.Context, _ string) (*domain.Doctor, error) {
	return m.doctor, m.doctorErr
}

func (m *mockResolver) ResolvePatient(_ context.Context, _ string) (*domain.Patient, error) {
	return m.patient, m.patientErr
}

type mockAppointmentRepo struct {
	existing  []*domain.Appointment
	createErr error
	created   *domain.Appointment
	nextCode  string
}

func (m *mockAppointmentRepo) NextAppointmentCode(_ context.Context) (string, error) {
	if m.nextCode == "" {
		return "A3001", nil
	}
	return m.nextCode, nil
}

func (m *mockAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	appt.ID = 42
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	m.created = appt
	return appt, nil
}

func (m *mockAppointmentRepo) ListByDoctorAndDate(_ context.Context, _ string, _ time.Time) ([]*domain.Appointment, error) {
	return m.existing, nil
}

type mockTxManager struct{}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockNotifier struct {
	notified chan *domain.Appointment
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{notified: make(chan *domain.Appointment, 1)}
}

func (m *mockNotifier) AppointmentBooked(_ context.Context, _ *domain.Doctor, _ *domain.Patient, appt *domain.Appointment) {
	m.notified <- appt
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

func testPatient() *domain.Patient {
	return &domain.Patient{ID: 4, PatientID: "P1004", Name: "John Doe"}
}

func validRequest() *Request {
	return &Request{
		DoctorRef:  "D2001",
		PatientRef: "P1004",
		Date:       monday,
		StartTime:  "10:00",
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &mockAppointmentRepo{}
	notifier := newMockNotifier()
	uc := NewUseCase(repo, &mockResolver{doctor: testDoctor(), patient: testPatient()},
		&mockTxManager{}, notifier, noopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "A3001", resp.AppointmentID)
	assert.Equal(t, "D2001", resp.DoctorID)
	assert.Equal(t, "P1004", resp.PatientID)
	assert.Equal(t, "Dr. Smith", resp.DoctorName)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)

	// Приём сохранен с нормализованными бизнес-идентификаторами
	require.NotNil(t, repo.created)
	assert.Equal(t, "D2001", repo.created.DoctorID)
	assert.Equal(t, "P1004", repo.created.PatientID)

	// Уведомление ушло после успешного бронирования
	select {
	case appt := <-notifier.notified:
		assert.Equal(t, "A3001", appt.AppointmentID)
	case <-time.After(time.Second):
		t.Fatal("expected notification after booking")
	}
}

func TestExecute_WithoutRemarks(t *testing.T) {
	repo := &mockAppointmentRepo{}
	uc := NewUseCase(repo, &mockResolver{doctor: testDoctor(), patient: testPatient()},
		&mockTxManager{}, newMockNotifier(), noopLogger{})

	req := validRequest()
	req.Remarks = nil

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Nil(t, resp.Remarks)

	// Незаданные примечания доходят до хранилища как nil (NULL в БД),
	// а не пустая строка
	require.NotNil(t, repo.created)
	assert.Nil(t, repo.created.Remarks)
}

func TestExecute_ResolvesStorageIDsToBusinessIDs(t *testing.T) {
	repo := &mockAppointmentRepo{}
	uc := NewUseCase(repo, &mockResolver{doctor: testDoctor(), patient: testPatient()},
		&mockTxManager{}, newMockNotifier(), noopLogger{})

	req := validRequest()
	req.DoctorRef = "1"
	req.PatientRef = "4"

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "D2001", resp.DoctorID)
	assert.Equal(t, "P1004", resp.PatientID)
}

func TestExecute_SlotNotAvailable(t *testing.T) {
	repo := &mockAppointmentRepo{
		existing: []*domain.Appointment{
			{StartTime: "10:00", Status: domain.StatusScheduled},
		},
	}
	uc := NewUseCase(repo, &mockResolver{doctor: testDoctor(), patient: testPatient()},
		&mockTxManager{}, newMockNotifier(), noopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	var slotErr *SlotUnavailableError
	require.ErrorAs(t, err, &slotErr)
	assert.Equal(t, types.TimeString("10:00"), slotErr.Requested)
	assert.NotContains(t, slotErr.Available, types.TimeString("10:00"))
	assert.Contains(t, slotErr.Available, types.TimeString("10:30"))
}

func TestExecute_CancelledAppointmentFreesSlot(t *testing.T) {
	repo := &mockAppointmentRepo{
		existing: []*domain.Appointment{
			{StartTime: "10:00", Status: domain.StatusCancelled},
		},
	}
	uc := NewUseCase(repo, &mockResolver{doctor: testDoctor(), patient: testPatient()},
		&mockTxManager{}, newMockNotifier(), noopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
}

func TestExecute_OffGridTimeRejected(t *testing.T) {
	uc := NewUseCase(&mockAppointmentRepo{}, &mockResolver{doctor: testDoctor(), patient: testPatient()},
		&mockTxManager{}, newMockNotifier(), noopLogger{})

	req := validRequest()
	req.StartTime = "10:15"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_BreakTimeRejected(t *testing.T) {
	uc := NewUseCase(&mockAppointmentRepo{}, &mockResolver{doctor: testDoctor(), patient: testPatient()},
		&mockTxManager{}, newMockNotifier(), noopLogger{})

	req := validRequest()
	req.StartTime = "12:00"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_LostInsertRace(t *testing.T) {
	repo := &mockAppointmentRepo{createErr: apptRepo.ErrSlotTaken}
	uc := NewUseCase(repo, &mockResolver{doctor: testDoctor(), patient: testPatient()},
		&mockTxManager{}, newMockNotifier(), noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	var slotErr *SlotUnavailableError
	require.ErrorAs(t, err, &slotErr)
	assert.NotContains(t, slotErr.Available, types.TimeString("10:00"))
}

func TestExecute_DoctorNotFound(t *testing.T) {
	uc := NewUseCase(&mockAppointmentRepo{}, &mockResolver{doctorErr: identity.ErrDoctorNotFound},
		&mockTxManager{}, newMockNotifier(), noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestExecute_PatientNotFound(t *testing.T) {
	uc := NewUseCase(&mockAppointmentRepo{},
		&mockResolver{doctor: testDoctor(), patientErr: identity.ErrPatientNotFound},
		&mockTxManager{}, newMockNotifier(), noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := NewUseCase(&mockAppointmentRepo{}, &mockResolver{doctor: testDoctor(), patient: testPatient()},
		&mockTxManager{}, newMockNotifier(), noopLogger{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty doctorRef", func(r *Request) { r.DoctorRef = "" }},
		{"empty patientRef", func(r *Request) { r.PatientRef = "" }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty startTime", func(r *Request) { r.StartTime = "" }},
		{"malformed startTime", func(r *Request) { r.StartTime = "25:99" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_InternalErrorOnCreate(t *testing.T) {
	repo := &mockAppointmentRepo{createErr: errors.New("connection reset")}
	uc := NewUseCase(repo, &mockResolver{doctor: testDoctor(), patient: testPatient()},
		&mockTxManager{}, newMockNotifier(), noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
}
