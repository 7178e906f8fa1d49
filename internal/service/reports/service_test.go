package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	"github.com/m04kA/GHP-AppointmentService/internal/service/identity"
)

var (
	from = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to   = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
)

type mockRepo struct {
	appointments []*domain.Appointment
}

func (m *mockRepo) ListByDate(_ context.Context, _ time.Time) ([]*domain.Appointment, error) {
	return m.appointments, nil
}

func (m *mockRepo) ListByDateRange(_ context.Context, _, _ time.Time) ([]*domain.Appointment, error) {
	return m.appointments, nil
}

type mockResolver struct {
	doctors  map[string]*domain.Doctor
	patients map[string]*domain.Patient
}

func (m *mockResolver) ResolveDoctor(_ context.Context, ref string) (*domain.Doctor, error) {
	if d, ok := m.doctors[ref]; ok {
		return d, nil
	}
	return nil, identity.ErrDoctorNotFound
}

func (m *mockResolver) ResolvePatient(_ context.Context, ref string) (*domain.Patient, error) {
	if p, ok := m.patients[ref]; ok {
		return p, nil
	}
	return nil, identity.ErrPatientNotFound
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func appt(doctorID, patientID string) *domain.Appointment {
	return &domain.Appointment{
		AppointmentID: "A3001",
		DoctorID:      doctorID,
		PatientID:     patientID,
		Date:          from,
		StartTime:     "10:00",
		Status:        domain.StatusScheduled,
	}
}

func newService(appointments []*domain.Appointment) *Service {
	return NewService(&mockRepo{appointments: appointments}, &mockResolver{
		doctors: map[string]*domain.Doctor{
			"D2001": {DoctorID: "D2001", Name: "Dr. Smith", Specialization: "Cardiology"},
			"D2002": {DoctorID: "D2002", Name: "Dr. Jones", Specialization: "Cardiology"},
			"D2003": {DoctorID: "D2003", Name: "Dr. Brown", Specialization: "Dermatology"},
		},
		patients: map[string]*domain.Patient{
			"P1004": {PatientID: "P1004", Name: "John Doe"},
			"P1005": {PatientID: "P1005", Name: "Jane Roe"},
		},
	}, noopLogger{})
}

func TestAppointmentsByDate(t *testing.T) {
	svc := newService([]*domain.Appointment{
		appt("D2001", "P1004"),
		appt("D2002", "P1005"),
	})

	resp, err := svc.AppointmentsByDate(context.Background(), from)

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "Dr. Smith", resp.Appointments[0].DoctorName)
	assert.Equal(t, "John Doe", resp.Appointments[0].PatientName)
}

func TestAppointmentsByDate_UnknownDoctorFallback(t *testing.T) {
	svc := newService([]*domain.Appointment{appt("D9999", "P1004")})

	resp, err := svc.AppointmentsByDate(context.Background(), from)

	require.NoError(t, err)
	assert.Equal(t, "Unknown", resp.Appointments[0].DoctorName)
}

func TestAppointmentsPerDoctor_SortedByCountDesc(t *testing.T) {
	svc := newService([]*domain.Appointment{
		appt("D2001", "P1004"),
		appt("D2002", "P1004"),
		appt("D2002", "P1005"),
	})

	resp, err := svc.AppointmentsPerDoctor(context.Background(), from, to)

	require.NoError(t, err)
	require.Len(t, resp.Doctors, 2)
	assert.Equal(t, "D2002", resp.Doctors[0].DoctorID)
	assert.Equal(t, 2, resp.Doctors[0].Count)
	assert.Equal(t, "Dr. Jones", resp.Doctors[0].DoctorName)
	assert.Equal(t, 1, resp.Doctors[1].Count)
}

func TestAppointmentsPerSpecialty_GroupsDoctors(t *testing.T) {
	svc := newService([]*domain.Appointment{
		appt("D2001", "P1004"),
		appt("D2002", "P1004"),
		appt("D2003", "P1005"),
	})

	resp, err := svc.AppointmentsPerSpecialty(context.Background(), from, to)

	require.NoError(t, err)
	require.Len(t, resp.Specialties, 2)
	assert.Equal(t, "Cardiology", resp.Specialties[0].Specialization)
	assert.Equal(t, 2, resp.Specialties[0].Count)
	assert.Equal(t, "Dermatology", resp.Specialties[1].Specialization)
}

func TestFrequentPatients_FiltersByMinCount(t *testing.T) {
	svc := newService([]*domain.Appointment{
		appt("D2001", "P1004"),
		appt("D2001", "P1004"),
		appt("D2001", "P1004"),
		appt("D2002", "P1005"),
	})

	resp, err := svc.FrequentPatients(context.Background(), from, to, 2)

	require.NoError(t, err)
	require.Len(t, resp.Patients, 1)
	assert.Equal(t, "P1004", resp.Patients[0].PatientID)
	assert.Equal(t, "John Doe", resp.Patients[0].PatientName)
	assert.Equal(t, 3, resp.Patients[0].Count)
}

func TestFrequentPatients_InvalidMinCount(t *testing.T) {
	svc := newService(nil)

	_, err := svc.FrequentPatients(context.Background(), from, to, 0)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListRange_InvalidRange(t *testing.T) {
	svc := newService(nil)

	_, err := svc.AppointmentsPerDoctor(context.Background(), to, from)

	assert.ErrorIs(t, err, ErrInvalidInput)
}
