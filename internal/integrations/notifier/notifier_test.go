package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
)

type sentEmail struct {
	toName, toEmail, subject, body string
}

type mockEmailSender struct {
	sent []sentEmail
	err  error
}

func (m *mockEmailSender) Send(_ context.Context, toName, toEmail, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentEmail{toName, toEmail, subject, body})
	return nil
}

type mockSMSSender struct {
	sent []string
	err  error
}

func (m *mockSMSSender) Send(_ context.Context, toNumber, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, toNumber)
	return nil
}

type mockNotificationRepo struct {
	records []*domain.Notification
	err     error
}

func (m *mockNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, n)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func sampleBooking() (*domain.Doctor, *domain.Patient, *domain.Appointment) {
	doctor := &domain.Doctor{
		DoctorID: "D2001",
		Name:     "Dr. Smith",
		Email:    "smith@clinic.example",
		Phone:    "+15550001111",
	}
	patient := &domain.Patient{
		PatientID: "P1004",
		Name:      "John Doe",
		Email:     "john@home.example",
		Phone:     "+15550002222",
	}
	appt := &domain.Appointment{
		AppointmentID: "A3001",
		DoctorID:      "D2001",
		PatientID:     "P1004",
		Date:          time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		Status:        domain.StatusScheduled,
	}
	return doctor, patient, appt
}

func TestAppointmentBooked_NotifiesBothParties(t *testing.T) {
	email := &mockEmailSender{}
	sms := &mockSMSSender{}
	repo := &mockNotificationRepo{}
	svc := NewService(email, sms, repo, noopLogger{})

	doctor, patient, appt := sampleBooking()
	svc.AppointmentBooked(context.Background(), doctor, patient, appt)

	require.Len(t, email.sent, 2)
	assert.Equal(t, "smith@clinic.example", email.sent[0].toEmail)
	assert.Equal(t, "john@home.example", email.sent[1].toEmail)
	assert.Contains(t, email.sent[1].body, "Dr. Smith")
	assert.Contains(t, email.sent[1].body, "2025-06-02")
	assert.Contains(t, email.sent[1].body, "10:00")

	require.Len(t, sms.sent, 2)

	// Каждая отправка журналируется
	assert.Len(t, repo.records, 4)
}

func TestAppointmentBooked_SkipsBlankContacts(t *testing.T) {
	email := &mockEmailSender{}
	sms := &mockSMSSender{}
	repo := &mockNotificationRepo{}
	svc := NewService(email, sms, repo, noopLogger{})

	doctor, patient, appt := sampleBooking()
	doctor.Email = ""
	patient.Phone = "   "
	svc.AppointmentBooked(context.Background(), doctor, patient, appt)

	require.Len(t, email.sent, 1)
	assert.Equal(t, "john@home.example", email.sent[0].toEmail)
	require.Len(t, sms.sent, 1)
	assert.Equal(t, "+15550001111", sms.sent[0])
	assert.Len(t, repo.records, 2)
}

func TestNotify_SendFailureDoesNotPanicOrPropagate(t *testing.T) {
	email := &mockEmailSender{err: errors.New("rate limited")}
	repo := &mockNotificationRepo{}
	svc := NewService(email, &mockSMSSender{}, repo, noopLogger{})

	svc.Notify(context.Background(), domain.ChannelEmail, domain.RecipientPatient,
		"John Doe", "john@home.example", "hello")

	// Журнальная запись создаётся даже при неуспешной доставке
	assert.Len(t, repo.records, 1)
}

func TestNotify_JournalFailureStillAttemptsDelivery(t *testing.T) {
	email := &mockEmailSender{}
	repo := &mockNotificationRepo{err: errors.New("connection refused")}
	svc := NewService(email, &mockSMSSender{}, repo, noopLogger{})

	svc.Notify(context.Background(), domain.ChannelEmail, domain.RecipientPatient,
		"John Doe", "john@home.example", "hello")

	assert.Len(t, email.sent, 1)
}
