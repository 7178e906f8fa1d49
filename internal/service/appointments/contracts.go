package appointments

import (
	"context"
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	GetByStorageID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByBusinessID(ctx context.Context, appointmentID string) (*domain.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]*domain.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]*domain.Appointment, error)
	ListByDoctorAndDate(ctx context.Context, doctorID string, date time.Time) ([]*domain.Appointment, error)
	Cancel(ctx context.Context, id int64) error
}

// IdentifierResolver интерфейс резолвера идентификаторов
type IdentifierResolver interface {
	ResolveDoctor(ctx context.Context, ref string) (*domain.Doctor, error)
	ResolvePatient(ctx context.Context, ref string) (*domain.Patient, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
