package reports

import (
	"context"
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
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
