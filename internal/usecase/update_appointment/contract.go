package update_appointment

import (
	"context"
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
)

// IdentifierResolver интерфейс резолвера идентификаторов
type IdentifierResolver interface {
	ResolveDoctor(ctx context.Context, ref string) (*domain.Doctor, error)
}

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	GetByStorageID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByDoctorAndDate(ctx context.Context, doctorID string, date time.Time) ([]*domain.Appointment, error)
	Update(ctx context.Context, appt *domain.Appointment) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
