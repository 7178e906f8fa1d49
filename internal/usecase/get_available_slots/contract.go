package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
)

// IdentifierResolver интерфейс резолвера идентификаторов врачей
type IdentifierResolver interface {
	ResolveDoctor(ctx context.Context, ref string) (*domain.Doctor, error)
}

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	// ListByDoctorAndDate получает все приёмы врача на конкретную дату
	ListByDoctorAndDate(ctx context.Context, doctorID string, date time.Time) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
