package lifecycle

import (
	"context"
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	ListScheduledBefore(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	CompleteIfScheduled(ctx context.Context, id int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
