package book_appointment

import (
	"context"
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
)

// IdentifierResolver интерфейс резолвера идентификаторов
type IdentifierResolver interface {
	ResolveDoctor(ctx context.Context, ref string) (*domain.Doctor, error)
	ResolvePatient(ctx context.Context, ref string) (*domain.Patient, error)
}

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	NextAppointmentCode(ctx context.Context) (string, error)
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	ListByDoctorAndDate(ctx context.Context, doctorID string, date time.Time) ([]*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс отправки уведомлений о приёме.
// Вызывается после коммита; ошибки доставки бронирование не откатывают.
type Notifier interface {
	AppointmentBooked(ctx context.Context, doctor *domain.Doctor, patient *domain.Patient, appt *domain.Appointment)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
