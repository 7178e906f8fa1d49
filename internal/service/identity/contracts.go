package identity

import (
	"context"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
)

// DoctorRepository интерфейс репозитория врачей
type DoctorRepository interface {
	GetByBusinessID(ctx context.Context, doctorID string) (*domain.Doctor, error)
	GetByStorageID(ctx context.Context, id int64) (*domain.Doctor, error)
}

// PatientRepository интерфейс репозитория пациентов
type PatientRepository interface {
	GetByBusinessID(ctx context.Context, patientID string) (*domain.Patient, error)
	GetByStorageID(ctx context.Context, id int64) (*domain.Patient, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
