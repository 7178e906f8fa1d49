package domain

import (
	"time"

	"github.com/m04kA/GHP-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a booked visit in the system.
// DoctorID и PatientID всегда хранятся в виде бизнес-идентификаторов ("D2001", "P1004"),
// нормализация выполняется при бронировании.
type Appointment struct {
	ID            int64
	AppointmentID string // Business ID like "A3001"
	DoctorID      string
	PatientID     string
	Date          time.Time // Civil date, time part is always midnight
	StartTime     types.TimeString
	Status        AppointmentStatus
	Remarks       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsTerminal returns true if the appointment reached a final state.
// Terminal состояния (completed, cancelled) никогда не пересматриваются.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// ToAppointmentStatus валидирует и конвертирует строку в AppointmentStatus
func ToAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return AppointmentStatus(s), true
	default:
		return "", false
	}
}
