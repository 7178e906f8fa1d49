package domain

import (
	"strings"
	"time"

	"github.com/m04kA/GHP-AppointmentService/pkg/types"
)

// TimeRange пара "начало-конец" в пределах одного дня (рабочие часы, перерыв)
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// IsSet returns true if both boundaries are present.
// Nil-safe: вызов на nil означает "диапазон не задан".
func (r *TimeRange) IsSet() bool {
	return r != nil && !r.Start.IsZero() && !r.End.IsZero()
}

// Doctor represents a doctor's master record with the recurring schedule
// configuration used by the slot calculator.
type Doctor struct {
	ID             int64
	DoctorID       string // Business ID like "D2001"
	Name           string
	Specialization string
	Email          string
	Phone          string

	WorkingDays         []string // ["MONDAY", "TUESDAY", ...]
	WorkingHours        *TimeRange
	BreakTime           *TimeRange
	SlotDurationMinutes int      // <= 0 means "not configured", calculator falls back to default
	UnavailableDates    []string // Calendar exceptions, "YYYY-MM-DD"
}

// BusinessID возвращает канонический идентификатор врача:
// бизнес-идентификатор, если он задан, иначе - storage id в строковом виде.
func (d *Doctor) BusinessID() string {
	if d.DoctorID != "" {
		return d.DoctorID
	}
	return formatStorageID(d.ID)
}

// WorksOn проверяет, входит ли день недели в рабочие дни врача.
// Названия дней в расписании хранятся в верхнем регистре ("MONDAY"),
// сравнение регистронезависимое.
func (d *Doctor) WorksOn(weekday time.Weekday) bool {
	for _, day := range d.WorkingDays {
		if strings.EqualFold(day, weekday.String()) {
			return true
		}
	}
	return false
}

// IsUnavailableOn проверяет, закрыта ли дата календарным исключением
func (d *Doctor) IsUnavailableOn(date time.Time) bool {
	formatted := date.Format(DateFormat)
	for _, excluded := range d.UnavailableDates {
		if excluded == formatted {
			return true
		}
	}
	return false
}

// SlotDuration возвращает длительность слота с учётом дефолта
func (d *Doctor) SlotDuration() int {
	if d.SlotDurationMinutes > 0 {
		return d.SlotDurationMinutes
	}
	return DefaultSlotDurationMinutes
}
