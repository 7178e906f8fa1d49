package update_appointment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/GHP-AppointmentService/pkg/types"
)

var (
	// ErrAppointmentNotFound возвращается, когда приём не найден
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrSlotNotAvailable возвращается, когда новый слот недоступен
	ErrSlotNotAvailable = errors.New("update_appointment: slot not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment: internal error")
)

// SlotUnavailableError ошибка занятого слота со списком свободных альтернатив
type SlotUnavailableError struct {
	Requested types.TimeString
	Available []types.TimeString
}

func (e *SlotUnavailableError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("update_appointment: slot %s not available, no free slots left", e.Requested)
	}

	formatted := make([]string, len(e.Available))
	for i, t := range e.Available {
		formatted[i] = t.String()
	}
	return fmt.Sprintf("update_appointment: slot %s not available, free slots: %s",
		e.Requested, strings.Join(formatted, ", "))
}

func (e *SlotUnavailableError) Unwrap() error {
	return ErrSlotNotAvailable
}
