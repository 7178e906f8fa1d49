package book_appointment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/GHP-AppointmentService/pkg/types"
)

var (
	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("book_appointment: doctor not found")

	// ErrPatientNotFound возвращается, когда пациент не найден
	ErrPatientNotFound = errors.New("book_appointment: patient not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrSlotNotAvailable возвращается, когда запрошенный слот недоступен
	ErrSlotNotAvailable = errors.New("book_appointment: slot not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)

// SlotUnavailableError ошибка занятого слота со списком свободных альтернатив.
// Разворачивается в ErrSlotNotAvailable, поэтому обработчики могут матчить
// её через errors.Is, а при желании доставать альтернативы через errors.As.
type SlotUnavailableError struct {
	Requested types.TimeString
	Available []types.TimeString
}

func (e *SlotUnavailableError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("book_appointment: slot %s not available, no free slots left", e.Requested)
	}

	formatted := make([]string, len(e.Available))
	for i, t := range e.Available {
		formatted[i] = t.String()
	}
	return fmt.Sprintf("book_appointment: slot %s not available, free slots: %s",
		e.Requested, strings.Join(formatted, ", "))
}

func (e *SlotUnavailableError) Unwrap() error {
	return ErrSlotNotAvailable
}
