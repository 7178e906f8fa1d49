package book_appointment

import (
	"fmt"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.DoctorRef == "" {
		return fmt.Errorf("%w: doctorRef is required", ErrInvalidInput)
	}

	if req.PatientRef == "" {
		return fmt.Errorf("%w: patientRef is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if req.Remarks != nil && len(*req.Remarks) > domain.MaxRemarksLength {
		return fmt.Errorf("%w: remarks exceed %d characters", ErrInvalidInput, domain.MaxRemarksLength)
	}

	return nil
}
