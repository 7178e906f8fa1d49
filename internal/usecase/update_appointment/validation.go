package update_appointment

import (
	"fmt"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ID <= 0 {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	if req.Date != nil && req.Date.IsZero() {
		return fmt.Errorf("%w: date must not be zero", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if req.StartTime.IsZero() {
			return fmt.Errorf("%w: startTime must not be empty", ErrInvalidInput)
		}
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}
	}

	if req.Remarks != nil && len(*req.Remarks) > domain.MaxRemarksLength {
		return fmt.Errorf("%w: remarks exceed %d characters", ErrInvalidInput, domain.MaxRemarksLength)
	}

	if req.Status != nil {
		if _, ok := domain.ToAppointmentStatus(*req.Status); !ok {
			return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
	}

	return nil
}
