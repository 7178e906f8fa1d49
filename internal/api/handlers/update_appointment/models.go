package update_appointment

import (
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	updateAppointment "github.com/m04kA/GHP-AppointmentService/internal/usecase/update_appointment"
	"github.com/m04kA/GHP-AppointmentService/pkg/types"
)

// UpdateAppointmentRequest HTTP request model.
// Отсутствующие поля не меняются.
type UpdateAppointmentRequest struct {
	Date      *string `json:"date,omitempty"`      // "2025-06-02"
	StartTime *string `json:"startTime,omitempty"` // "10:00"
	Remarks   *string `json:"remarks,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID            int64   `json:"id"`
	AppointmentID string  `json:"appointmentId"`
	DoctorID      string  `json:"doctorId"`
	PatientID     string  `json:"patientId"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	Status        string  `json:"status"`
	Remarks       *string `json:"remarks,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(id int64) (*updateAppointment.Request, error) {
	req := &updateAppointment.Request{
		ID:      id,
		Remarks: r.Remarks,
		Status:  r.Status,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            resp.ID,
		AppointmentID: resp.AppointmentID,
		DoctorID:      resp.DoctorID,
		PatientID:     resp.PatientID,
		Date:          resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		Status:        resp.Status,
		Remarks:       resp.Remarks,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
