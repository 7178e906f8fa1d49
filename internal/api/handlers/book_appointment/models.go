package book_appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	bookAppointment "github.com/m04kA/GHP-AppointmentService/internal/usecase/book_appointment"
	"github.com/m04kA/GHP-AppointmentService/pkg/types"
)

var (
	// errInvalidDate возвращается при некорректном поле date
	errInvalidDate = errors.New("book_appointment: invalid date format")

	// errInvalidTime возвращается при некорректном поле startTime
	errInvalidTime = errors.New("book_appointment: invalid start time format")
)

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	DoctorID  string  `json:"doctorId"`
	PatientID string  `json:"patientId"`
	Date      string  `json:"date"`      // "2025-06-02"
	StartTime string  `json:"startTime"` // "10:00"
	Remarks   *string `json:"remarks,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID            int64   `json:"id"`
	AppointmentID string  `json:"appointmentId"`
	DoctorID      string  `json:"doctorId"`
	DoctorName    string  `json:"doctorName"`
	PatientID     string  `json:"patientId"`
	PatientName   string  `json:"patientName"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	Status        string  `json:"status"`
	Remarks       *string `json:"remarks,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ConflictResponse ответ при занятом слоте со списком свободных альтернатив
type ConflictResponse struct {
	Error          string   `json:"error"`
	AvailableSlots []string `json:"availableSlots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookAppointmentRequest) ToUseCaseRequest() (*bookAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &bookAppointment.Request{
		DoctorRef:  r.DoctorID,
		PatientRef: r.PatientID,
		Date:       date,
		StartTime:  startTime,
		Remarks:    r.Remarks,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            resp.ID,
		AppointmentID: resp.AppointmentID,
		DoctorID:      resp.DoctorID,
		DoctorName:    resp.DoctorName,
		PatientID:     resp.PatientID,
		PatientName:   resp.PatientName,
		Date:          resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		Status:        resp.Status,
		Remarks:       resp.Remarks,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
