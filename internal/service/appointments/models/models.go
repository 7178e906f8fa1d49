package models

import (
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
)

// AppointmentResponse ответ с данными приёма
type AppointmentResponse struct {
	ID            int64   `json:"id"`
	AppointmentID string  `json:"appointmentId"`
	DoctorID      string  `json:"doctorId"`
	PatientID     string  `json:"patientId"`
	Date          string  `json:"date"`      // "2025-06-02"
	StartTime     string  `json:"startTime"` // "10:00"
	Status        string  `json:"status"`
	Remarks       *string `json:"remarks,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком приёмов
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// DoctorDashboardResponse сводка врача на день
type DoctorDashboardResponse struct {
	DoctorID   string                `json:"doctorId"`
	DoctorName string                `json:"doctorName"`
	Date       string                `json:"date"`
	Today      []AppointmentResponse `json:"today"`

	UpcomingCount  int `json:"upcomingCount"`
	CompletedCount int `json:"completedCount"`
	CancelledCount int `json:"cancelledCount"`
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:            a.ID,
		AppointmentID: a.AppointmentID,
		DoctorID:      a.DoctorID,
		PatientID:     a.PatientID,
		Date:          a.Date.Format(domain.DateFormat),
		StartTime:     a.StartTime.String(),
		Status:        string(a.Status),
		Remarks:       a.Remarks,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, appt := range appointments {
		if converted := FromDomainAppointment(appt); converted != nil {
			resp.Appointments = append(resp.Appointments, *converted)
		}
	}

	return resp
}
