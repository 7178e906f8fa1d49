package get_available_slots

import (
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/GHP-AppointmentService/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	DoctorID        string   `json:"doctorId"`
	Date            string   `json:"date"`
	DurationMinutes int      `json:"durationMinutes"`
	Slots           []string `json:"slots"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(doctorRef, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		DoctorRef: doctorRef,
		Date:      date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &SlotsResponse{
		DoctorID:        resp.DoctorID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
