package book_appointment

import (
	"time"

	"github.com/m04kA/GHP-AppointmentService/pkg/types"
)

// Request модель запроса на бронирование приёма
type Request struct {
	DoctorRef  string           // Идентификатор врача (бизнес или storage)
	PatientRef string           // Идентификатор пациента (бизнес или storage)
	Date       time.Time        // Дата приёма (без времени)
	StartTime  types.TimeString // Время начала приёма
	Remarks    *string          // Примечания (опционально)
}

// Response модель ответа с созданным приёмом
type Response struct {
	ID            int64
	AppointmentID string
	DoctorID      string
	DoctorName    string
	PatientID     string
	PatientName   string
	Date          time.Time
	StartTime     types.TimeString
	Status        string
	Remarks       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
