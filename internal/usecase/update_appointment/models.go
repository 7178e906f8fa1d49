package update_appointment

import (
	"time"

	"github.com/m04kA/GHP-AppointmentService/pkg/types"
)

// Request модель запроса на изменение приёма.
// Nil-поля не меняются; перенос даты или времени запускает повторную
// проверку доступности нового слота.
type Request struct {
	ID        int64             // Внутренний идентификатор приёма
	Date      *time.Time        // Новая дата приёма
	StartTime *types.TimeString // Новое время начала
	Remarks   *string           // Новые примечания
	Status    *string           // Новый статус
}

// Response модель ответа с обновленным приёмом
type Response struct {
	ID            int64
	AppointmentID string
	DoctorID      string
	PatientID     string
	Date          time.Time
	StartTime     types.TimeString
	Status        string
	Remarks       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
