package get_available_slots

import (
	"time"

	"github.com/m04kA/GHP-AppointmentService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	DoctorRef string    // Идентификатор врача (бизнес или storage)
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	DoctorID        string             // Канонический бизнес-идентификатор врача
	Date            time.Time          // Дата, на которую запрашивались слоты
	DurationMinutes int                // Длительность слота в минутах
	Slots           []types.TimeString // Доступные слоты в хронологическом порядке
}
