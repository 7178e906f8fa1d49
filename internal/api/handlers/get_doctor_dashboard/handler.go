package get_doctor_dashboard

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/GHP-AppointmentService/internal/api/handlers"
	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	"github.com/m04kA/GHP-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDoctorNotFound = "врач не найден"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors/{doctorId}/dashboard
// Query params: date (optional, YYYY-MM-DD, по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorRef := vars["doctorId"]

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /doctors/{id}/dashboard - Invalid date format: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		today = parsed
	}

	result, err := h.service.DoctorDashboard(r.Context(), doctorRef, today)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrDoctorNotFound):
			h.logger.Warn("GET /doctors/{id}/dashboard - Doctor not found: doctor=%s", doctorRef)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		default:
			h.logger.Error("GET /doctors/{id}/dashboard - Failed to build dashboard: doctor=%s, error=%v",
				doctorRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctors/{id}/dashboard - Dashboard built: doctor=%s, today_count=%d",
		result.DoctorID, len(result.Today))
	handlers.RespondJSON(w, http.StatusOK, result)
}
