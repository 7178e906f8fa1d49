package get_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/GHP-AppointmentService/internal/api/handlers"
	"github.com/m04kA/GHP-AppointmentService/internal/service/appointments"
)

const (
	msgNotFound = "приём не найден"
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

// Handle GET /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ref := vars["appointmentId"]

	result, err := h.service.GetByRef(r.Context(), ref)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound),
			errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments/{id} - Appointment not found: ref=%s", ref)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /appointments/{id} - Failed to get appointment: ref=%s, error=%v", ref, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/{id} - Appointment retrieved: appointment=%s", result.AppointmentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
