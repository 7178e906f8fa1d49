package cancel_appointment

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

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ref := vars["appointmentId"]

	err := h.service.Cancel(r.Context(), ref)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound),
			errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Appointment not found: ref=%s", ref)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed to cancel: ref=%s, error=%v", ref, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Appointment cancelled: ref=%s", ref)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
