package get_doctor_appointments

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/GHP-AppointmentService/internal/api/handlers"
	"github.com/m04kA/GHP-AppointmentService/internal/service/appointments"
)

const (
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

// Handle GET /api/v1/doctors/{doctorId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorRef := vars["doctorId"]

	result, err := h.service.ListByDoctor(r.Context(), doctorRef)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrDoctorNotFound):
			h.logger.Warn("GET /doctors/{id}/appointments - Doctor not found: doctor=%s", doctorRef)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		default:
			h.logger.Error("GET /doctors/{id}/appointments - Failed to list appointments: doctor=%s, error=%v",
				doctorRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctors/{id}/appointments - Appointments retrieved: doctor=%s, count=%d",
		doctorRef, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
