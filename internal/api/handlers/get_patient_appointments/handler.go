package get_patient_appointments

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/GHP-AppointmentService/internal/api/handlers"
	"github.com/m04kA/GHP-AppointmentService/internal/service/appointments"
)

const (
	msgPatientNotFound = "пациент не найден"
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

// Handle GET /api/v1/patients/{patientId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientRef := vars["patientId"]

	result, err := h.service.ListByPatient(r.Context(), patientRef)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrPatientNotFound):
			h.logger.Warn("GET /patients/{id}/appointments - Patient not found: patient=%s", patientRef)
			handlers.RespondNotFound(w, msgPatientNotFound)

		default:
			h.logger.Error("GET /patients/{id}/appointments - Failed to list appointments: patient=%s, error=%v",
				patientRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /patients/{id}/appointments - Appointments retrieved: patient=%s, count=%d",
		patientRef, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
