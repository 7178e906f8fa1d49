package update_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GHP-AppointmentService/internal/api/handlers"
	updateAppointment "github.com/m04kA/GHP-AppointmentService/internal/usecase/update_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID приёма"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты или времени"
	msgInvalidInput         = "некорректные данные запроса"
	msgNotFound             = "приём не найден"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	idStr := vars["appointmentId"]

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(id)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{id} - Appointment not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateAppointment.ErrSlotNotAvailable):
			h.logger.Warn("PUT /appointments/{id} - Slot not available: id=%d", id)
			respondConflict(w, err)

		case errors.Is(err, updateAppointment.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/{id} - Invalid input: id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /appointments/{id} - Failed to update appointment: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id} - Appointment updated: appointment=%s", result.AppointmentID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// respondConflict отдает 409 со списком свободных слотов, если он известен
func respondConflict(w http.ResponseWriter, err error) {
	var slotErr *updateAppointment.SlotUnavailableError
	if !errors.As(err, &slotErr) || len(slotErr.Available) == 0 {
		handlers.RespondConflict(w, msgSlotNotAvailable)
		return
	}

	available := make([]string, len(slotErr.Available))
	for i, slot := range slotErr.Available {
		available[i] = slot.String()
	}

	handlers.RespondJSON(w, http.StatusConflict, struct {
		Error          string   `json:"error"`
		AvailableSlots []string `json:"availableSlots"`
	}{
		Error:          msgSlotNotAvailable,
		AvailableSlots: available,
	})
}
