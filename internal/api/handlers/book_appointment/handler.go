package book_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/GHP-AppointmentService/internal/api/handlers"
	bookAppointment "github.com/m04kA/GHP-AppointmentService/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные запроса"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgDoctorNotFound     = "врач не найден"
	msgPatientNotFound    = "пациент не найден"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: doctor=%s, date=%s, time=%s",
				req.DoctorID, req.Date, req.StartTime)
			respondConflict(w, err)

		case errors.Is(err, bookAppointment.ErrDoctorNotFound):
			h.logger.Warn("POST /appointments - Doctor not found: doctor=%s", req.DoctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, bookAppointment.ErrPatientNotFound):
			h.logger.Warn("POST /appointments - Patient not found: patient=%s", req.PatientID)
			handlers.RespondNotFound(w, msgPatientNotFound)

		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to book appointment: doctor=%s, patient=%s, error=%v",
				req.DoctorID, req.PatientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment booked: appointment=%s, doctor=%s, patient=%s",
		result.AppointmentID, result.DoctorID, result.PatientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// respondConflict отдает 409 со списком свободных слотов, если он известен
func respondConflict(w http.ResponseWriter, err error) {
	var slotErr *bookAppointment.SlotUnavailableError
	if !errors.As(err, &slotErr) {
		handlers.RespondConflict(w, msgSlotNotAvailable)
		return
	}

	available := make([]string, len(slotErr.Available))
	for i, slot := range slotErr.Available {
		available[i] = slot.String()
	}

	handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
		Error:          msgSlotNotAvailable,
		AvailableSlots: available,
	})
}
