package get_specialty_report

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/api/handlers"
	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	"github.com/m04kA/GHP-AppointmentService/internal/service/reports"
)

const (
	msgMissingPeriod = "параметры from и to обязательны"
	msgInvalidPeriod = "некорректный период, ожидается YYYY-MM-DD"
)

type Handler struct {
	service ReportService
	logger  Logger
}

func NewHandler(service ReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reports/specialties
// Query params: from, to (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /reports/specialties - Missing period")
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		h.logger.Warn("GET /reports/specialties - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		h.logger.Warn("GET /reports/specialties - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.AppointmentsPerSpecialty(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, reports.ErrInvalidInput) {
			h.logger.Warn("GET /reports/specialties - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		h.logger.Error("GET /reports/specialties - Failed to build report: %s..%s, error=%v", fromStr, toStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reports/specialties - Report built: %s..%s, specialties=%d",
		fromStr, toStr, len(result.Specialties))
	handlers.RespondJSON(w, http.StatusOK, result)
}
