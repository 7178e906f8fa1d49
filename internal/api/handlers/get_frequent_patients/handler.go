package get_frequent_patients

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/api/handlers"
	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	"github.com/m04kA/GHP-AppointmentService/internal/service/reports"
)

const (
	msgMissingPeriod  = "параметры from и to обязательны"
	msgInvalidPeriod  = "некорректный период, ожидается YYYY-MM-DD"
	msgInvalidMinimum = "некорректный minCount, ожидается положительное число"

	defaultMinCount = 2
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

// Handle GET /api/v1/reports/frequent-patients
// Query params: from, to (required, YYYY-MM-DD), minCount (optional, default 2)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /reports/frequent-patients - Missing period")
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		h.logger.Warn("GET /reports/frequent-patients - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		h.logger.Warn("GET /reports/frequent-patients - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	minCount := defaultMinCount
	if minCountStr := r.URL.Query().Get("minCount"); minCountStr != "" {
		minCount, err = strconv.Atoi(minCountStr)
		if err != nil || minCount < 1 {
			h.logger.Warn("GET /reports/frequent-patients - Invalid minCount: %s", minCountStr)
			handlers.RespondBadRequest(w, msgInvalidMinimum)
			return
		}
	}

	result, err := h.service.FrequentPatients(r.Context(), from, to, minCount)
	if err != nil {
		if errors.Is(err, reports.ErrInvalidInput) {
			h.logger.Warn("GET /reports/frequent-patients - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		h.logger.Error("GET /reports/frequent-patients - Failed to build report: %s..%s, error=%v",
			fromStr, toStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reports/frequent-patients - Report built: %s..%s, patients=%d",
		fromStr, toStr, len(result.Patients))
	handlers.RespondJSON(w, http.StatusOK, result)
}
