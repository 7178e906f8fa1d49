package get_daily_report

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/api/handlers"
	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	"github.com/m04kA/GHP-AppointmentService/internal/service/reports"
)

const (
	msgMissingDate = "дата обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/reports/daily
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /reports/daily - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /reports/daily - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.AppointmentsByDate(r.Context(), date)
	if err != nil {
		if errors.Is(err, reports.ErrInvalidInput) {
			h.logger.Warn("GET /reports/daily - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /reports/daily - Failed to build report: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reports/daily - Report built: date=%s, total=%d", dateStr, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
