package get_daily_report

import (
	"context"
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/service/reports/models"
)

type ReportService interface {
	AppointmentsByDate(ctx context.Context, date time.Time) (*models.DailyReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
