package get_specialty_report

import (
	"context"
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/service/reports/models"
)

type ReportService interface {
	AppointmentsPerSpecialty(ctx context.Context, from, to time.Time) (*models.SpecialtyReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
