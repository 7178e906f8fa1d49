package get_frequent_patients

import (
	"context"
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/service/reports/models"
)

type ReportService interface {
	FrequentPatients(ctx context.Context, from, to time.Time, minCount int) (*models.FrequentPatientsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
