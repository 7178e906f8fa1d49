package get_doctor_dashboard

import (
	"context"
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/service/appointments/models"
)

type AppointmentService interface {
	DoctorDashboard(ctx context.Context, doctorRef string, today time.Time) (*models.DoctorDashboardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
