package update_appointment

import (
	"context"

	updateAppointment "github.com/m04kA/GHP-AppointmentService/internal/usecase/update_appointment"
)

type UpdateAppointmentUseCase interface {
	Execute(ctx context.Context, req *updateAppointment.Request) (*updateAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
