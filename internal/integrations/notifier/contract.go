package notifier

import (
	"context"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
)

// EmailSender интерфейс отправки email
type EmailSender interface {
	Send(ctx context.Context, toName, toEmail, subject, body string) error
}

// SMSSender интерфейс отправки SMS
type SMSSender interface {
	Send(ctx context.Context, toNumber, body string) error
}

// NotificationRepository интерфейс журнала уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
