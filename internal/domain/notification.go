package domain

import "time"

// NotificationChannel канал доставки уведомления
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "EMAIL"
	ChannelSMS   NotificationChannel = "SMS"
)

// RecipientType тип получателя уведомления
type RecipientType string

const (
	RecipientDoctor  RecipientType = "DOCTOR"
	RecipientPatient RecipientType = "PATIENT"
)

// Notification журнальная запись об отправленном уведомлении.
// Доставка best-effort: запись создаётся независимо от результата отправки.
type Notification struct {
	ID            int64
	Channel       NotificationChannel
	RecipientType RecipientType
	RecipientName string
	Contact       string
	Message       string
	SentAt        time.Time
}
