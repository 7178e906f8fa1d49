package notifier

import "errors"

var (
	// ErrSendFailed возвращается sender'ами при неуспешной доставке
	ErrSendFailed = errors.New("notifier: send failed")

	// ErrNotConfigured возвращается, когда канал доставки не настроен
	ErrNotConfigured = errors.New("notifier: channel not configured")
)
