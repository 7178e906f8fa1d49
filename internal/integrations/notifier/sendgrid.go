package notifier

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender отправляет email через SendGrid
type SendGridSender struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

// NewSendGridSender создает новый экземпляр email sender'а.
// Пустой apiKey означает выключенный канал: Send вернет ErrNotConfigured.
func NewSendGridSender(apiKey, fromName, fromEmail string) *SendGridSender {
	s := &SendGridSender{
		fromName:  fromName,
		fromEmail: fromEmail,
	}
	if apiKey != "" {
		s.client = sendgrid.NewSendClient(apiKey)
	}
	return s
}

// Send отправляет email
func (s *SendGridSender) Send(_ context.Context, toName, toEmail, subject, body string) error {
	if s.client == nil || s.fromEmail == "" {
		return fmt.Errorf("%w: sendgrid api key or from email missing", ErrNotConfigured)
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	resp, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("%w: sendgrid: %v", ErrSendFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: sendgrid returned status %d: %s", ErrSendFailed, resp.StatusCode, resp.Body)
	}

	return nil
}
