package notifier

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender отправляет SMS через Twilio
type TwilioSender struct {
	client     *twilio.RestClient
	fromNumber string
}

// NewTwilioSender создает новый экземпляр SMS sender'а.
// Пустые учетные данные означают выключенный канал: Send вернет ErrNotConfigured.
func NewTwilioSender(accountSID, authToken, fromNumber string) *TwilioSender {
	s := &TwilioSender{fromNumber: fromNumber}
	if accountSID != "" && authToken != "" {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username:   accountSID,
			Password:   authToken,
			AccountSid: accountSID,
		})
	}
	return s
}

// Send отправляет SMS
func (s *TwilioSender) Send(_ context.Context, toNumber, body string) error {
	if s.client == nil || s.fromNumber == "" {
		return fmt.Errorf("%w: twilio credentials or from number missing", ErrNotConfigured)
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(s.fromNumber)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("%w: twilio: %v", ErrSendFailed, err)
	}

	return nil
}
