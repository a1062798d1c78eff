package services

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSService sends text messages through Twilio. SMS is best-effort
// everywhere in the platform: callers log failures and move on, they
// never surface them to API clients.
type SMSService struct {
	client *twilio.RestClient
	from   string
}

// NewSMSService builds the Twilio client from credentials. An
// unconfigured service is valid and turns every send into a logged
// no-op, so local runs work without Twilio.
func NewSMSService(accountSID, authToken, from string) *SMSService {
	if accountSID == "" || authToken == "" || from == "" {
		log.Warn().Msg("Twilio credentials missing, SMS sending disabled")
		return &SMSService{}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &SMSService{client: client, from: from}
}

// SendSMS sends one text message.
func (s *SMSService) SendSMS(to, body string) error {
	if s.client == nil {
		log.Debug().Str("to", to).Msg("SMS skipped, service not configured")
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(to)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Warn().Err(err).Str("to", to).Msg("SMS send failed")
		return fmt.Errorf("send sms: %w", err)
	}
	if resp.Sid != nil {
		log.Debug().Str("sid", *resp.Sid).Msg("SMS sent")
	}
	return nil
}
