package notifier

import (
	"fmt"

	"github.com/bugboard/bugboard/internal/setup/config"
	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender delivers notifications through the Twilio messaging API.
type SMSSender struct {
	client *twilio.RestClient
	from   string
}

// NewSMSSender creates a Twilio sender from the SMS configuration.
func NewSMSSender(cfg *config.SMS) *SMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &SMSSender{
		client: client,
		from:   cfg.From,
	}
}

// Send delivers a single text message.
func (s *SMSSender) Send(to, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	return nil
}
