package notification

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/vitalsync/vitalsync-api/internal/config"
)

// TwilioSMSSender posts form-encoded messages to the Twilio messages endpoint
// with basic-auth credentials.
type TwilioSMSSender struct {
	client     *resty.Client
	accountSID string
	authToken  string
	fromNumber string
	logger     zerolog.Logger
}

func NewTwilioSMSSender(cfg config.SMSConfig, logger zerolog.Logger) *TwilioSMSSender {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(providerTimeout)

	return &TwilioSMSSender{
		client:     client,
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		fromNumber: cfg.FromNumber,
		logger:     logger.With().Str("channel", "sms").Logger(),
	}
}

func (s *TwilioSMSSender) Configured() bool {
	return s.accountSID != "" && s.authToken != "" && s.fromNumber != ""
}

func (s *TwilioSMSSender) Send(ctx context.Context, to, body string) error {
	if !s.Configured() {
		return errors.New("sms provider credentials are not configured")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBasicAuth(s.accountSID, s.authToken).
		SetFormData(map[string]string{
			"To":   to,
			"From": s.fromNumber,
			"Body": body,
		}).
		Post(fmt.Sprintf("/2010-04-01/Accounts/%s/Messages.json", s.accountSID))
	if err != nil {
		return errors.Wrap(err, "sms provider request failed")
	}
	if resp.IsError() {
		return fmt.Errorf("sms provider returned %d: %s", resp.StatusCode(), resp.String())
	}

	s.logger.Info().Str("to", to).Msg("sms sent")
	return nil
}
