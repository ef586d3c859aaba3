package notification

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/vitalsync/vitalsync-api/internal/config"
)

// HTTPEmailSender posts rendered messages to a Resend-style email API:
// POST /emails with {from, to[], subject, html} and a bearer key.
type HTTPEmailSender struct {
	client *resty.Client
	apiKey string
	from   string
	logger zerolog.Logger
}

func NewHTTPEmailSender(cfg config.EmailConfig, logger zerolog.Logger) *HTTPEmailSender {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(providerTimeout)

	return &HTTPEmailSender{
		client: client,
		apiKey: cfg.APIKey,
		from:   cfg.From,
		logger: logger.With().Str("channel", "email").Logger(),
	}
}

func (s *HTTPEmailSender) Configured() bool {
	return s.apiKey != ""
}

func (s *HTTPEmailSender) Send(ctx context.Context, to []string, subject, html string) error {
	if !s.Configured() {
		return errors.New("email provider api key is not configured")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"from":    s.from,
			"to":      to,
			"subject": subject,
			"html":    html,
		}).
		Post("/emails")
	if err != nil {
		return errors.Wrap(err, "email provider request failed")
	}
	if resp.IsError() {
		return fmt.Errorf("email provider returned %d: %s", resp.StatusCode(), resp.String())
	}

	s.logger.Info().Strs("to", to).Str("subject", subject).Msg("email sent")
	return nil
}
