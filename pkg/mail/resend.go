package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/Muazzam0101/neurolearn-amep/pkg/config"
)

// ResendSender delivers mail through the Resend transactional API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender builds the primary transport.
func NewResendSender(cfg config.MailConfig) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(cfg.ResendAPIKey),
		from:   formatFrom(cfg),
	}
}

// Name identifies the transport in logs.
func (s *ResendSender) Name() string { return "resend" }

// Send submits the message to the Resend API.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}

func formatFrom(cfg config.MailConfig) string {
	if cfg.FromName != "" {
		return fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress)
	}
	return cfg.FromAddress
}
