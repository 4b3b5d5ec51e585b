package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/Muazzam0101/neurolearn-amep/pkg/config"
)

// SMTPSender delivers mail directly over SMTP. Used as the fallback when
// the transactional API is unavailable or unconfigured.
type SMTPSender struct {
	cfg  config.MailConfig
	from string
}

// NewSMTPSender builds the fallback transport.
func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg, from: senderAddress(cfg)}
}

// Name identifies the transport in logs.
func (s *SMTPSender) Name() string { return "smtp" }

// Send dials the SMTP server and submits the message. The connection is
// established per call; reset emails are rare enough that pooling is not
// worth the state.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTML)

	client, err := gomail.NewClient(s.cfg.SMTPHost,
		gomail.WithPort(s.cfg.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.SMTPUser),
		gomail.WithPassword(s.cfg.SMTPPassword),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func senderAddress(cfg config.MailConfig) string {
	if cfg.FromAddress != "" {
		return cfg.FromAddress
	}
	return cfg.SMTPUser
}
