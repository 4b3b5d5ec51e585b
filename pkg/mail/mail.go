package mail

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Muazzam0101/neurolearn-amep/pkg/config"
)

// Message is a fully composed outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a message through one transport.
type Sender interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// Dispatcher tries a ranked list of senders in order. The first success
// stops the chain; exhausting the list yields an aggregate error.
type Dispatcher struct {
	senders []Sender
	logger  *zap.Logger
}

// NewDispatcher assembles the delivery chain from configuration: Resend
// when an API key is present, SMTP when host and user are configured.
func NewDispatcher(cfg config.MailConfig, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	var senders []Sender
	if cfg.ResendAPIKey != "" {
		senders = append(senders, NewResendSender(cfg))
	}
	if cfg.SMTPHost != "" && cfg.SMTPUser != "" {
		senders = append(senders, NewSMTPSender(cfg))
	}

	return &Dispatcher{senders: senders, logger: logger}
}

// Configured reports whether at least one transport is available.
func (d *Dispatcher) Configured() bool {
	return len(d.senders) > 0
}

// Send attempts delivery through each transport in rank order.
func (d *Dispatcher) Send(ctx context.Context, msg Message) error {
	if len(d.senders) == 0 {
		return fmt.Errorf("no email transport configured")
	}

	var failures []string
	for _, sender := range d.senders {
		err := sender.Send(ctx, msg)
		if err == nil {
			d.logger.Info("email delivered",
				zap.String("transport", sender.Name()),
				zap.String("to", msg.To),
			)
			return nil
		}
		d.logger.Warn("email transport failed",
			zap.String("transport", sender.Name()),
			zap.String("to", msg.To),
			zap.Error(err),
		)
		failures = append(failures, fmt.Sprintf("%s: %v", sender.Name(), err))
	}

	return fmt.Errorf("all email transports failed: %s", strings.Join(failures, "; "))
}

// ResetEmail composes the password-reset message. The link carries the
// plaintext token; the body states the absolute validity window.
func ResetEmail(to, resetLink string) Message {
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #06b6d4;">Reset Your Password</h2>
  <p>You requested a password reset for your NeuroLearn account.</p>
  <p>Click the button below to reset your password:</p>
  <a href="%[1]s" style="display: inline-block; padding: 12px 24px; background: linear-gradient(135deg, #06b6d4, #8b5cf6); color: white; text-decoration: none; border-radius: 8px; margin: 20px 0;">Reset Password</a>
  <p>Or copy and paste this link: <a href="%[1]s">%[1]s</a></p>
  <p><strong>This link will expire in 30 minutes.</strong></p>
  <p>If you didn't request this reset, please ignore this email.</p>
  <hr style="margin: 30px 0; border: none; border-top: 1px solid #eee;">
  <p style="color: #666; font-size: 12px;">NeuroLearn - Adaptive Learning Platform</p>
</div>`, resetLink)

	return Message{
		To:      to,
		Subject: "Reset Your NeuroLearn Password",
		HTML:    html,
	}
}
