package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Muazzam0101/neurolearn-amep/pkg/config"
)

type stubSender struct {
	name  string
	err   error
	calls int
}

func (s *stubSender) Name() string { return s.name }

func (s *stubSender) Send(ctx context.Context, msg Message) error {
	s.calls++
	return s.err
}

func TestDispatcherStopsAtFirstSuccess(t *testing.T) {
	primary := &stubSender{name: "resend"}
	fallback := &stubSender{name: "smtp"}
	d := &Dispatcher{senders: []Sender{primary, fallback}, logger: zap.NewNop()}

	err := d.Send(context.Background(), Message{To: "user@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, fallback.calls)
}

func TestDispatcherFallsBack(t *testing.T) {
	primary := &stubSender{name: "resend", err: errors.New("rate limited")}
	fallback := &stubSender{name: "smtp"}
	d := &Dispatcher{senders: []Sender{primary, fallback}, logger: zap.NewNop()}

	err := d.Send(context.Background(), Message{To: "user@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestDispatcherAggregatesFailures(t *testing.T) {
	primary := &stubSender{name: "resend", err: errors.New("bad key")}
	fallback := &stubSender{name: "smtp", err: errors.New("connection refused")}
	d := &Dispatcher{senders: []Sender{primary, fallback}, logger: zap.NewNop()}

	err := d.Send(context.Background(), Message{To: "user@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resend: bad key")
	assert.Contains(t, err.Error(), "smtp: connection refused")
}

func TestDispatcherUnconfigured(t *testing.T) {
	d := NewDispatcher(config.MailConfig{}, nil)

	assert.False(t, d.Configured())
	assert.Error(t, d.Send(context.Background(), Message{To: "user@example.com"}))
}

func TestNewDispatcherRanksResendFirst(t *testing.T) {
	d := NewDispatcher(config.MailConfig{
		ResendAPIKey: "re_123",
		SMTPHost:     "smtp.example.com",
		SMTPUser:     "mailer",
	}, nil)

	require.Len(t, d.senders, 2)
	assert.Equal(t, "resend", d.senders[0].Name())
	assert.Equal(t, "smtp", d.senders[1].Name())
}

func TestResetEmailCarriesLink(t *testing.T) {
	msg := ResetEmail("user@example.com", "http://localhost:3000/reset-password/abc123")

	assert.Equal(t, "user@example.com", msg.To)
	assert.Equal(t, "Reset Your NeuroLearn Password", msg.Subject)
	assert.Contains(t, msg.HTML, "http://localhost:3000/reset-password/abc123")
	assert.Contains(t, msg.HTML, "expire in 30 minutes")
}
