package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Muazzam0101/neurolearn-amep/pkg/jobs"
	"github.com/Muazzam0101/neurolearn-amep/pkg/mail"
)

const jobTypeResetEmail = "password_reset_email"

type resetEmailPayload struct {
	Email string
	Token string
}

type deliveryMetrics interface {
	RecordEmailDispatch(outcome string)
}

// MailerService delivers transactional email on a background queue so
// request handlers never wait on, or reveal, delivery outcomes.
type MailerService struct {
	dispatcher  *mail.Dispatcher
	queue       *jobs.Queue
	metrics     deliveryMetrics
	frontendURL string
	logger      *zap.Logger
}

// NewMailerService wires the delivery chain behind a worker queue.
func NewMailerService(dispatcher *mail.Dispatcher, frontendURL string, workers int, metrics deliveryMetrics, logger *zap.Logger) *MailerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &MailerService{
		dispatcher:  dispatcher,
		metrics:     metrics,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		logger:      logger,
	}
	s.queue = jobs.NewQueue("mailer", s.handle, jobs.QueueConfig{
		Workers: workers,
		Logger:  logger,
	})
	return s
}

// Start launches the delivery workers.
func (s *MailerService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop closes intake and waits until every queued email has been handed
// to the dispatcher.
func (s *MailerService) Stop() {
	s.queue.Stop()
}

// EnqueueResetEmail schedules a password-reset email carrying the
// plaintext token. Failures are logged, never surfaced: the caller's
// response must not leak whether delivery happened.
func (s *MailerService) EnqueueResetEmail(email, token string) {
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    jobTypeResetEmail,
		Payload: resetEmailPayload{Email: email, Token: token},
	})
	if err != nil {
		s.logger.Error("failed to enqueue reset email", zap.String("email", email), zap.Error(err))
	}
}

func (s *MailerService) handle(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(resetEmailPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for job %s", job.Type)
	}

	if !s.dispatcher.Configured() {
		s.logger.Warn("no email transport configured, dropping reset email",
			zap.String("email", payload.Email))
		s.recordDispatch("dropped")
		return nil
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, payload.Token)
	msg := mail.ResetEmail(payload.Email, link)
	if err := s.dispatcher.Send(ctx, msg); err != nil {
		s.recordDispatch("failed")
		return fmt.Errorf("deliver reset email: %w", err)
	}
	s.recordDispatch("delivered")
	return nil
}

func (s *MailerService) recordDispatch(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordEmailDispatch(outcome)
	}
}
