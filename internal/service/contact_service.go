package service

import (
	"context"
	"time"

	"glamify/internal/domain"

	"go.uber.org/zap"
)

// ContactService accepts storefront contact form submissions
type ContactService interface {
	Submit(ctx context.Context, msg domain.ContactMessage) error
}

type contactService struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewContactService creates a contact service that records submissions in the log
func NewContactService(logger *zap.Logger) ContactService {
	return &contactService{logger: logger, now: time.Now}
}

// Submit logs the message. Nothing is stored.
func (s *contactService) Submit(ctx context.Context, msg domain.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg.ReceivedAt = s.now().UTC()

	s.logger.Info("Contact submission",
		zap.String("name", msg.Name),
		zap.String("email", msg.Email),
		zap.String("message", msg.Message),
		zap.Time("received_at", msg.ReceivedAt),
	)

	return nil
}
