package service

import (
	"context"

	"writer-coach-be/internal/pkg/logger"
	"writer-coach-be/pkg/events"
	"writer-coach-be/pkg/nats"
)

// INotifierService carries operator-facing events out of the service.
// When NATS is not configured the notifier reports Enabled() == false and
// the features depending on it answer "not configured" instead of failing.
type INotifierService interface {
	Enabled() bool
	DevFeedback(ctx context.Context, userID, text string) error
	Broadcast(ctx context.Context, text string) error
}

type notifierService struct {
	publisher *nats.Publisher
	logger    logger.ILogger
}

// NewNotifierService accepts a nil publisher, which yields a disabled notifier.
func NewNotifierService(publisher *nats.Publisher, log logger.ILogger) INotifierService {
	return &notifierService{publisher: publisher, logger: log}
}

func (s *notifierService) Enabled() bool {
	return s.publisher != nil
}

func (s *notifierService) DevFeedback(ctx context.Context, userID, text string) error {
	if s.publisher == nil {
		return nil
	}
	err := s.publisher.Publish(ctx, events.NewDevFeedback(userID, text))
	if err != nil {
		s.logger.Error("notifier", "failed to publish dev feedback", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
		})
	}
	return err
}

func (s *notifierService) Broadcast(ctx context.Context, text string) error {
	if s.publisher == nil {
		return nil
	}
	err := s.publisher.Publish(ctx, events.NewBroadcast(text))
	if err != nil {
		s.logger.Error("notifier", "failed to publish broadcast", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return err
}
