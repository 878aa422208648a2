package service

import (
	"context"
	"encoding/json"

	"writer-coach-be/internal/dto"
	"writer-coach-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IIndexConsumerService interface {
	Consume(ctx context.Context) error
}

// indexConsumerService drains the indexing topic and rebuilds vector
// collections in the background, so startup never blocks on embedding
// the whole corpus.
type indexConsumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	indexer   IIndexerService
	logger    logger.ILogger
}

func NewIndexConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	indexer IIndexerService,
	log logger.ILogger,
) IIndexConsumerService {
	return &indexConsumerService{
		pubSub:    pubSub,
		topicName: topicName,
		indexer:   indexer,
		logger:    log,
	}
}

func (s *indexConsumerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *indexConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexCategoryMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("index-consumer", "failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payloads never become valid, drop them
		return
	}

	written, err := s.indexer.BuildCategory(ctx, payload.Category, payload.Force)
	if err != nil {
		s.logger.Error("index-consumer", "failed to build collection", map[string]interface{}{
			"error":    err.Error(),
			"category": payload.Category,
		})
		msg.Nack()
		return
	}

	if written > 0 {
		s.logger.Info("index-consumer", "collection indexed", map[string]interface{}{
			"category": payload.Category,
			"chunks":   written,
		})
	}
	msg.Ack()
}
