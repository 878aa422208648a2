package service

import (
	"context"
	"encoding/json"

	"writer-coach-be/internal/dto"
	"writer-coach-be/pkg/corpus"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IIndexPublisherService interface {
	Publish(ctx context.Context, category string, force bool) error
	// PublishAll queues an indexing job for every category.
	PublishAll(ctx context.Context, force bool) error
}

type indexPublisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewIndexPublisherService(pubSub *gochannel.GoChannel, topicName string) IIndexPublisherService {
	return &indexPublisherService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (s *indexPublisherService) Publish(ctx context.Context, category string, force bool) error {
	payload, err := json.Marshal(dto.PublishIndexCategoryMessage{
		Category: category,
		Force:    force,
	})
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return s.pubSub.Publish(s.topicName, msg)
}

func (s *indexPublisherService) PublishAll(ctx context.Context, force bool) error {
	for _, category := range corpus.Categories {
		if err := s.Publish(ctx, category, force); err != nil {
			return err
		}
	}
	return nil
}
