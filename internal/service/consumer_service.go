package service

import (
	"context"
	"encoding/json"

	"afom-board-be/internal/board"
	"afom-board-be/internal/dto"
	"afom-board-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

// BoardDelivery pushes a committed change to live viewers.
// Implemented by the websocket hub.
type BoardDelivery interface {
	Dispatch(ctx context.Context, change board.Change)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	delivery   BoardDelivery
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	delivery BoardDelivery,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		delivery:   delivery,
		logger:     log,
	}
}

// Consume subscribes synchronously and processes messages in the background
// until ctx is cancelled.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.BoardChangeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal board change", map[string]interface{}{
			"error":      err.Error(),
			"message_id": msg.UUID,
		})
		// invalid payloads never succeed
		msg.Ack()
		return
	}

	cs.delivery.Dispatch(ctx, payload.ToChange())
	msg.Ack()
}
