package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"afom-board-be/internal/board"
	"afom-board-be/internal/dto"
	"afom-board-be/internal/entity"
	"afom-board-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDelivery struct {
	mu      sync.Mutex
	changes []board.Change
}

func (d *recordingDelivery) Dispatch(_ context.Context, c board.Change) {
	d.mu.Lock()
	d.changes = append(d.changes, c)
	d.mu.Unlock()
}

func (d *recordingDelivery) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.changes)
}

func TestPublishedChangesReachDeliveryInOrder(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer:            8,
		BlockPublishUntilSubscriberAck: true,
	}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	delivery := &recordingDelivery{}
	consumer := NewConsumerService(pubSub, "BOARD_CHANGED", delivery, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("BOARD_CHANGED", pubSub)
	kinds := []board.ChangeKind{board.ChangeSubmitted, board.ChangeMoved, board.ChangeDeleted}
	for _, k := range kinds {
		note := &entity.Note{Id: uuid.New(), SessionId: "S1", Bucket: entity.BucketAcquis}
		payload, err := json.Marshal(dto.NewBoardChangeMessage(board.Change{SessionId: "S1", Kind: k, Notes: []*entity.Note{note}}))
		require.NoError(t, err)
		require.NoError(t, publisher.Publish(ctx, payload))
	}

	require.Eventually(t, func() bool { return delivery.count() == len(kinds) }, time.Second, 10*time.Millisecond)

	delivery.mu.Lock()
	defer delivery.mu.Unlock()
	for i, k := range kinds {
		assert.Equal(t, k, delivery.changes[i].Kind)
		assert.Equal(t, "S1", delivery.changes[i].SessionId)
	}
}

func TestMalformedChangeIsAcked(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{BlockPublishUntilSubscriberAck: true}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	delivery := &recordingDelivery{}
	require.NoError(t, NewConsumerService(pubSub, "T", delivery, logger.NewNopLogger()).Consume(ctx))

	publisher := NewPublisherService("T", pubSub)
	require.NoError(t, publisher.Publish(ctx, []byte("{not json")))
	require.NoError(t, publisher.Publish(ctx, []byte(`{"session_id":"S1","kind":"edited"}`)))

	require.Eventually(t, func() bool { return delivery.count() == 1 }, time.Second, 10*time.Millisecond)
}
