package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"foolivery/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishOrderCreated(t *testing.T) {
	w := &fakeWriter{}
	producer := NewProducerWithWriter(w)
	pub := NewEventPublisher(producer)

	event := &models.OrderCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "evt-1",
			EventType: models.EventTypeOrderCreated,
			Timestamp: time.Now(),
		},
		OrderID:    7,
		UserID:     3,
		TotalMinor: 2598,
		Items:      []models.OrderItemData{{FoodID: 1, Quantity: 2, PriceMinor: 1299}},
	}
	require.NoError(t, pub.PublishOrderCreated(context.Background(), event))

	require.Len(t, w.messages, 1)
	assert.Equal(t, "order-7", string(w.messages[0].Key))

	var decoded models.OrderCreatedEvent
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &decoded))
	assert.Equal(t, models.EventTypeOrderCreated, decoded.EventType)
	assert.Equal(t, int64(2598), decoded.TotalMinor)

	require.NoError(t, producer.Close())
	assert.True(t, w.closed)
}

func TestPublishOrderStatusChanged_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	pub := NewEventPublisher(NewProducerWithWriter(w))

	err := pub.PublishOrderStatusChanged(context.Background(), &models.OrderStatusChangedEvent{
		BaseEvent: models.BaseEvent{EventType: models.EventTypeOrderStatusChanged},
		OrderID:   1,
		From:      models.OrderStatusPending,
		To:        models.OrderStatusDelivered,
	})
	assert.Error(t, err)
	assert.Empty(t, w.messages)
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	assert.NoError(t, p.PublishOrderCreated(context.Background(), &models.OrderCreatedEvent{}))
	assert.NoError(t, p.PublishOrderStatusChanged(context.Background(), &models.OrderStatusChangedEvent{}))
}
