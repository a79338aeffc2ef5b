package rabbitmq

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublishing_WrapsEvent(t *testing.T) {
	now := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	msg, err := newPublishing(OrderCreated, map[string]string{"id": "o-1"}, now)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, OrderCreated, msg.Type)

	var decoded struct {
		Type       string            `json:"type"`
		OccurredAt time.Time         `json:"occurred_at"`
		Data       map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, OrderCreated, decoded.Type)
	assert.True(t, now.Equal(decoded.OccurredAt))
	assert.Equal(t, "o-1", decoded.Data["id"])
}

func TestNewPublishing_UnmarshalableData(t *testing.T) {
	_, err := newPublishing(OrderCreated, make(chan int), time.Now())
	assert.Error(t, err)
}

func TestPublish_NilClient(t *testing.T) {
	var c *Client
	assert.Error(t, c.Publish(OrderCreated, nil))
}

func TestClient_PublishToBroker(t *testing.T) {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		t.Skip("RABBITMQ_URL not set")
	}
	cfg := Config{URL: url, Exchange: "orders_test", Queue: "order_events_test"}
	client, err := NewClient(cfg)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Publish(OrderStatusChanged, map[string]string{"id": "o-2", "status": "shipped"}))

	var msg amqp.Delivery
	var ok bool
	for i := 0; i < 20 && !ok; i++ {
		msg, ok, err = client.channel.Get(cfg.Queue, true)
		require.NoError(t, err)
		if !ok {
			time.Sleep(50 * time.Millisecond)
		}
	}
	require.True(t, ok, "event should be routed to the bound queue")
	assert.Equal(t, OrderStatusChanged, msg.RoutingKey)
}
