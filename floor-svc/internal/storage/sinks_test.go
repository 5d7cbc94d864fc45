package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"overcooked-floor/floor-svc/internal/domain"
	"overcooked-floor/floor-svc/internal/mocks"
)

func newRedisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func sampleNotification() domain.Notification {
	return domain.Notification{
		Type:          domain.EventWaveFired,
		SessionID:     "s1",
		LocationID:    "loc-1",
		WaveNumber:    2,
		ItemIDs:       []string{"i1", "i2"},
		CorrelationID: "corr-1",
		OccurredAt:    time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC),
	}
}

func TestRedisPublisher(t *testing.T) {
	_, client := newRedisClient(t)
	ctx := context.Background()
	publisher := NewRedisPublisher(client, "")
	assert.Equal(t, "floor:location:loc-1", publisher.Channel("loc-1"))

	sub := client.Subscribe(ctx, publisher.Channel("loc-1"))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(ctx, sampleNotification()))

	select {
	case msg := <-sub.Channel():
		var got domain.Notification
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, sampleNotification(), got)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not published")
	}
}

func TestRedisMenuCache(t *testing.T) {
	mr, client := newRedisClient(t)
	ctx := context.Background()

	item := &domain.MenuItem{ID: "burger", LocationID: "loc-1", Name: "Burger", Price: decimal.RequireFromString("10.50"), Available: true}
	option := &domain.MenuOption{ID: "cheese", MenuItemID: "burger", Name: "Cheese", Price: decimal.RequireFromString("1.25")}
	source := mocks.NewMenuCatalog(t)
	source.On("MenuItem", mock.Anything, "burger").Return(item, nil).Twice()
	source.On("MenuOption", mock.Anything, "burger", "cheese").Return(option, nil).Once()
	source.On("MenuItem", mock.Anything, "ghost").Return(nil, domain.ErrNotFound).Twice()

	cache := NewRedisMenuCache(client, time.Minute, source)

	first, err := cache.MenuItem(ctx, "burger")
	require.NoError(t, err)
	cached, err := cache.MenuItem(ctx, "burger")
	require.NoError(t, err)
	assert.Equal(t, first.Name, cached.Name)
	assert.True(t, first.Price.Equal(cached.Price))
	assert.True(t, mr.Exists(cache.ItemKey("burger")))
	assert.Equal(t, time.Minute, mr.TTL(cache.ItemKey("burger")))

	opt, err := cache.MenuOption(ctx, "burger", "cheese")
	require.NoError(t, err)
	assert.Equal(t, "Cheese", opt.Name)
	assert.True(t, mr.Exists(cache.OptionKey("burger", "cheese")))

	require.NoError(t, cache.Invalidate(ctx, "burger"))
	assert.False(t, mr.Exists(cache.ItemKey("burger")))
	assert.False(t, mr.Exists(cache.OptionKey("burger", "cheese")))

	_, err = cache.MenuItem(ctx, "burger")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = cache.MenuItem(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}
}

func TestRedisMenuCache_FallsThroughWhenRedisIsDown(t *testing.T) {
	mr, client := newRedisClient(t)
	mr.Close()

	source := mocks.NewMenuCatalog(t)
	source.On("MenuItem", mock.Anything, "burger").Return(&domain.MenuItem{ID: "burger", Name: "Burger"}, nil).Once()
	cache := NewRedisMenuCache(client, time.Minute, source)

	item, err := cache.MenuItem(context.Background(), "burger")
	require.NoError(t, err)
	assert.Equal(t, "Burger", item.Name)
}

type capturingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *capturingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func TestKafkaPublisher(t *testing.T) {
	writer := &capturingWriter{}
	publisher := NewKafkaPublisher(writer)

	require.NoError(t, publisher.Publish(context.Background(), sampleNotification()))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "s1", string(msg.Key))
	assert.Equal(t, []kafka.Header{
		{Key: "type", Value: []byte(domain.EventWaveFired)},
		{Key: "correlation_id", Value: []byte("corr-1")},
	}, msg.Headers)
	var got domain.Notification
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, 2, got.WaveNumber)

	writer.err = errors.New("leader not available")
	assert.ErrorContains(t, publisher.Publish(context.Background(), sampleNotification()), "leader not available")
}

type capturingChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

func (c *capturingChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return nil
}

func TestAMQPPublisher(t *testing.T) {
	ch := &capturingChannel{}
	publisher := NewAMQPPublisher(ch, "floor.notifications")

	require.NoError(t, publisher.Publish(context.Background(), sampleNotification()))

	assert.Equal(t, "amqp", publisher.Name())
	assert.Equal(t, "floor.notifications", ch.exchange)
	assert.Equal(t, domain.EventWaveFired, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, "corr-1", ch.msg.CorrelationId)
	assert.Equal(t, sampleNotification().OccurredAt, ch.msg.Timestamp)
	assert.JSONEq(t, `{"type":"wave.fired","session_id":"s1","location_id":"loc-1","wave_number":2,"item_ids":["i1","i2"],"correlation_id":"corr-1","occurred_at":"2026-03-14T19:00:00Z"}`,
		string(ch.msg.Body))
}
