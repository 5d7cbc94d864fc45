package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"overcooked-floor/floor-svc/internal/domain"
	"overcooked-floor/floor-svc/internal/events"
)

// RedisPublisher fans notifications out to dashboards subscribed to a per-location channel.
type RedisPublisher struct {
	Client *redis.Client
	Prefix string
}

func NewRedisPublisher(client *redis.Client, prefix string) *RedisPublisher {
	if prefix == "" {
		prefix = "floor"
	}
	return &RedisPublisher{Client: client, Prefix: prefix}
}

func (p *RedisPublisher) Name() string { return "redis" }

func (p *RedisPublisher) Channel(locationID string) string {
	return p.Prefix + ":location:" + locationID
}

func (p *RedisPublisher) Publish(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	return p.Client.Publish(ctx, p.Channel(n.LocationID), payload).Err()
}

var _ events.Sink = (*RedisPublisher)(nil)
