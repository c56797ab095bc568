package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"estate-backoffice/internal/domain/event"
)

const defaultChannel = "backoffice.contract.events"

var _ event.Sink = (*RedisSink)(nil)

// RedisSink publishes domain events on a pub/sub channel for external
// subscribers (audit log, notifications). Delivery is fire-and-forget:
// callers log publish errors and move on.
type RedisSink struct {
	rdb     *redis.Client
	channel string
}

func NewRedisSink(rdb *redis.Client, channel string) *RedisSink {
	if channel == "" {
		channel = defaultChannel
	}
	return &RedisSink{rdb: rdb, channel: channel}
}

func (s *RedisSink) Publish(ctx context.Context, ev event.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, s.channel, payload).Err()
}
