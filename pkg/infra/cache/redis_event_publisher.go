package cache

import (
	"context"
	"encoding/json"

	"github.com/NeuralTrust/AgeLock/pkg/infra/cache/event"
)

type redisEventPublisher struct {
	client  Client
	channel Channel
}

func NewRedisEventPublisher(client Client, channel Channel) EventPublisher {
	return &redisEventPublisher{
		client:  client,
		channel: channel,
	}
}

func (p *redisEventPublisher) Publish(ctx context.Context, ev event.Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	envelope := RedisMessage{
		Type:  ev.Type(),
		Event: b,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return p.client.RedisClient().Publish(ctx, string(p.channel), data).Err()
}

// NoopPublisher is used when Redis is disabled and the process runs alone.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, event.Event) error {
	return nil
}
