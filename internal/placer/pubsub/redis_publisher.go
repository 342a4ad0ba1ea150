package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Dyuuz/BCFun-API-Explorer/pkg/contracts/events"
)

// Publisher é o subconjunto do *redis.Client usado aqui
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisBroadcaster repassa cada recibo para o canal Pub/Sub (dashboards ao vivo)
type RedisBroadcaster struct {
	r       Publisher
	channel string
}

func NewRedisBroadcaster(r Publisher, channel string) *RedisBroadcaster {
	return &RedisBroadcaster{r: r, channel: channel}
}

func (b *RedisBroadcaster) Name() string { return "redis" }

func (b *RedisBroadcaster) Report(ctx context.Context, e events.BetSubmitted) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal bet_submitted: %w", err)
	}
	if err := b.r.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", b.channel, err)
	}
	return nil
}
