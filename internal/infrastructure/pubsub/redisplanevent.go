package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

const planChangeChannel = "kimono:plan:change"

// PlanEventHandler is a callback function for handling plan events
type PlanEventHandler func(ctx context.Context, event plan.Event)

// RedisPlanEventBus fans plan events out over Redis Pub/Sub. It is used when
// no Kafka brokers are configured but Redis is.
type RedisPlanEventBus struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisPlanEventBus(client *redis.Client, logger logger.Interface) *RedisPlanEventBus {
	return &RedisPlanEventBus{
		client: client,
		logger: logger,
	}
}

func (b *RedisPlanEventBus) Publish(ctx context.Context, event plan.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Publish(ctx, planChangeChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish plan change event",
			"plan_id", event.PlanID,
			"type", event.Type,
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debugw("plan change event published", "plan_id", event.PlanID, "type", event.Type)
	return nil
}

// Subscribe blocks, calling handler for each event, until ctx is done.
func (b *RedisPlanEventBus) Subscribe(ctx context.Context, handler PlanEventHandler) error {
	sub := b.client.Subscribe(ctx, planChangeChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	b.logger.Infow("subscribed to plan change events", "channel", planChangeChannel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("plan event subscriber stopped", "reason", ctx.Err())
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("plan event channel closed")
				return nil
			}

			var event plan.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warnw("failed to unmarshal plan event", "payload", msg.Payload, "error", err)
				continue
			}
			handler(ctx, event)
		}
	}
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, plan.Event) error { return nil }
