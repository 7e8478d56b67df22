package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"

	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPlanEventPublisher writes plan events to a single topic keyed by plan
// id, so every event for a plan lands on the same partition in order.
type KafkaPlanEventPublisher struct {
	writer     MessageWriter
	maxRetries uint64
	logger     logger.Interface
}

// NewKafkaWriter builds a synchronous writer for the plan topic.
func NewKafkaWriter(brokers []string, topic string, writeTimeout time.Duration) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: writeTimeout,
		RequiredAcks: kafka.RequireOne,
		Transport: &kafka.Transport{
			ClientID: "kimono-plans",
		},
	}
}

func NewKafkaPlanEventPublisher(writer MessageWriter, maxRetries uint64, logger logger.Interface) *KafkaPlanEventPublisher {
	return &KafkaPlanEventPublisher{
		writer:     writer,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

func (p *KafkaPlanEventPublisher) Publish(ctx context.Context, event plan.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.PlanID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
		Time: event.OccurredAt,
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 100 * time.Millisecond
	policy.MaxInterval = 2 * time.Second

	attempt := 0
	operation := func() error {
		attempt++
		return p.writer.WriteMessages(ctx, msg)
	}
	notify := func(err error, wait time.Duration) {
		p.logger.Warnw("retrying plan event publish",
			"plan_id", event.PlanID,
			"type", event.Type,
			"attempt", attempt,
			"wait", wait,
			"error", err,
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(policy, p.maxRetries), ctx), notify); err != nil {
		p.logger.Errorw("failed to publish plan event",
			"plan_id", event.PlanID,
			"type", event.Type,
			"attempts", attempt,
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debugw("plan event published", "plan_id", event.PlanID, "type", event.Type)
	return nil
}

func (p *KafkaPlanEventPublisher) Close() error {
	return p.writer.Close()
}
