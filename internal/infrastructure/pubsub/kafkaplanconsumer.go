package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// KafkaPlanEventConsumer reads plan events back off the plan topic.
type KafkaPlanEventConsumer struct {
	reader MessageReader
	logger logger.Interface
}

// NewKafkaReader joins groupID on the plan topic. An empty groupID reads
// partition 0 from the latest offset without committing.
func NewKafkaReader(brokers []string, topic, groupID string) *kafka.Reader {
	cfg := kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 1 << 20,
	}
	if groupID == "" {
		cfg.StartOffset = kafka.LastOffset
	}
	return kafka.NewReader(cfg)
}

func NewKafkaPlanEventConsumer(reader MessageReader, logger logger.Interface) *KafkaPlanEventConsumer {
	return &KafkaPlanEventConsumer{reader: reader, logger: logger}
}

// Subscribe blocks, calling handler for each event, until ctx is done.
// Undecodable messages are logged and skipped.
func (c *KafkaPlanEventConsumer) Subscribe(ctx context.Context, handler PlanEventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				c.logger.Infow("plan event consumer stopped", "reason", ctx.Err())
				return ctx.Err()
			}
			return fmt.Errorf("failed to read plan event: %w", err)
		}

		var event plan.Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Warnw("failed to unmarshal plan event",
				"partition", msg.Partition,
				"offset", msg.Offset,
				"error", err)
			continue
		}
		handler(ctx, event)
	}
}

func (c *KafkaPlanEventConsumer) Close() error {
	return c.reader.Close()
}
