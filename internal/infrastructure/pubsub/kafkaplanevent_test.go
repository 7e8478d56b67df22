package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

type fakeWriter struct {
	mu       sync.Mutex
	failures int
	calls    int
	written  []kafka.Message
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls++
	if w.calls <= w.failures {
		return errors.New("broker unavailable")
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func sampleEvent() plan.Event {
	return plan.Event{
		Type:       plan.EventPlanUpdated,
		PlanID:     "plan_1",
		MerchantID: "mer_1",
		ActorID:    "usr_1",
		TagsAdded:  []string{"tag_c"},
		OccurredAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestKafkaPlanEventPublisher_WritesKeyedMessage(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPlanEventPublisher(w, 2, logger.NewNopLogger())

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))

	require.Len(t, w.written, 1)
	msg := w.written[0]
	assert.Equal(t, "plan_1", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "plan.updated", string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "plan_1", decoded["planId"])
	assert.Equal(t, []any{"tag_c"}, decoded["tagsAdded"])
	assert.NotContains(t, decoded, "tagsRemoved")
}

func TestKafkaPlanEventPublisher_RetriesTransientFailures(t *testing.T) {
	w := &fakeWriter{failures: 2}
	p := NewKafkaPlanEventPublisher(w, 3, logger.NewNopLogger())

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	assert.Equal(t, 3, w.calls)
	assert.Len(t, w.written, 1)
}

func TestKafkaPlanEventPublisher_GivesUp(t *testing.T) {
	w := &fakeWriter{failures: 10}
	p := NewKafkaPlanEventPublisher(w, 1, logger.NewNopLogger())

	err := p.Publish(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Equal(t, 2, w.calls)
	assert.Empty(t, w.written)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), sampleEvent()))
}
