// Package testutil provides in-memory doubles for the plan application layer.
package testutil

import (
	"context"
	"sync"

	"github.com/kimono-rental/kimono/internal/domain/plan"
)

// MockPlanCache is an in-memory PlanCache that records invalidations.
type MockPlanCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	invalidated []string

	GetError        error
	SetError        error
	InvalidateError error
}

func NewMockPlanCache() *MockPlanCache {
	return &MockPlanCache{entries: make(map[string][]byte)}
}

func (m *MockPlanCache) Get(ctx context.Context, planID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.entries[planID], nil
}

func (m *MockPlanCache) Set(ctx context.Context, planID string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetError != nil {
		return m.SetError
	}
	m.entries[planID] = payload
	return nil
}

func (m *MockPlanCache) Invalidate(ctx context.Context, planID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated = append(m.invalidated, planID)
	if m.InvalidateError != nil {
		return m.InvalidateError
	}
	delete(m.entries, planID)
	return nil
}

func (m *MockPlanCache) Has(planID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[planID]
	return ok
}

func (m *MockPlanCache) Invalidated() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.invalidated...)
}

// MockEventPublisher records published plan events.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []plan.Event

	PublishError error
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(ctx context.Context, event plan.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PublishError != nil {
		return m.PublishError
	}
	m.events = append(m.events, event)
	return nil
}

func (m *MockEventPublisher) Events() []plan.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]plan.Event(nil), m.events...)
}
