package mocks

import (
	"context"
	"sync"

	"github.com/EpicVN/ecommerce-auth/domain"
)

// MockAuditPublisher implements domain.AuditPublisher for testing. Published
// events are recorded and can be inspected after the call under test.
type MockAuditPublisher struct {
	PublishFunc func(ctx context.Context, event *domain.AuditEvent) error

	mu     sync.Mutex
	events []*domain.AuditEvent
}

var _ domain.AuditPublisher = (*MockAuditPublisher)(nil)

func NewMockAuditPublisher() *MockAuditPublisher {
	return &MockAuditPublisher{}
}

func (m *MockAuditPublisher) Publish(ctx context.Context, event *domain.AuditEvent) error {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, event)
	}
	return nil
}

// Events returns a snapshot of everything published so far
func (m *MockAuditPublisher) Events() []*domain.AuditEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.AuditEvent, len(m.events))
	copy(out, m.events)
	return out
}

// HasEvent reports whether an event of the given type was published
func (m *MockAuditPublisher) HasEvent(t domain.AuditEventType) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.EventType == t {
			return true
		}
	}
	return false
}
