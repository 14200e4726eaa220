package queue

import (
	"context"
	"sync"
	"time"
)

type EventType string

const (
	PRDCreated     EventType = "prd.created"
	PRDUpdated     EventType = "prd.updated"
	PRDRegenerated EventType = "prd.regenerated"
	PRDDeleted     EventType = "prd.deleted"
)

// Event announces a committed change to a PRD.
type Event struct {
	Type       EventType `json:"type"`
	PrdID      string    `json:"prdId"`
	AuthorID   string    `json:"authorId"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewEvent(kind EventType, prdID, authorID string) *Event {
	return &Event{Type: kind, PrdID: prdID, AuthorID: authorID, OccurredAt: time.Now().UTC()}
}

// EventQueue publishes PRD events after the change is committed.
type EventQueue interface {
	// Publish appends an event to the queue.
	Publish(ctx context.Context, event *Event) error
	// Close flushes pending events and releases the producer.
	Close()
}

var (
	_ EventQueue = Nop{}
	_ EventQueue = (*Memory)(nil)
)

type Nop struct{}

func NewNop() Nop {
	return Nop{}
}

func (Nop) Publish(context.Context, *Event) error {
	return nil
}

func (Nop) Close() {}

// Memory keeps published events in order. Used by tests and the debug server.
type Memory struct {
	mu     sync.Mutex
	events []*Event
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Publish(_ context.Context, event *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *Memory) Close() {}

// Events returns a copy of the events published so far.
func (m *Memory) Events() []*Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Event, len(m.events))
	copy(out, m.events)
	return out
}
