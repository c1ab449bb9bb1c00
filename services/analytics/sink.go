package analytics

import (
	"log"
	"sync"
)

// Sink receives engagement events. Record is fire-and-forget: it never
// reports an error to the caller and must not block on I/O.
type Sink interface {
	Init(measurementID string) error
	Record(e Event)
}

// Nop discards every event
type Nop struct{}

func (Nop) Init(string) error { return nil }
func (Nop) Record(Event)      {}

// Multi fans an event out to several sinks
type Multi []Sink

func (m Multi) Init(measurementID string) error {
	for _, s := range m {
		if err := s.Init(measurementID); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) Record(e Event) {
	for _, s := range m {
		s.Record(e)
	}
}

// Memory keeps events in memory. Used by tests and the terminal client's
// session summary.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

func (m *Memory) Init(string) error { return nil }

func (m *Memory) Record(e Event) {
	m.mu.Lock()
	m.events = append(m.events, e)
	m.mu.Unlock()
}

// Events returns a copy of the recorded events
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Logger writes events to a log.Logger
type Logger struct {
	L *log.Logger
}

func (l Logger) Init(measurementID string) error {
	l.logger().Printf("[ANALYTICS] logging sink ready (measurement id %q)", measurementID)
	return nil
}

func (l Logger) Record(e Event) {
	l.logger().Printf("[ANALYTICS] %s %s/%s label=%q", e.Kind, e.Action, e.Category, e.Label)
}

func (l Logger) logger() *log.Logger {
	if l.L == nil {
		return log.Default()
	}
	return l.L
}
