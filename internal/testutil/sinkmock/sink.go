package sinkmock

import (
	"context"
	"sync"

	"estate-backoffice/internal/domain/event"
)

var _ event.Sink = (*Sink)(nil)

// Sink records published events; set Err to simulate a failing sink
// (publishing is fire-and-forget, so callers must still succeed).
type Sink struct {
	mu     sync.Mutex
	Err    error
	Events []event.Event
}

func New() *Sink { return &Sink{} }

func (s *Sink) Publish(_ context.Context, ev event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Events = append(s.Events, ev)
	return nil
}

func (s *Sink) Published() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]event.Event, len(s.Events))
	copy(out, s.Events)
	return out
}
