package events

import (
	"sync"
	"time"
)

// Event constants for write actions
const (
	EventLessonStarted       = "lesson.started"
	EventMeasurementRecorded = "measurement.recorded"
)

// Event announces a committed write and names the read views it made stale.
type Event struct {
	Type       string
	LessonID   uint
	StaleViews []string
	Timestamp  time.Time
}

// Handler reacts to a dispatched event. Handlers run synchronously on the
// dispatching goroutine and must not block.
type Handler func(Event)

// EventDispatcher sends events to subscribers
type EventDispatcher interface {
	Dispatch(event Event)
	Subscribe(h Handler)
}

// Bus is an in-process EventDispatcher with any number of subscribers.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for every subsequent event.
func (b *Bus) Subscribe(h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	b.handlers = append(b.handlers, h)
	b.mu.Unlock()
}

// Dispatch delivers event to all subscribers in registration order.
func (b *Bus) Dispatch(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}

var (
	defaultMu  sync.RWMutex
	defaultBus = NewBus()
)

// Default returns the process-wide bus.
func Default() *Bus {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultBus
}

// SetDefault swaps the process-wide bus and returns the previous one.
func SetDefault(b *Bus) *Bus {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultBus
	defaultBus = b
	return prev
}

// Publish dispatches on the process-wide bus.
func Publish(event Event) {
	Default().Dispatch(event)
}

// Subscribe registers h on the process-wide bus.
func Subscribe(h Handler) {
	Default().Subscribe(h)
}
