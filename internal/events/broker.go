package events

import (
	"log/slog"
	"sync"
	"time"
)

// EventType names a broadcast notification.
type EventType string

const (
	// CurrencyChanged is published when a subject selects a new display currency.
	CurrencyChanged EventType = "currencyChange"
	// RatesRefreshed is published after the rate table has been replaced.
	RatesRefreshed EventType = "ratesRefreshed"
)

// Event is delivered to every subscriber.
type Event struct {
	Type     EventType `json:"type"`
	Subject  string    `json:"subject,omitempty"`
	Currency string    `json:"currency,omitempty"`
	Source   string    `json:"source,omitempty"`
	At       time.Time `json:"at"`
}

// Broker fans events out to subscribers. Publish never blocks; a subscriber
// whose buffer is full misses the event.
type Broker struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan Event
	logger *slog.Logger
}

// NewBroker creates an empty broker.
func NewBroker(logger *slog.Logger) *Broker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broker{
		subs:   make(map[int]chan Event),
		logger: logger,
	}
}

// Subscribe registers a listener. The returned cancel func unregisters it and
// closes the channel; it is safe to call more than once.
func (b *Broker) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers ev to all current subscribers.
func (b *Broker) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for id, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.logger.Warn("Dropping event for slow subscriber",
				slog.Int("subscriber", id),
				slog.String("type", string(ev.Type)))
		}
	}
}

// SubscriberCount reports how many listeners are registered.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
