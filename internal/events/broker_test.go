package events_test

import (
	"testing"
	"time"

	"github.com/SscSPs/revenue_split_app/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan events.Event) events.Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return events.Event{}
}

func TestBroker_FansOutToAllSubscribers(t *testing.T) {
	b := events.NewBroker(nil)
	first, cancelFirst := b.Subscribe(4)
	defer cancelFirst()
	second, cancelSecond := b.Subscribe(4)
	defer cancelSecond()

	b.Publish(events.Event{Type: events.CurrencyChanged, Subject: "user-1", Currency: "USD"})

	for _, ch := range []<-chan events.Event{first, second} {
		ev := receive(t, ch)
		assert.Equal(t, events.CurrencyChanged, ev.Type)
		assert.Equal(t, "USD", ev.Currency)
		assert.False(t, ev.At.IsZero())
	}
}

func TestBroker_CancelUnsubscribes(t *testing.T) {
	b := events.NewBroker(nil)
	ch, cancel := b.Subscribe(1)
	assert.Equal(t, 1, b.SubscriberCount())

	cancel()
	cancel()

	assert.Equal(t, 0, b.SubscriberCount())
	_, ok := <-ch
	assert.False(t, ok)

	// publishing with nobody listening is a no-op
	b.Publish(events.Event{Type: events.RatesRefreshed})
}

func TestBroker_PublishDoesNotBlockOnFullSubscriber(t *testing.T) {
	b := events.NewBroker(nil)
	ch, cancel := b.Subscribe(1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		b.Publish(events.Event{Type: events.RatesRefreshed, Source: "live"})
		b.Publish(events.Event{Type: events.RatesRefreshed, Source: "snapshot"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked")
	}
	assert.Equal(t, "live", receive(t, ch).Source)
}
