package live

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishSubscribe(t *testing.T) {
	hub := NewHub()

	events, unsubscribe := hub.Subscribe()
	assert.Equal(t, 1, hub.SubscriberCount())

	hub.Publish("actions.updated", "hello")

	select {
	case ev := <-events:
		assert.Equal(t, "actions.updated", ev.Type)
		assert.Equal(t, "hello", ev.Payload)
		assert.False(t, ev.At.IsZero())
	default:
		t.Fatal("expected an event")
	}

	unsubscribe()
	assert.Equal(t, 0, hub.SubscriberCount())

	// Publishing with no subscribers must not block or panic.
	hub.Publish("actions.updated", "nobody listening")
}

func TestHubDropsWhenSubscriberIsSlow(t *testing.T) {
	hub := NewHub()

	events, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	// Overfill the buffer; the publisher never blocks.
	for i := 0; i < 100; i++ {
		hub.Publish("actions.updated", i)
	}

	received := 0
	for {
		select {
		case <-events:
			received++
			continue
		default:
		}
		break
	}
	require.LessOrEqual(t, received, 16)
	assert.Greater(t, received, 0)
}

func TestHubFanOut(t *testing.T) {
	hub := NewHub()

	a, unsubA := hub.Subscribe()
	b, unsubB := hub.Subscribe()
	defer unsubA()
	defer unsubB()

	hub.Publish("actions.updated", "x")

	for _, ch := range []<-chan Event{a, b} {
		select {
		case ev := <-ch:
			assert.Equal(t, "x", ev.Payload)
		default:
			t.Fatal("every subscriber gets the event")
		}
	}
}
