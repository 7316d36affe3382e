package events_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"GameHub/services/events"
)

func waitFor(t *testing.T, ch <-chan events.DataChanged) events.DataChanged {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return events.DataChanged{}
	}
}

func TestBusDelivery(t *testing.T) {
	bus := events.NewBus(8)
	defer bus.Close()

	received := make(chan events.DataChanged, 8)
	sub := bus.Subscribe(func(ev events.DataChanged) {
		received <- ev
	})
	defer sub.Unsubscribe()

	stamp := time.Now()
	bus.Publish(events.DataChanged{Timestamp: stamp})

	ev := waitFor(t, received)
	assert.Equal(t, stamp, ev.Timestamp)
}

func TestBusFanOut(t *testing.T) {
	bus := events.NewBus(8)
	defer bus.Close()

	first := make(chan events.DataChanged, 1)
	second := make(chan events.DataChanged, 1)
	defer bus.Subscribe(func(ev events.DataChanged) { first <- ev }).Unsubscribe()
	defer bus.Subscribe(func(ev events.DataChanged) { second <- ev }).Unsubscribe()

	bus.Publish(events.DataChanged{Timestamp: time.Now()})

	waitFor(t, first)
	waitFor(t, second)
}

func TestBusUnsubscribe(t *testing.T) {
	bus := events.NewBus(8)
	defer bus.Close()

	received := make(chan events.DataChanged, 8)
	sub := bus.Subscribe(func(ev events.DataChanged) {
		received <- ev
	})

	bus.Publish(events.DataChanged{Timestamp: time.Now()})
	waitFor(t, received)

	sub.Unsubscribe()
	bus.Publish(events.DataChanged{Timestamp: time.Now()})

	select {
	case <-received:
		t.Fatal("received event after unsubscribing")
	case <-time.After(200 * time.Millisecond):
	}
}
