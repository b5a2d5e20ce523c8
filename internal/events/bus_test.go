package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

type recorder struct {
	id     string
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Handle(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) GetID() string { return r.id }

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func TestBusDeliversInOrderAndDrainsOnShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := NewBus(16, nil)
	rec := &recorder{id: "rec"}
	bus.Subscribe(CardUpdated, rec)
	bus.Subscribe(CardAdded, rec)

	bus.Publish(Event{Type: CardAdded})
	bus.Publish(Event{Type: CardUpdated, Data: map[string]interface{}{"card_id": int64(3)}})
	bus.Publish(Event{Type: CollectionDeleted})
	bus.Shutdown()

	assert.Equal(t, []string{CardAdded, CardUpdated}, rec.types())
	assert.False(t, rec.events[0].Timestamp.IsZero())
}

func TestBusUnsubscribe(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := NewBus(4, nil)
	rec := &recorder{id: "rec"}
	bus.Subscribe(CollectionAdded, rec)
	bus.Unsubscribe(CollectionAdded, &recorder{id: "rec"})

	bus.Publish(Event{Type: CollectionAdded})
	bus.Shutdown()

	assert.Empty(t, rec.types())
}

func TestBusSurvivesPanickingHandler(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := NewBus(4, nil)
	rec := &recorder{id: "rec"}
	bus.Subscribe(CardAdded, HandlerFunc{ID: "boom", Fn: func(Event) { panic("boom") }})
	bus.Subscribe(CardAdded, rec)

	bus.Publish(Event{Type: CardAdded})
	bus.Shutdown()

	assert.Equal(t, []string{CardAdded}, rec.types())
}

func TestPublishAfterShutdownIsIgnored(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := NewBus(1, nil)
	bus.Shutdown()
	bus.Shutdown()

	assert.NotPanics(t, func() { bus.Publish(Event{Type: CardAdded}) })
}

func TestPublishDropsWhenBufferIsFull(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := NewBus(2, nil)
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	var mu sync.Mutex
	delivered := 0

	bus.Subscribe(CardUpdated, HandlerFunc{ID: "slow", Fn: func(Event) {
		once.Do(func() { close(started) })
		<-release
		mu.Lock()
		delivered++
		mu.Unlock()
	}})

	bus.Publish(Event{Type: CardUpdated})
	<-started

	const published = 6
	for i := 1; i < published; i++ {
		bus.Publish(Event{Type: CardUpdated})
	}

	close(release)
	bus.Shutdown()

	mu.Lock()
	defer mu.Unlock()
	assert.Less(t, delivered, published)
	assert.Equal(t, 3, delivered)
}
