package event

import (
	"testing"

	"bigtrip/internal/domain/models"
)

func TestEmitDeliversInRegistrationOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe(func(Event) { order = append(order, "first") })
	bus.Subscribe(func(Event) { order = append(order, "second") })
	bus.Subscribe(func(Event) { order = append(order, "third") })

	bus.Emit(Event{Kind: KindCreated, Point: &models.Point{ID: "p-1"}})

	if len(order) != 3 || order[0] != "first" || order[1] != "second" || order[2] != "third" {
		t.Fatalf("wrong delivery order: %v", order)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()

	calls := 0
	id := bus.Subscribe(func(Event) { calls++ })

	bus.Emit(Event{Kind: KindDeleted, ID: "p-1"})
	bus.Unsubscribe(id)
	bus.Emit(Event{Kind: KindDeleted, ID: "p-2"})

	if calls != 1 {
		t.Fatalf("expected 1 call after unsubscribe, got %d", calls)
	}

	// unknown ids are a no-op
	bus.Unsubscribe(999)
}
