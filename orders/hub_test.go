package orders

import (
	"encoding/json"
	"testing"
	"time"

	"munchmate/mq"
)

func TestHubRegisterDeliverUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:   make(chan []byte, 10),
		UserID: "u1",
	}
	hub.register <- client

	event := mq.OrderEvent{
		Kind:          "status-changed",
		InvoiceNumber: "INV-0007",
		UserID:        "u1",
		Status:        "Preparing",
	}
	hub.Deliver(event)

	select {
	case got := <-client.Send:
		var decoded mq.OrderEvent
		if err := json.Unmarshal(got, &decoded); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if decoded.InvoiceNumber != "INV-0007" || decoded.Status != "Preparing" {
			t.Fatalf("unexpected event %+v", decoded)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for event")
	}

	hub.unregister <- client
}

func TestHubScopesEventsToOwner(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	mine := &Client{Send: make(chan []byte, 10), UserID: "u1"}
	other := &Client{Send: make(chan []byte, 10), UserID: "u2"}
	hub.register <- mine
	hub.register <- other

	hub.Deliver(mq.OrderEvent{Kind: "order-created", InvoiceNumber: "INV-0001", UserID: "u1"})

	select {
	case <-mine.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("owner never received the event")
	}

	select {
	case msg := <-other.Send:
		t.Fatalf("event leaked to another user: %s", msg)
	case <-time.After(100 * time.Millisecond):
	}

	hub.unregister <- mine
	hub.unregister <- other
}
