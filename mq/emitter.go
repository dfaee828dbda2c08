package mq

import (
	"context"
	"encoding/json"
	"log"

	"munchmate/rdx"
)

const orderChannel = "order-events"

// OrderEvent announces a checkout or a fulfillment status change.
type OrderEvent struct {
	Kind          string  `json:"kind"` // order-created, status-changed
	InvoiceNumber string  `json:"invoice_number"`
	UserID        string  `json:"user_id"`
	Status        string  `json:"status,omitempty"`
	Total         float64 `json:"total,omitempty"`
}

// Emit publishes an order event to Redis. Failures are logged and dropped;
// live updates are best-effort and never block a checkout.
func Emit(ctx context.Context, event OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] marshal error: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, orderChannel, data).Err(); err != nil {
		log.Printf("[Emit] publish error: %v", err)
	}
}

// Sink receives decoded order events, normally the orders websocket hub.
type Sink interface {
	Deliver(event OrderEvent)
}

// StartOrderWorker forwards published order events to the sink. Runs until
// the process exits.
func StartOrderWorker(sink Sink) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, orderChannel)
	ch := sub.Channel()

	log.Println("[OrderWorker] Listening for order events...")

	for msg := range ch {
		var event OrderEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[OrderWorker] Failed to parse event: %v", err)
			continue
		}
		sink.Deliver(event)
	}
}
