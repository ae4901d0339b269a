// Package notify fans state-change events out to connected clients.
// Publishing is fire-and-forget: a mutation never blocks on, or fails
// because of, subscriber delivery.
package notify

import (
	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"canteen/internal/monitoring"
)

// Event types carried on the bus. Per order, events are published in the
// same order the ledger mutations were committed.
const (
	TopicInventoryUpdate = "inventory:update"
	TopicOrderNew        = "order:new"
	TopicOrderUpdate     = "order:update"
	TopicOrderMessage    = "order:message"
)

var topics = []string{
	TopicInventoryUpdate,
	TopicOrderNew,
	TopicOrderUpdate,
	TopicOrderMessage,
}

// Event is the frame delivered to subscribers and WebSocket clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// MessagePayload is the order:message payload: the order the note was
// attached to plus the note itself.
type MessagePayload struct {
	OrderID string      `json:"orderId"`
	Message interface{} `json:"message"`
}

// Bus is a typed wrapper over an in-process event bus. Subscriber
// callbacks run synchronously on the publisher's goroutine, which is what
// preserves per-order ordering; callbacks must therefore never block.
type Bus struct {
	bus EventBus.Bus
	log *zap.Logger
}

func NewBus(log *zap.Logger) *Bus {
	return &Bus{bus: EventBus.New(), log: log}
}

// Publish delivers ev to every currently registered subscriber of topic.
// With zero subscribers it is a no-op.
func (b *Bus) Publish(topic string, payload interface{}) {
	monitoring.EventsPublished.WithLabelValues(topic).Inc()
	b.bus.Publish(topic, Event{Type: topic, Payload: payload})
}

// Subscribe registers fn for a single topic.
func (b *Bus) Subscribe(topic string, fn func(Event)) error {
	return b.bus.Subscribe(topic, fn)
}

// SubscribeAll registers fn for every event type.
func (b *Bus) SubscribeAll(fn func(Event)) {
	for _, t := range topics {
		if err := b.bus.Subscribe(t, fn); err != nil {
			b.log.Error("subscribe failed", zap.String("topic", t), zap.Error(err))
		}
	}
}
