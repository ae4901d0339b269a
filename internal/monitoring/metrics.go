// Package monitoring defines the process metrics exposed on the metrics
// port. Collectors are registered once via promauto at init time.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "canteen"

var (
	// OrdersPlaced counts successful admissions.
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Orders admitted into the ledger.",
	})

	// StatusTransitions counts status updates by target status.
	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_transitions_total",
		Help:      "Order status transitions by target status.",
	}, []string{"status"})

	// EventsPublished counts notification bus publishes by event type.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Events published on the notification bus.",
	}, []string{"type"})

	// ConnectedClients tracks currently registered WebSocket subscribers.
	ConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_connected_clients",
		Help:      "Currently connected WebSocket clients.",
	})

	// DroppedFrames counts notification frames dropped because a
	// subscriber's send buffer was full.
	DroppedFrames = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ws_dropped_frames_total",
		Help:      "Notification frames dropped on full client buffers.",
	})
)
